package postgres

import (
	"context"
	"database/sql"
	"errors"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	query := `SELECT id, owner_id, daily_price_cents, status FROM equipment WHERE id = $1`
	err := querierFrom(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&eq.ID, &eq.OwnerID, &eq.DailyPriceCents, &eq.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

// SetStatus writes the mirror field. The catalog reads this value but only
// the order lifecycle writes the AVAILABLE/LOCKED/PENDING_RETURN edges.
func (r *equipmentRepository) SetStatus(ctx context.Context, id string, status domain.EquipmentStatus) error {
	query := `UPDATE equipment SET status = $1 WHERE id = $2`
	res, err := querierFrom(ctx, r.db).ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
