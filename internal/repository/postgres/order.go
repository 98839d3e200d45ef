package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, equipment_id, renter_id, provider_id, start_date, end_date, total_amount_cents, status, created_on, updated_on`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	o := &domain.Order{}
	err := row.Scan(&o.ID, &o.EquipmentID, &o.RenterID, &o.ProviderID, &o.StartDate, &o.EndDate, &o.TotalAmountCents, &o.Status, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `INSERT INTO orders (id, equipment_id, renter_id, provider_id, start_date, end_date, total_amount_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := querierFrom(ctx, r.db).ExecContext(ctx, query,
		o.ID, o.EquipmentID, o.RenterID, o.ProviderID, o.StartDate, o.EndDate, o.TotalAmountCents, o.Status, o.CreatedOn, o.UpdatedOn)
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(querierFrom(ctx, r.db).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) UpdateStatusIf(ctx context.Context, id string, from, to domain.OrderStatus, now time.Time) (bool, error) {
	query := `UPDATE orders SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`
	res, err := querierFrom(ctx, r.db).ExecContext(ctx, query, to, now, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindBlockingOverlap applies the half-open interval test: [start, end)
// overlaps [other.start, other.end) iff start < other.end AND other.start < end.
// Back-to-back bookings therefore do not conflict.
func (r *orderRepository) FindBlockingOverlap(ctx context.Context, equipmentID string, start, end time.Time, excludeID string) (string, error) {
	query := `SELECT id FROM orders
	          WHERE equipment_id = $1
	            AND status IN ('ACCEPTED', 'IN_PROGRESS')
	            AND start_date < $3 AND end_date > $2
	            AND id <> $4
	          LIMIT 1`
	var id string
	err := querierFrom(ctx, r.db).QueryRowContext(ctx, query, equipmentID, start, end, excludeID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *orderRepository) ListExpiredInProgress(ctx context.Context, now time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = 'IN_PROGRESS' AND end_date <= $1 ORDER BY end_date`
	rows, err := querierFrom(ctx, r.db).QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) List(ctx context.Context, f repository.OrderFilter) ([]domain.Order, int32, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argIdx := 1
	if f.ActorID != 0 {
		where += fmt.Sprintf(" AND (renter_id = $%d OR provider_id = $%d)", argIdx, argIdx)
		args = append(args, f.ActorID)
		argIdx++
	}
	if f.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}
	if f.EquipmentID != "" {
		where += fmt.Sprintf(" AND equipment_id = $%d", argIdx)
		args = append(args, f.EquipmentID)
		argIdx++
	}

	var count int32
	countQuery := `SELECT count(*) FROM orders` + where
	if err := querierFrom(ctx, r.db).QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := querierFrom(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, count, rows.Err()
}
