package postgres

import (
	"context"
	"database/sql"

	"equiprent-backend/internal/repository"

	_ "github.com/lib/pq"
)

// querier is satisfied by *sql.DB and *sql.Tx so repository methods run
// against the ambient transaction when one is carried in the context.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

func querierFrom(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

type Store struct {
	db *sql.DB
	repository.Transactor
	repository.OrderRepository
	repository.EquipmentRepository
	repository.UserDirectory
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		Transactor:          NewTxManager(db),
		OrderRepository:     NewOrderRepository(db),
		EquipmentRepository: NewEquipmentRepository(db),
		UserDirectory:       NewUserDirectory(db),
	}
}
