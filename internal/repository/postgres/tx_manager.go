package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"equiprent-backend/internal/repository"
)

type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) repository.Transactor {
	return &TxManager{db: db}
}

// WithinTransaction executes fn within a transaction injected into the
// context. Repositories that receive the derived context run their
// statements on the same transaction.
func (tm *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := tm.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(context.WithValue(ctx, txKey{}, tx))
	return err
}

// LockEquipment takes a transaction-scoped advisory lock keyed by the
// equipment id. Two transactions locking the same equipment serialize, which
// closes the check-then-insert race on availability without locking the
// whole orders table.
func (tm *TxManager) LockEquipment(ctx context.Context, equipmentID string) error {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	if !ok {
		return errors.New("LockEquipment requires an open transaction")
	}
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, equipmentID); err != nil {
		return fmt.Errorf("acquire equipment lock: %w", err)
	}
	return nil
}
