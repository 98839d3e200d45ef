package postgres

import (
	"context"
	"database/sql"
	"errors"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type userDirectory struct {
	db *sql.DB
}

func NewUserDirectory(db *sql.DB) repository.UserDirectory {
	return &userDirectory{db: db}
}

func (r *userDirectory) GetContact(ctx context.Context, userID int32) (string, string, error) {
	var name, email string
	query := `SELECT name, email FROM users WHERE id = $1`
	err := querierFrom(ctx, r.db).QueryRowContext(ctx, query, userID).Scan(&name, &email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", domain.ErrNotFound
	}
	if err != nil {
		return "", "", err
	}
	return name, email, nil
}
