package repository

import (
	"context"
	"time"

	"equiprent-backend/internal/domain"
)

// Transactor runs a function inside a database transaction. The transaction
// is carried in the context; repository methods pick it up automatically so
// a check and the write that depends on it share one atomic scope.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// LockEquipment takes a per-equipment advisory lock for the remainder of
	// the surrounding transaction. It serializes concurrent check-then-insert
	// sequences against the same equipment and must only be called inside
	// WithinTransaction.
	LockEquipment(ctx context.Context, equipmentID string) error
}

// OrderFilter narrows ListOrders. ActorID, when set, restricts results to
// orders where the actor is renter or provider.
type OrderFilter struct {
	Status      domain.OrderStatus
	EquipmentID string
	ActorID     int32
	Page        int32
	PageSize    int32
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// UpdateStatusIf transitions the order only if it is still in `from`,
	// returning false when another writer got there first.
	UpdateStatusIf(ctx context.Context, id string, from, to domain.OrderStatus, now time.Time) (bool, error)

	// FindBlockingOverlap returns the id of a blocking order on the equipment
	// whose [start_date, end_date) interval overlaps [start, end), or "" when
	// none exists. excludeID omits one order from consideration (used when
	// re-checking at accept time).
	FindBlockingOverlap(ctx context.Context, equipmentID string, start, end time.Time, excludeID string) (string, error)

	// ListExpiredInProgress returns IN_PROGRESS orders whose end date has
	// passed, for the expiry sweeper.
	ListExpiredInProgress(ctx context.Context, now time.Time) ([]domain.Order, error)

	List(ctx context.Context, f OrderFilter) ([]domain.Order, int32, error)
}

// EquipmentRepository is the storage port onto the external catalog: a read
// of the pricing/owner snapshot plus the mirror status write.
type EquipmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	SetStatus(ctx context.Context, id string, status domain.EquipmentStatus) error
}

// UserDirectory resolves contact details for notifications. Identity itself
// is owned by an external collaborator; this is a read-only lookup.
type UserDirectory interface {
	GetContact(ctx context.Context, userID int32) (name, email string, err error)
}
