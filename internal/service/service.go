package service

import (
	"context"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type OrderService interface {
	// CreateOrder validates the requested window, checks availability and
	// persists a PENDING request with a price snapshot.
	CreateOrder(ctx context.Context, renterID int32, equipmentID, startDate, endDate string) (*domain.Order, error)

	// UpdateStatus applies a renter/provider/admin driven transition.
	UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus, actor domain.Actor) (*domain.Order, error)

	// MarkPaid is the internal entry point for the payment collaborator's
	// completion callback; it drives ACCEPTED to IN_PROGRESS and tolerates
	// duplicate deliveries.
	MarkPaid(ctx context.Context, orderID string) (*domain.Order, error)

	// CompleteExpired is the expiry sweeper's entry point; it drives
	// IN_PROGRESS to COMPLETED once the order's end date has passed.
	CompleteExpired(ctx context.Context, orderID string) (*domain.Order, error)

	GetOrder(ctx context.Context, orderID string, actor domain.Actor) (*domain.Order, error)
	ListOrders(ctx context.Context, f repository.OrderFilter, actor domain.Actor) ([]domain.Order, int32, error)
}

// Notifier delivers human-facing notifications for lifecycle events.
// Delivery is best-effort; the order service logs failures and moves on.
type Notifier interface {
	OrderRequested(ctx context.Context, o *domain.Order) error
	OrderStatusChanged(ctx context.Context, o *domain.Order, from domain.OrderStatus) error
}

// NopNotifier is used when notifications are disabled by config.
type NopNotifier struct{}

func (NopNotifier) OrderRequested(context.Context, *domain.Order) error { return nil }
func (NopNotifier) OrderStatusChanged(context.Context, *domain.Order, domain.OrderStatus) error {
	return nil
}
