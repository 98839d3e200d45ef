package events

import (
	"context"
	"time"

	"equiprent-backend/internal/domain"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the lifecycle record published for downstream consumers
// (analytics, notification fan-out). Consumers must tolerate at-least-once
// delivery; EventID is stable per emission for deduplication.
type OrderEvent struct {
	EventID     string             `json:"event_id"`
	Type        string             `json:"type"`
	OrderID     string             `json:"order_id"`
	EquipmentID string             `json:"equipment_id"`
	RenterID    int32              `json:"renter_id"`
	ProviderID  int32              `json:"provider_id"`
	FromStatus  domain.OrderStatus `json:"from_status,omitempty"`
	ToStatus    domain.OrderStatus `json:"to_status"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// Publisher emits order lifecycle events. Publishing is best-effort: the
// order transition has already committed when an event is emitted, so
// failures are logged, never propagated to the caller.
type Publisher interface {
	Publish(ctx context.Context, evt OrderEvent) error
	Close() error
}

// NopPublisher is used when event publication is disabled by config.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, OrderEvent) error { return nil }
func (NopPublisher) Close() error                              { return nil }
