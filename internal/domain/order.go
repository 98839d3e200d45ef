package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusAccepted   OrderStatus = "ACCEPTED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusRejected   OrderStatus = "REJECTED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsTerminal reports whether an order in this status can never change again.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusRejected || s == OrderStatusCancelled
}

// IsBlocking reports whether an order in this status reserves its equipment
// exclusively for its date range.
func (s OrderStatus) IsBlocking() bool {
	return s == OrderStatusAccepted || s == OrderStatusInProgress
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusInProgress,
		OrderStatusCompleted, OrderStatusRejected, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a time-bounded reservation of one piece of equipment.
// StartDate/EndDate are calendar dates at UTC midnight and form the
// half-open interval [StartDate, EndDate). TotalAmountCents is a price
// snapshot taken at creation time and is never recomputed, even if the
// equipment's daily price later changes.
type Order struct {
	ID               string      `json:"id"`
	EquipmentID      string      `json:"equipment_id"`
	RenterID         int32       `json:"renter_id"`
	ProviderID       int32       `json:"provider_id"`
	StartDate        time.Time   `json:"start_date"`
	EndDate          time.Time   `json:"end_date"`
	TotalAmountCents int64       `json:"total_amount_cents"`
	Status           OrderStatus `json:"status"`
	CreatedOn        time.Time   `json:"created_on"`
	UpdatedOn        time.Time   `json:"updated_on"`
}

// Days returns the number of whole rental days covered by the order.
func (o *Order) Days() int64 {
	return int64(o.EndDate.Sub(o.StartDate).Hours() / 24)
}

// Actor identifies who is asking for an operation. Role resolution against a
// concrete order happens in the service layer.
type Actor struct {
	ID      int32
	IsAdmin bool
}
