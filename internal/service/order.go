package service

import (
	"context"
	"fmt"

	"equiprent-backend/internal/clock"
	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/events"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/metrics"
	"equiprent-backend/internal/repository"

	"github.com/google/uuid"
)

type orderService struct {
	orders       repository.OrderRepository
	equipment    repository.EquipmentRepository
	tx           repository.Transactor
	availability *AvailabilityChecker
	notifier     Notifier
	publisher    events.Publisher
	clock        clock.Clock
}

func NewOrderService(
	orders repository.OrderRepository,
	equipment repository.EquipmentRepository,
	tx repository.Transactor,
	availability *AvailabilityChecker,
	notifier Notifier,
	publisher events.Publisher,
	clk clock.Clock,
) OrderService {
	return &orderService{
		orders:       orders,
		equipment:    equipment,
		tx:           tx,
		availability: availability,
		notifier:     notifier,
		publisher:    publisher,
		clock:        clk,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, renterID int32, equipmentID, startDateStr, endDateStr string) (*domain.Order, error) {
	start, err := parseDate(startDateStr)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDateStr)
	if err != nil {
		return nil, err
	}
	if err := s.availability.ValidateWindow(start, end); err != nil {
		return nil, err
	}

	var order *domain.Order
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.tx.LockEquipment(ctx, equipmentID); err != nil {
			return err
		}
		eq, err := s.equipment.GetByID(ctx, equipmentID)
		if err != nil {
			return err
		}
		if !eq.Status.IsBookable() {
			return fmt.Errorf("%w: equipment is %s", domain.ErrNotAvailable, eq.Status)
		}
		if err := s.availability.CheckAvailable(ctx, equipmentID, start, end, ""); err != nil {
			return err
		}

		now := s.clock.Now()
		order = &domain.Order{
			ID:          uuid.NewString(),
			EquipmentID: equipmentID,
			RenterID:    renterID,
			ProviderID:  eq.OwnerID,
			StartDate:   start,
			EndDate:     end,
			Status:      domain.OrderStatusPending,
			CreatedOn:   now,
			UpdatedOn:   now,
		}
		order.TotalAmountCents = order.Days() * eq.DailyPriceCents
		return s.orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordOrderCreated()
	s.publish(ctx, order, events.TypeOrderCreated, "")
	if err := s.notifier.OrderRequested(ctx, order); err != nil {
		logger.Warn("Failed to send rental request notification", "order_id", order.ID, "error", err)
	}
	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus, actor domain.Actor) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !newStatus.Valid() {
		return nil, domain.NewInvalidTransition(o.Status, newStatus)
	}

	role, err := resolveRole(o, actor)
	if err != nil {
		return nil, err
	}
	noop, err := domain.ValidateTransition(o.Status, newStatus, role)
	if err != nil {
		return nil, err
	}
	if noop {
		return o, nil
	}

	if o.Status == domain.OrderStatusPending && newStatus == domain.OrderStatusAccepted {
		return s.accept(ctx, o)
	}
	return s.applyTransition(ctx, o, newStatus)
}

func (s *orderService) MarkPaid(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	switch o.Status {
	case domain.OrderStatusInProgress, domain.OrderStatusCompleted:
		// Duplicate payment delivery; already consumed.
		return o, nil
	case domain.OrderStatusAccepted:
		return s.applyTransition(ctx, o, domain.OrderStatusInProgress)
	default:
		return nil, domain.NewInvalidTransition(o.Status, domain.OrderStatusInProgress)
	}
}

func (s *orderService) CompleteExpired(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == domain.OrderStatusCompleted {
		// Overlapping sweeper run already finished this one.
		return o, nil
	}
	if o.Status != domain.OrderStatusInProgress {
		return nil, domain.NewInvalidTransition(o.Status, domain.OrderStatusCompleted)
	}
	if o.EndDate.After(s.clock.Now()) {
		return nil, fmt.Errorf("%w: order %s has not reached its end date", domain.ErrInvalidTransition, o.ID)
	}
	return s.applyTransition(ctx, o, domain.OrderStatusCompleted)
}

func (s *orderService) GetOrder(ctx context.Context, orderID string, actor domain.Actor) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && actor.ID != o.RenterID && actor.ID != o.ProviderID {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

func (s *orderService) ListOrders(ctx context.Context, f repository.OrderFilter, actor domain.Actor) ([]domain.Order, int32, error) {
	if !actor.IsAdmin {
		// Non-admin callers only ever see orders they participate in.
		f.ActorID = actor.ID
	}
	return s.orders.List(ctx, f)
}

// accept re-checks availability under the per-equipment lock before flipping
// PENDING to ACCEPTED. The request may have sat pending while a competing
// request was accepted first; in that case the order is left PENDING and the
// conflict is surfaced to the provider.
func (s *orderService) accept(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	from := o.Status
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.tx.LockEquipment(ctx, o.EquipmentID); err != nil {
			return err
		}
		if err := s.availability.CheckAvailable(ctx, o.EquipmentID, o.StartDate, o.EndDate, o.ID); err != nil {
			return err
		}

		now := s.clock.Now()
		applied, err := s.orders.UpdateStatusIf(ctx, o.ID, domain.OrderStatusPending, domain.OrderStatusAccepted, now)
		if err != nil {
			return err
		}
		if !applied {
			current, err := s.orders.GetByID(ctx, o.ID)
			if err != nil {
				return err
			}
			return domain.NewInvalidTransition(current.Status, domain.OrderStatusAccepted)
		}
		if err := s.syncMirror(ctx, o.EquipmentID, domain.OrderStatusPending, domain.OrderStatusAccepted); err != nil {
			return err
		}
		o.Status = domain.OrderStatusAccepted
		o.UpdatedOn = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, o, from)
	return o, nil
}

// applyTransition performs a validated non-accept edge: a conditional status
// update plus the equipment mirror write, in one transaction.
func (s *orderService) applyTransition(ctx context.Context, o *domain.Order, to domain.OrderStatus) (*domain.Order, error) {
	from := o.Status
	won := false
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := s.clock.Now()
		applied, err := s.orders.UpdateStatusIf(ctx, o.ID, from, to, now)
		if err != nil {
			return err
		}
		if !applied {
			current, err := s.orders.GetByID(ctx, o.ID)
			if err != nil {
				return err
			}
			if current.Status == to {
				// Lost a benign race; the target state is already in place.
				*o = *current
				return nil
			}
			return domain.NewInvalidTransition(current.Status, to)
		}

		if err := s.syncMirror(ctx, o.EquipmentID, from, to); err != nil {
			return err
		}
		won = true
		o.Status = to
		o.UpdatedOn = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	if won {
		s.afterTransition(ctx, o, from)
	}
	return o, nil
}

// syncMirror keeps the equipment-side status field in step with the order
// transition: LOCKED from acceptance through the rental, PENDING_RETURN once
// it completes, back to AVAILABLE when a locked rental dies. Writing LOCKED
// again on payment is an idempotent repeat. The release on cancel/reject is
// scoped to orders that held the lock themselves (from a blocking state); a
// PENDING order never locked the mirror, and another accepted order may
// still hold it.
func (s *orderService) syncMirror(ctx context.Context, equipmentID string, from, to domain.OrderStatus) error {
	switch to {
	case domain.OrderStatusAccepted, domain.OrderStatusInProgress:
		return s.equipment.SetStatus(ctx, equipmentID, domain.EquipmentStatusLocked)
	case domain.OrderStatusCompleted:
		return s.equipment.SetStatus(ctx, equipmentID, domain.EquipmentStatusPendingReturn)
	case domain.OrderStatusCancelled, domain.OrderStatusRejected:
		if !from.IsBlocking() {
			return nil
		}
		eq, err := s.equipment.GetByID(ctx, equipmentID)
		if err != nil {
			return err
		}
		if eq.Status == domain.EquipmentStatusLocked {
			return s.equipment.SetStatus(ctx, equipmentID, domain.EquipmentStatusAvailable)
		}
	}
	return nil
}

func (s *orderService) afterTransition(ctx context.Context, o *domain.Order, from domain.OrderStatus) {
	metrics.RecordTransition(string(from), string(o.Status))
	s.publish(ctx, o, events.TypeOrderStatusChanged, from)
	if err := s.notifier.OrderStatusChanged(ctx, o, from); err != nil {
		logger.Warn("Failed to send status change notification", "order_id", o.ID, "status", o.Status, "error", err)
	}
}

func (s *orderService) publish(ctx context.Context, o *domain.Order, eventType string, from domain.OrderStatus) {
	evt := events.OrderEvent{
		EventID:     uuid.NewString(),
		Type:        eventType,
		OrderID:     o.ID,
		EquipmentID: o.EquipmentID,
		RenterID:    o.RenterID,
		ProviderID:  o.ProviderID,
		FromStatus:  from,
		ToStatus:    o.Status,
		OccurredAt:  s.clock.Now(),
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.Warn("Failed to publish order event", "order_id", o.ID, "type", eventType, "error", err)
	}
}

// resolveRole determines the capacity in which the actor touches the order.
// Admins bypass ownership checks; everyone else must be the renter or the
// provider of the equipment snapshotted on the order.
func resolveRole(o *domain.Order, actor domain.Actor) (domain.Role, error) {
	if actor.IsAdmin {
		return domain.RoleAdmin, nil
	}
	switch actor.ID {
	case o.RenterID:
		return domain.RoleRenter, nil
	case o.ProviderID:
		return domain.RoleProvider, nil
	}
	return "", domain.ErrForbidden
}
