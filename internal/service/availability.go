package service

import (
	"context"
	"fmt"
	"time"

	"equiprent-backend/internal/clock"
	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

// AvailabilityChecker answers whether a candidate window on a piece of
// equipment collides with an existing blocking order. It is read-only; the
// caller is responsible for running the check and the dependent write inside
// one transaction (with the per-equipment lock held) so two concurrent
// creations cannot both observe "available".
type AvailabilityChecker struct {
	orders repository.OrderRepository
	clock  clock.Clock
}

func NewAvailabilityChecker(orders repository.OrderRepository, clk clock.Clock) *AvailabilityChecker {
	return &AvailabilityChecker{orders: orders, clock: clk}
}

// ValidateWindow checks the shape of the requested window independently of
// any existing orders: end strictly after start, start today or later.
func (c *AvailabilityChecker) ValidateWindow(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidDateRange)
	}
	today := truncateToDay(c.clock.Now())
	if start.Before(today) {
		return fmt.Errorf("%w: start date is in the past", domain.ErrInvalidDateRange)
	}
	return nil
}

// CheckAvailable returns nil when no blocking order overlaps [start, end) on
// the equipment, and a ConflictError naming the blocking order otherwise.
// excludeOrderID is set when re-checking an existing order at accept time.
func (c *AvailabilityChecker) CheckAvailable(ctx context.Context, equipmentID string, start, end time.Time, excludeOrderID string) error {
	conflictID, err := c.orders.FindBlockingOverlap(ctx, equipmentID, start, end, excludeOrderID)
	if err != nil {
		return fmt.Errorf("check availability: %w", err)
	}
	if conflictID != "" {
		return &domain.ConflictError{ConflictingOrderID: conflictID}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid date", domain.ErrInvalidDateRange, s)
	}
	return t, nil
}
