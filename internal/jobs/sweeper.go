package jobs

import (
	"context"
	"time"

	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/metrics"
)

// SweepExpiredOrders transitions IN_PROGRESS orders past their end date to
// COMPLETED. Each order is handled independently: a failure is logged and
// counted but never aborts the batch, and the next scheduled run is the
// retry. Overlapping runs are safe because every transition is a conditional
// update and a repeat completion is a no-op.
func (jr *JobRunner) SweepExpiredOrders() {
	jr.runWithRecovery("SweepExpiredOrders", func() {
		ctx := context.Background()
		started := time.Now()
		now := jr.clock.Now()

		expired, err := jr.orders.ListExpiredInProgress(ctx, now)
		if err != nil {
			logger.Error("Failed to list expired rentals", "error", err)
			metrics.RecordSweep(0, 1, time.Since(started))
			return
		}

		swept, failed := 0, 0
		for _, o := range expired {
			if _, err := jr.orderSvc.CompleteExpired(ctx, o.ID); err != nil {
				failed++
				logger.Error("Failed to complete expired rental",
					"order_id", o.ID,
					"equipment_id", o.EquipmentID,
					"end_date", o.EndDate.Format("2006-01-02"),
					"error", err)
				continue
			}
			swept++
			logger.Debug("Completed expired rental",
				"order_id", o.ID,
				"equipment_id", o.EquipmentID,
				"end_date", o.EndDate.Format("2006-01-02"))
		}

		metrics.RecordSweep(swept, failed, time.Since(started))
		logger.Info("Sweep finished", "scanned", len(expired), "completed", swept, "failed", failed)
	})
}
