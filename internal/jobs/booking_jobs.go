package jobs

import (
	"context"
	"fmt"
	"time"

	"autorent-backend/internal/logger"
)

// FinishOverdueBookings moves confirmed bookings whose return time has
// passed to finished and removes their active rental records. The same
// sweep also runs lazily before every booking listing; the nightly job
// keeps the table clean on quiet days.
func (jr *JobRunner) FinishOverdueBookings() {
	jr.runWithRecovery("FinishOverdueBookings", func() {
		ctx := context.Background()

		count, err := jr.store.FinishOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to finish overdue bookings", "error", err)
			return
		}
		logger.Info("Finished overdue bookings", "count", count)

		if count > 0 && jr.notifier != nil {
			if err := jr.notifier.Send(ctx, fmt.Sprintf("Nightly sweep finished %d overdue bookings", count)); err != nil {
				logger.Error("Failed to send sweep notification", "error", err)
			}
		}
	})
}

// DeactivateExpiredCoupons disables coupons whose expiry has passed so
// lookups stop matching them.
func (jr *JobRunner) DeactivateExpiredCoupons() {
	jr.runWithRecovery("DeactivateExpiredCoupons", func() {
		ctx := context.Background()

		count, err := jr.store.DeactivateExpired(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to deactivate expired coupons", "error", err)
			return
		}
		logger.Info("Deactivated expired coupons", "count", count)
	})
}

// SendReturnReminders emails customers whose confirmed booking returns
// within the next 24 hours.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		now := time.Now()

		bookings, err := jr.store.ListConfirmedReturningBetween(ctx, now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to list bookings for return reminders", "error", err)
			return
		}

		sent := 0
		for _, b := range bookings {
			if b.CustomerEmail == "" {
				continue
			}
			body := fmt.Sprintf("Hello %s,\n\nA reminder that your rental (booking %s) is due back on %s at %s.",
				b.CustomerName, b.Reference, b.ReturnAt.Format("2006-01-02 15:04"), b.DropoffLocation)
			if err := jr.emails.SendEmail(ctx, b.CustomerEmail, b.CustomerName, "Return reminder", body); err != nil {
				logger.Error("Failed to send return reminder", "booking", b.Reference, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent return reminders", "count", sent)
	})
}
