package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	t.Run("PendingTransitions", func(t *testing.T) {
		for event, want := range map[BookingEvent]BookingStatus{
			EventConfirm: BookingStatusConfirmed,
			EventReject:  BookingStatusRejected,
			EventCancel:  BookingStatusCancelled,
		} {
			got, err := NextStatus(BookingStatusPending, event)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("ConfirmedTransitions", func(t *testing.T) {
		got, err := NextStatus(BookingStatusConfirmed, EventCancel)
		assert.NoError(t, err)
		assert.Equal(t, BookingStatusCancelled, got)

		got, err = NextStatus(BookingStatusConfirmed, EventFinish)
		assert.NoError(t, err)
		assert.Equal(t, BookingStatusFinished, got)
	})

	t.Run("IllegalTransitions", func(t *testing.T) {
		illegal := []struct {
			from  BookingStatus
			event BookingEvent
		}{
			{BookingStatusConfirmed, EventConfirm},
			{BookingStatusConfirmed, EventReject},
			{BookingStatusCancelled, EventConfirm},
			{BookingStatusRejected, EventCancel},
			{BookingStatusFinished, EventCancel},
			{BookingStatusPending, EventFinish},
		}
		for _, c := range illegal {
			_, err := NextStatus(c.from, c.event)
			assert.Error(t, err, "%s/%s", c.from, c.event)
			assert.True(t, IsStateConflict(err))
		}
	})
}

func TestCouponDiscountCents(t *testing.T) {
	t.Run("Percentage", func(t *testing.T) {
		c := &Coupon{Type: CouponTypePercentage, Value: 10}
		assert.Equal(t, int32(1200), c.DiscountCents(12000))
	})

	t.Run("PercentageRounds", func(t *testing.T) {
		c := &Coupon{Type: CouponTypePercentage, Value: 15}
		// 15% of 99.99 is 14.9985, rounds to 15.00
		assert.Equal(t, int32(1500), c.DiscountCents(9999))
	})

	t.Run("FixedCappedAtSubtotal", func(t *testing.T) {
		c := &Coupon{Type: CouponTypeFixed, Value: 8000}
		assert.Equal(t, int32(5000), c.DiscountCents(5000))
		assert.Equal(t, int32(8000), c.DiscountCents(12000))
	})

	t.Run("FreeDaysCarryNoMoney", func(t *testing.T) {
		c := &Coupon{Type: CouponTypeFreeDays, Value: 2}
		assert.Equal(t, int32(0), c.DiscountCents(12000))
	})
}

func TestCouponExpired(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, (&Coupon{ExpiresAt: &past}).Expired(now))
	assert.False(t, (&Coupon{ExpiresAt: &future}).Expired(now))
	assert.False(t, (&Coupon{}).Expired(now))
}

func TestFeeScheduleAmount(t *testing.T) {
	fs := FeeSchedule{
		"airport_otopeni_pickup": {Name: "airport_otopeni_pickup", AmountCents: 2500, IsActive: true},
		"outside_hours_fee":      {Name: "outside_hours_fee", AmountCents: 1500, IsActive: false},
	}
	assert.Equal(t, int32(2500), fs.Amount("airport_otopeni_pickup"))
	assert.Equal(t, int32(0), fs.Amount("outside_hours_fee"))
	assert.Equal(t, int32(0), fs.Amount("missing"))
}
