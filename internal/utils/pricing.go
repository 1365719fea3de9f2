package utils

import (
	"math"
	"time"

	"autorent-backend/internal/domain"
)

// Working hours window. Pickups and returns outside [start, end) each incur
// the outside-hours fee once.
const (
	WorkingHoursStart = 8
	WorkingHoursEnd   = 18
)

// CalculateDays returns the chargeable rental day count: the span between
// pickup and return rounded up to whole days, never below 1. A same-day or
// backwards span still charges one day.
func CalculateDays(pickupAt, returnAt time.Time) int32 {
	hours := returnAt.Sub(pickupAt).Hours()
	days := int32(math.Ceil(hours / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// bucketIndexForDays picks the smallest bucket whose upper bound covers the
// day count; day counts past every bound land in the open-ended bucket.
func bucketIndexForDays(days int32) int {
	for i, b := range domain.RateBuckets {
		if b.MaxDays == 0 || days <= b.MaxDays {
			return i
		}
	}
	return len(domain.RateBuckets) - 1
}

// BucketKeyForDays returns the rate bucket key for a day count.
func BucketKeyForDays(days int32) string {
	return domain.RateBuckets[bucketIndexForDays(days)].Key
}

// DailyRate looks up a car's daily rate for the given day count. A bucket
// with no configured rate falls back to the nearest lower configured
// bucket, then to the nearest higher one. Partially configured cars keep
// pricing this way.
func DailyRate(rates map[string]int32, days int32) int32 {
	idx := bucketIndexForDays(days)
	if r := rates[domain.RateBuckets[idx].Key]; r > 0 {
		return r
	}
	for i := idx - 1; i >= 0; i-- {
		if r := rates[domain.RateBuckets[i].Key]; r > 0 {
			return r
		}
	}
	for i := idx + 1; i < len(domain.RateBuckets); i++ {
		if r := rates[domain.RateBuckets[i].Key]; r > 0 {
			return r
		}
	}
	return 0
}

// OutsideWorkingHours reports whether the clock hour of t falls outside the
// working window.
func OutsideWorkingHours(t time.Time) bool {
	h := t.Hour()
	return h < WorkingHoursStart || h >= WorkingHoursEnd
}

// StartOfDay returns midnight of t's calendar day in t's own location, not
// UTC midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CalculateBreakdown prices a quote request against a car's rate table and
// the fee schedule. The returned breakdown carries no discount; Total
// equals the subtotal until ApplyDiscount runs.
func CalculateBreakdown(car *domain.Car, fees domain.FeeSchedule, req *domain.QuoteRequest) *domain.PriceBreakdown {
	days := CalculateDays(req.PickupAt, req.ReturnAt)
	rate := DailyRate(car.DailyRates, days)

	b := &domain.PriceBreakdown{
		Days:           days,
		DailyRateCents: rate,
		BaseCents:      rate * days,
	}

	b.PickupFeeCents = fees.Amount(domain.PickupFeeName(req.PickupLocation))
	b.DropoffFeeCents = fees.Amount(domain.DropoffFeeName(req.DropoffLocation))

	if OutsideWorkingHours(req.PickupAt) {
		b.PickupOutsideHoursCents = fees.Amount(domain.FeeOutsideHours)
	}
	if OutsideWorkingHours(req.ReturnAt) {
		b.ReturnOutsideHoursCents = fees.Amount(domain.FeeOutsideHours)
	}

	b.InsuranceCents = car.InsuranceDayRates[req.Insurance] * days
	b.TotalCents = b.SubtotalCents()
	return b
}

// ApplyDiscount subtracts a resolved discount from the breakdown. The total
// clamps at zero: a discount can never make the customer's price negative.
func ApplyDiscount(b *domain.PriceBreakdown, amountCents, freeDays int32) {
	b.DiscountCents = amountCents
	b.FreeDays = freeDays
	total := b.SubtotalCents() - amountCents
	if total < 0 {
		total = 0
	}
	b.TotalCents = total
}
