package domain

import "time"

// QuoteRequest is a transient rental pricing request, constructed per call.
type QuoteRequest struct {
	CarID           int32    `json:"car_id"`
	PickupAt        time.Time `json:"pickup_at"`
	ReturnAt        time.Time `json:"return_at"`
	PickupLocation  Location  `json:"pickup_location"`
	DropoffLocation Location  `json:"dropoff_location"`
	Insurance       string    `json:"insurance"`
	DiscountCode    string    `json:"discount_code,omitempty"`
	CustomerPhone   string    `json:"customer_phone,omitempty"`
}

// PriceBreakdown itemizes every amount that makes up a quote. All amounts
// are cents.
type PriceBreakdown struct {
	Days                    int32 `json:"days"`
	DailyRateCents          int32 `json:"daily_rate_cents"`
	BaseCents               int32 `json:"base_cents"`
	PickupFeeCents          int32 `json:"pickup_fee_cents"`
	DropoffFeeCents         int32 `json:"dropoff_fee_cents"`
	PickupOutsideHoursCents int32 `json:"pickup_outside_hours_cents"`
	ReturnOutsideHoursCents int32 `json:"return_outside_hours_cents"`
	InsuranceCents          int32 `json:"insurance_cents"`
	DiscountCents           int32 `json:"discount_cents"`
	FreeDays                int32 `json:"free_days,omitempty"`
	TotalCents              int32 `json:"total_cents"`
}

// SubtotalCents is the pre-discount sum of all itemized amounts.
func (b *PriceBreakdown) SubtotalCents() int32 {
	return b.BaseCents + b.PickupFeeCents + b.DropoffFeeCents +
		b.PickupOutsideHoursCents + b.ReturnOutsideHoursCents + b.InsuranceCents
}

// Discount reason codes returned to callers on an invalid code. An invalid
// code is expected user input, not an error.
const (
	DiscountReasonInvalidCode = "invalid code"
	DiscountReasonExpired     = "expired"
	DiscountReasonWrongPhone  = "not available for this phone"
)

// DiscountResult is the outcome of resolving a discount code against a
// subtotal. Resolution never consumes a redemption code; consumption
// happens at booking confirmation.
type DiscountResult struct {
	Valid            bool   `json:"valid"`
	AmountCents      int32  `json:"amount_cents,omitempty"`
	FreeDays         int32  `json:"free_days,omitempty"`
	Reason           string `json:"reason,omitempty"`
	Code             string `json:"code,omitempty"`
	CouponID         int32  `json:"-"`
	IsRedemptionCode bool   `json:"-"`
}
