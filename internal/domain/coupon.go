package domain

import "time"

type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFixed      CouponType = "fixed"
	CouponTypeFreeDays   CouponType = "free_days"
)

func (t CouponType) Valid() bool {
	switch t {
	case CouponTypePercentage, CouponTypeFixed, CouponTypeFreeDays:
		return true
	}
	return false
}

type Coupon struct {
	ID   int32      `json:"id"`
	Code string     `json:"code"`
	Type CouponType `json:"type"`
	// Value is a percentage (1-100) for percentage coupons, an amount in
	// cents for fixed coupons and a day count (1-30) for free_days coupons.
	Value     int32      `json:"value"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	// AvailableCodes is the pool of single-use redemption codes still
	// redeemable for this coupon. ShowedCodes tracks which of them have
	// already been handed out via the reward wheel.
	AvailableCodes []string  `json:"available_codes,omitempty"`
	ShowedCodes    []string  `json:"showed_codes,omitempty"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}

// Expired reports whether the coupon's expiry window has passed at now.
// Coupons without an expiry never expire.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// DiscountCents computes the monetary discount this coupon grants on a
// subtotal. Free-day coupons carry no monetary discount at quote time; the
// days are granted operationally.
func (c *Coupon) DiscountCents(subtotalCents int32) int32 {
	switch c.Type {
	case CouponTypePercentage:
		return int32((int64(subtotalCents)*int64(c.Value) + 50) / 100)
	case CouponTypeFixed:
		if c.Value > subtotalCents {
			return subtotalCents
		}
		return c.Value
	case CouponTypeFreeDays:
		return 0
	}
	return 0
}

// WheelSegment associates a coupon with a selection weight on a wheel.
// Weights are relative and need not sum to 100.
type WheelSegment struct {
	CouponID int32 `json:"coupon_id"`
	Weight   int32 `json:"weight"`
	Position int32 `json:"position"`
}

type SpinningWheel struct {
	ID        int32          `json:"id"`
	Name      string         `json:"name"`
	Enabled   bool           `json:"enabled"`
	Premium   bool           `json:"premium"`
	Segments  []WheelSegment `json:"segments"`
	CreatedOn time.Time      `json:"created_on"`
	UpdatedOn time.Time      `json:"updated_on"`
}
