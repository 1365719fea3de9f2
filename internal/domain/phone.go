package domain

import "time"

// PhoneRecord is the per-phone-number reward ledger entry. The phone number
// is stored normalized and acts as the primary key. All mutations are
// merge-append: booking ids and redeemed codes are never removed.
type PhoneRecord struct {
	Phone              string    `json:"phone"`
	BookingIDs         []string  `json:"bookings_ids"`
	AvailableCoupons   []string  `json:"available_coupons"`
	RedeemedCoupons    []string  `json:"redeemed_coupons"`
	ReturnGiftRedeemed bool      `json:"return_gift_redeemed"`
	CreatedOn          time.Time `json:"created_on"`
	UpdatedOn          time.Time `json:"updated_on"`
}

// HasAvailableCoupon reports whether code has been granted to this phone
// and not yet redeemed.
func (r *PhoneRecord) HasAvailableCoupon(code string) bool {
	for _, c := range r.AvailableCoupons {
		if c == code {
			return true
		}
	}
	return false
}

// HasRedeemedCoupon reports whether code was already redeemed by this phone.
func (r *PhoneRecord) HasRedeemedCoupon(code string) bool {
	for _, c := range r.RedeemedCoupons {
		if c == code {
			return true
		}
	}
	return false
}
