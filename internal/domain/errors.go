package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups for unknown cars, bookings, coupons, wheels or
// phone records. Repositories return it wrapped; handlers map it to 404.
var ErrNotFound = errors.New("not found")

// ErrAlreadyRedeemed reports an attempt to redeem a coupon code a phone has
// already redeemed. The ledger is left unchanged.
var ErrAlreadyRedeemed = errors.New("coupon already redeemed")

// ErrCouponNotAvailable reports a redeem attempt for a code that was never
// granted to the phone number.
var ErrCouponNotAvailable = errors.New("coupon not available for this phone")

// ValidationError reports a malformed or missing request field. It is
// surfaced to the caller and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StateConflictError reports an illegal booking lifecycle transition, e.g.
// confirming a booking that is not pending.
type StateConflictError struct {
	Status BookingStatus
	Event  BookingEvent
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("cannot %s a %s booking", e.Event, e.Status)
}

// IsStateConflict reports whether err is a lifecycle conflict.
func IsStateConflict(err error) bool {
	var sc *StateConflictError
	return errors.As(err, &sc)
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
