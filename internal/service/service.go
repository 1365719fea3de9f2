package service

import (
	"context"
	"time"

	"autorent-backend/internal/domain"
)

type QuoteService interface {
	QuotePrice(ctx context.Context, req *domain.QuoteRequest) (*domain.PriceBreakdown, error)
}

type DiscountService interface {
	// Resolve validates a discount code against the catalog and, for
	// redemption codes, the phone ledger. An invalid code is a result, not
	// an error. Resolution never consumes a redemption code.
	Resolve(ctx context.Context, code string, subtotalCents int32, phone string) (*domain.DiscountResult, error)
}

// LedgerService fronts the phone reward ledger. Phone numbers are
// normalized on every call before hitting storage.
type LedgerService interface {
	TrackBooking(ctx context.Context, phone, bookingRef string) error
	TrackForWheel(ctx context.Context, phone string) (created bool, err error)
	GrantCoupon(ctx context.Context, phone, code string) error
	RedeemCoupon(ctx context.Context, phone, code string) error
	MarkReturnGiftRedeemed(ctx context.Context, phone string) (bool, error)
	GetRecord(ctx context.Context, phone string) (*domain.PhoneRecord, error)
}

// SpinResult describes a wheel spin outcome.
type SpinResult struct {
	WinningIndex int    `json:"winning_index"`
	CouponID     int32  `json:"coupon_id"`
	PrizeCode    string `json:"prize_code,omitempty"`
}

type WheelService interface {
	Spin(ctx context.Context, wheelID int32, phone string) (*SpinResult, error)
}

// CreateBookingRequest carries everything needed to open a booking.
type CreateBookingRequest struct {
	CarID           int32           `json:"car_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAge     int32           `json:"customer_age"`
	PickupAt        time.Time       `json:"pickup_at"`
	ReturnAt        time.Time       `json:"return_at"`
	PickupLocation  domain.Location `json:"pickup_location"`
	DropoffLocation domain.Location `json:"dropoff_location"`
	Insurance       string          `json:"insurance"`
	DiscountCode    string          `json:"discount_code,omitempty"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, id int32) (*domain.Booking, error)
	RejectBooking(ctx context.Context, id int32, reason string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id int32) (*domain.Booking, error)
	// ListBookings runs the finish-overdue sweep before reading, so a
	// confirmed booking whose return time has passed always lists as finished.
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	GetBooking(ctx context.Context, id int32) (*domain.Booking, error)
	CarAvailable(ctx context.Context, carID int32, from, to time.Time) (bool, error)
}
