package repository

import (
	"context"
	"time"

	"autorent-backend/internal/domain"
)

type CarRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)
}

type FeeRepository interface {
	GetSchedule(ctx context.Context) (domain.FeeSchedule, error)
	Upsert(ctx context.Context, fee *domain.Fee) error
}

type CouponRepository interface {
	Create(ctx context.Context, c *domain.Coupon) error
	Update(ctx context.Context, c *domain.Coupon) error
	GetByID(ctx context.Context, id int32) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	List(ctx context.Context) ([]domain.Coupon, error)

	// Redemption code pool operations. A code lives in available_codes until
	// consumed; showed_codes records which codes the wheel already handed out.
	FindByRedemptionCode(ctx context.Context, code string) (*domain.Coupon, error)
	AddRedemptionCodes(ctx context.Context, couponID int32, codes []string) error
	MarkCodeShown(ctx context.Context, couponID int32, code string) error
	ConsumeRedemptionCode(ctx context.Context, code string) error

	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// PhoneRepository persists the per-phone reward ledger. Every mutation is a
// single-statement atomic merge so concurrent requests for the same phone
// number cannot lose data.
type PhoneRepository interface {
	Get(ctx context.Context, phone string) (*domain.PhoneRecord, error)
	TrackBooking(ctx context.Context, phone, bookingRef string) error
	TrackForWheel(ctx context.Context, phone string) (created bool, err error)
	GrantCoupon(ctx context.Context, phone, code string) error
	RedeemCoupon(ctx context.Context, phone, code string) error
	MarkReturnGiftRedeemed(ctx context.Context, phone string) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	// UpdateStatus is conditional on the current status; zero rows affected
	// means the booking moved concurrently.
	UpdateStatus(ctx context.Context, id int32, from, to domain.BookingStatus, reason string) (int64, error)
	// FinishOverdue moves confirmed bookings whose return time has passed to
	// finished. Runs lazily before every listing.
	FinishOverdue(ctx context.Context, now time.Time) (int64, error)
	CountOverlapping(ctx context.Context, carID int32, from, to time.Time) (int32, error)
	ListConfirmedReturningBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error)

	CreateActiveRental(ctx context.Context, r *domain.ActiveRental) error
	DeleteActiveRentalByBooking(ctx context.Context, bookingID int32) error
}

type WheelRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.SpinningWheel, error)
	List(ctx context.Context) ([]domain.SpinningWheel, error)
	SetEnabled(ctx context.Context, id int32, enabled bool) error
}
