package service_test

import (
	"context"
	"time"

	"autorent-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockCarRepo struct{ mock.Mock }

func (m *MockCarRepo) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockCarRepo) List(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}

type MockFeeRepo struct{ mock.Mock }

func (m *MockFeeRepo) GetSchedule(ctx context.Context) (domain.FeeSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.FeeSchedule), args.Error(1)
}

func (m *MockFeeRepo) Upsert(ctx context.Context, fee *domain.Fee) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

type MockCouponRepo struct{ mock.Mock }

func (m *MockCouponRepo) Create(ctx context.Context, c *domain.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCouponRepo) Update(ctx context.Context, c *domain.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCouponRepo) GetByID(ctx context.Context, id int32) (*domain.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepo) List(ctx context.Context) ([]domain.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Coupon), args.Error(1)
}

func (m *MockCouponRepo) FindByRedemptionCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepo) AddRedemptionCodes(ctx context.Context, couponID int32, codes []string) error {
	return m.Called(ctx, couponID, codes).Error(0)
}

func (m *MockCouponRepo) MarkCodeShown(ctx context.Context, couponID int32, code string) error {
	return m.Called(ctx, couponID, code).Error(0)
}

func (m *MockCouponRepo) ConsumeRedemptionCode(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockCouponRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockPhoneRepo struct{ mock.Mock }

func (m *MockPhoneRepo) Get(ctx context.Context, phone string) (*domain.PhoneRecord, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PhoneRecord), args.Error(1)
}

func (m *MockPhoneRepo) TrackBooking(ctx context.Context, phone, bookingRef string) error {
	return m.Called(ctx, phone, bookingRef).Error(0)
}

func (m *MockPhoneRepo) TrackForWheel(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockPhoneRepo) GrantCoupon(ctx context.Context, phone, code string) error {
	return m.Called(ctx, phone, code).Error(0)
}

func (m *MockPhoneRepo) RedeemCoupon(ctx context.Context, phone, code string) error {
	return m.Called(ctx, phone, code).Error(0)
}

func (m *MockPhoneRepo) MarkReturnGiftRedeemed(ctx context.Context, phone string) (int64, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int32, from, to domain.BookingStatus, reason string) (int64, error) {
	args := m.Called(ctx, id, from, to, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepo) FinishOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepo) CountOverlapping(ctx context.Context, carID int32, from, to time.Time) (int32, error) {
	args := m.Called(ctx, carID, from, to)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockBookingRepo) ListConfirmedReturningBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) CreateActiveRental(ctx context.Context, r *domain.ActiveRental) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockBookingRepo) DeleteActiveRentalByBooking(ctx context.Context, bookingID int32) error {
	return m.Called(ctx, bookingID).Error(0)
}

type MockWheelRepo struct{ mock.Mock }

func (m *MockWheelRepo) GetByID(ctx context.Context, id int32) (*domain.SpinningWheel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinningWheel), args.Error(1)
}

func (m *MockWheelRepo) List(ctx context.Context) ([]domain.SpinningWheel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpinningWheel), args.Error(1)
}

func (m *MockWheelRepo) SetEnabled(ctx context.Context, id int32, enabled bool) error {
	return m.Called(ctx, id, enabled).Error(0)
}

type MockDiscountService struct{ mock.Mock }

func (m *MockDiscountService) Resolve(ctx context.Context, code string, subtotalCents int32, phone string) (*domain.DiscountResult, error) {
	args := m.Called(ctx, code, subtotalCents, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountResult), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, message string) error {
	return m.Called(ctx, message).Error(0)
}

type MockEmailSender struct{ mock.Mock }

func (m *MockEmailSender) SendEmail(ctx context.Context, to, toName, subject, body string) error {
	return m.Called(ctx, to, toName, subject, body).Error(0)
}
