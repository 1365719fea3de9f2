package service_test

import (
	"context"
	"testing"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestDiscountService_MainCoupon(t *testing.T) {
	couponRepo := new(MockCouponRepo)
	phoneRepo := new(MockPhoneRepo)
	svc := service.NewDiscountService(couponRepo, phoneRepo)
	ctx := context.Background()

	t.Run("PercentageApplied", func(t *testing.T) {
		couponRepo.On("FindByRedemptionCode", ctx, "SUMMER10").Return(nil, domain.ErrNotFound).Once()
		couponRepo.On("GetByCode", ctx, "SUMMER10").
			Return(&domain.Coupon{ID: 1, Code: "SUMMER10", Type: domain.CouponTypePercentage, Value: 10, IsActive: true}, nil).Once()

		res, err := svc.Resolve(ctx, "SUMMER10", 12000, "")
		assert.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Equal(t, int32(1200), res.AmountCents)
		assert.False(t, res.IsRedemptionCode)
	})

	t.Run("CodeIsCaseInsensitive", func(t *testing.T) {
		couponRepo.On("FindByRedemptionCode", ctx, "summer10").Return(nil, domain.ErrNotFound).Once()
		couponRepo.On("GetByCode", ctx, "SUMMER10").
			Return(&domain.Coupon{ID: 1, Code: "SUMMER10", Type: domain.CouponTypePercentage, Value: 10, IsActive: true}, nil).Once()

		res, err := svc.Resolve(ctx, "summer10", 12000, "")
		assert.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		couponRepo.On("FindByRedemptionCode", ctx, "NOPE").Return(nil, domain.ErrNotFound).Once()
		couponRepo.On("GetByCode", ctx, "NOPE").Return(nil, domain.ErrNotFound).Once()

		res, err := svc.Resolve(ctx, "NOPE", 12000, "")
		assert.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, domain.DiscountReasonInvalidCode, res.Reason)
	})

	t.Run("ExpiredCode", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		couponRepo.On("FindByRedemptionCode", ctx, "OLD").Return(nil, domain.ErrNotFound).Once()
		couponRepo.On("GetByCode", ctx, "OLD").
			Return(&domain.Coupon{ID: 2, Code: "OLD", Type: domain.CouponTypeFixed, Value: 1000, IsActive: true, ExpiresAt: &past}, nil).Once()

		res, err := svc.Resolve(ctx, "OLD", 12000, "")
		assert.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, domain.DiscountReasonExpired, res.Reason)
	})

	t.Run("InactiveCodeLooksInvalid", func(t *testing.T) {
		couponRepo.On("FindByRedemptionCode", ctx, "OFF").Return(nil, domain.ErrNotFound).Once()
		couponRepo.On("GetByCode", ctx, "OFF").
			Return(&domain.Coupon{ID: 3, Code: "OFF", Type: domain.CouponTypeFixed, Value: 1000, IsActive: false}, nil).Once()

		res, err := svc.Resolve(ctx, "OFF", 12000, "")
		assert.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, domain.DiscountReasonInvalidCode, res.Reason)
	})

	t.Run("FixedCappedAtSubtotal", func(t *testing.T) {
		couponRepo.On("FindByRedemptionCode", ctx, "BIG").Return(nil, domain.ErrNotFound).Once()
		couponRepo.On("GetByCode", ctx, "BIG").
			Return(&domain.Coupon{ID: 4, Code: "BIG", Type: domain.CouponTypeFixed, Value: 99999, IsActive: true}, nil).Once()

		res, err := svc.Resolve(ctx, "BIG", 5000, "")
		assert.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Equal(t, int32(5000), res.AmountCents)
	})

	t.Run("FreeDaysCoupon", func(t *testing.T) {
		couponRepo.On("FindByRedemptionCode", ctx, "DAYS2").Return(nil, domain.ErrNotFound).Once()
		couponRepo.On("GetByCode", ctx, "DAYS2").
			Return(&domain.Coupon{ID: 5, Code: "DAYS2", Type: domain.CouponTypeFreeDays, Value: 2, IsActive: true}, nil).Once()

		res, err := svc.Resolve(ctx, "DAYS2", 12000, "")
		assert.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Equal(t, int32(0), res.AmountCents)
		assert.Equal(t, int32(2), res.FreeDays)
	})

	couponRepo.AssertExpectations(t)
}

func TestDiscountService_RedemptionCode(t *testing.T) {
	ctx := context.Background()
	coupon := &domain.Coupon{
		ID: 7, Code: "WHEEL20", Type: domain.CouponTypePercentage, Value: 20, IsActive: true,
		AvailableCodes: []string{"abc-123"},
	}

	t.Run("WithoutPhoneResolves", func(t *testing.T) {
		couponRepo := new(MockCouponRepo)
		phoneRepo := new(MockPhoneRepo)
		svc := service.NewDiscountService(couponRepo, phoneRepo)

		couponRepo.On("FindByRedemptionCode", ctx, "abc-123").Return(coupon, nil).Once()

		res, err := svc.Resolve(ctx, "abc-123", 10000, "")
		assert.NoError(t, err)
		assert.True(t, res.Valid)
		assert.True(t, res.IsRedemptionCode)
		assert.Equal(t, int32(2000), res.AmountCents)
		couponRepo.AssertExpectations(t)
	})

	t.Run("PhoneMustHoldTheCode", func(t *testing.T) {
		couponRepo := new(MockCouponRepo)
		phoneRepo := new(MockPhoneRepo)
		svc := service.NewDiscountService(couponRepo, phoneRepo)

		couponRepo.On("FindByRedemptionCode", ctx, "abc-123").Return(coupon, nil).Once()
		phoneRepo.On("Get", ctx, "712345678").
			Return(&domain.PhoneRecord{Phone: "712345678", AvailableCoupons: []string{"abc-123"}}, nil).Once()

		res, err := svc.Resolve(ctx, "abc-123", 10000, "0712345678")
		assert.NoError(t, err)
		assert.True(t, res.Valid)
		couponRepo.AssertExpectations(t)
		phoneRepo.AssertExpectations(t)
	})

	t.Run("WrongPhoneRejected", func(t *testing.T) {
		couponRepo := new(MockCouponRepo)
		phoneRepo := new(MockPhoneRepo)
		svc := service.NewDiscountService(couponRepo, phoneRepo)

		couponRepo.On("FindByRedemptionCode", ctx, "abc-123").Return(coupon, nil).Once()
		phoneRepo.On("Get", ctx, "798765432").
			Return(&domain.PhoneRecord{Phone: "798765432"}, nil).Once()

		res, err := svc.Resolve(ctx, "abc-123", 10000, "0798765432")
		assert.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, domain.DiscountReasonWrongPhone, res.Reason)
	})

	t.Run("UnknownPhoneRejected", func(t *testing.T) {
		couponRepo := new(MockCouponRepo)
		phoneRepo := new(MockPhoneRepo)
		svc := service.NewDiscountService(couponRepo, phoneRepo)

		couponRepo.On("FindByRedemptionCode", ctx, "abc-123").Return(coupon, nil).Once()
		phoneRepo.On("Get", ctx, "711111111").Return(nil, domain.ErrNotFound).Once()

		res, err := svc.Resolve(ctx, "abc-123", 10000, "0711111111")
		assert.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, domain.DiscountReasonWrongPhone, res.Reason)
	})

	t.Run("EmptyCodeInvalid", func(t *testing.T) {
		svc := service.NewDiscountService(new(MockCouponRepo), new(MockPhoneRepo))
		res, err := svc.Resolve(ctx, "   ", 10000, "")
		assert.NoError(t, err)
		assert.False(t, res.Valid)
	})
}
