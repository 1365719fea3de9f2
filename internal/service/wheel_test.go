package service_test

import (
	"context"
	"math/rand"
	"testing"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/service"

	"github.com/stretchr/testify/assert"
)

func wheelWith(weights ...int32) *domain.SpinningWheel {
	w := &domain.SpinningWheel{ID: 1, Name: "standard", Enabled: true}
	for i, weight := range weights {
		w.Segments = append(w.Segments, domain.WheelSegment{
			CouponID: int32(i + 100),
			Weight:   weight,
			Position: int32(i),
		})
	}
	return w
}

func TestWheelService_Spin_Selection(t *testing.T) {
	ctx := context.Background()

	t.Run("SingleWinnableSegmentAlwaysWins", func(t *testing.T) {
		wheelRepo := new(MockWheelRepo)
		svc := service.NewWheelService(wheelRepo, new(MockCouponRepo), nil, rand.NewSource(1))
		wheelRepo.On("GetByID", ctx, int32(1)).Return(wheelWith(0, 0, 100), nil)

		for i := 0; i < 20; i++ {
			res, err := svc.Spin(ctx, 1, "")
			assert.NoError(t, err)
			assert.Equal(t, 2, res.WinningIndex)
		}
	})

	t.Run("AllZeroWeightsStillLands", func(t *testing.T) {
		wheelRepo := new(MockWheelRepo)
		svc := service.NewWheelService(wheelRepo, new(MockCouponRepo), nil, rand.NewSource(7))
		wheelRepo.On("GetByID", ctx, int32(1)).Return(wheelWith(0, 0, 0), nil)

		seen := map[int]bool{}
		for i := 0; i < 100; i++ {
			res, err := svc.Spin(ctx, 1, "")
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, res.WinningIndex, 0)
			assert.Less(t, res.WinningIndex, 3)
			seen[res.WinningIndex] = true
		}
		assert.Len(t, seen, 3)
	})

	t.Run("WeightsDriveDistribution", func(t *testing.T) {
		wheelRepo := new(MockWheelRepo)
		svc := service.NewWheelService(wheelRepo, new(MockCouponRepo), nil, rand.NewSource(42))
		wheelRepo.On("GetByID", ctx, int32(1)).Return(wheelWith(90, 10), nil)

		counts := [2]int{}
		for i := 0; i < 1000; i++ {
			res, err := svc.Spin(ctx, 1, "")
			assert.NoError(t, err)
			counts[res.WinningIndex]++
		}
		assert.Greater(t, counts[0], 800)
		assert.Greater(t, counts[1], 20)
	})

	t.Run("DisabledWheel", func(t *testing.T) {
		wheelRepo := new(MockWheelRepo)
		svc := service.NewWheelService(wheelRepo, new(MockCouponRepo), nil, rand.NewSource(1))
		wheel := wheelWith(50, 50)
		wheel.Enabled = false
		wheelRepo.On("GetByID", ctx, int32(1)).Return(wheel, nil)

		_, err := svc.Spin(ctx, 1, "")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("EmptyWheel", func(t *testing.T) {
		wheelRepo := new(MockWheelRepo)
		svc := service.NewWheelService(wheelRepo, new(MockCouponRepo), nil, rand.NewSource(1))
		wheelRepo.On("GetByID", ctx, int32(1)).Return(wheelWith(), nil)

		_, err := svc.Spin(ctx, 1, "")
		assert.True(t, domain.IsValidation(err))
	})
}

func TestWheelService_Spin_GrantsPrize(t *testing.T) {
	ctx := context.Background()

	t.Run("HandsOutUnshownPoolCode", func(t *testing.T) {
		wheelRepo := new(MockWheelRepo)
		couponRepo := new(MockCouponRepo)
		phoneRepo := new(MockPhoneRepo)
		ledger := service.NewLedgerService(phoneRepo)
		svc := service.NewWheelService(wheelRepo, couponRepo, ledger, rand.NewSource(1))

		wheelRepo.On("GetByID", ctx, int32(1)).Return(wheelWith(100), nil)
		phoneRepo.On("TrackForWheel", ctx, "712345678").Return(true, nil).Once()
		couponRepo.On("GetByID", ctx, int32(100)).Return(&domain.Coupon{
			ID: 100, Code: "WHEEL10", IsActive: true,
			AvailableCodes: []string{"code-a", "code-b"},
			ShowedCodes:    []string{"code-a"},
		}, nil).Once()
		couponRepo.On("MarkCodeShown", ctx, int32(100), "code-b").Return(nil).Once()
		phoneRepo.On("GrantCoupon", ctx, "712345678", "code-b").Return(nil).Once()

		res, err := svc.Spin(ctx, 1, "+40 712 345 678")
		assert.NoError(t, err)
		assert.Equal(t, "code-b", res.PrizeCode)
		couponRepo.AssertExpectations(t)
		phoneRepo.AssertExpectations(t)
	})

	t.Run("FallsBackToMainCodeWhenPoolEmpty", func(t *testing.T) {
		wheelRepo := new(MockWheelRepo)
		couponRepo := new(MockCouponRepo)
		phoneRepo := new(MockPhoneRepo)
		ledger := service.NewLedgerService(phoneRepo)
		svc := service.NewWheelService(wheelRepo, couponRepo, ledger, rand.NewSource(1))

		wheelRepo.On("GetByID", ctx, int32(1)).Return(wheelWith(100), nil)
		phoneRepo.On("TrackForWheel", ctx, "712345678").Return(false, nil).Once()
		couponRepo.On("GetByID", ctx, int32(100)).Return(&domain.Coupon{
			ID: 100, Code: "WHEEL10", IsActive: true,
		}, nil).Once()
		phoneRepo.On("GrantCoupon", ctx, "712345678", "WHEEL10").Return(nil).Once()

		res, err := svc.Spin(ctx, 1, "0712345678")
		assert.NoError(t, err)
		assert.Equal(t, "WHEEL10", res.PrizeCode)
	})

	t.Run("LostRaceTriesNextCode", func(t *testing.T) {
		wheelRepo := new(MockWheelRepo)
		couponRepo := new(MockCouponRepo)
		phoneRepo := new(MockPhoneRepo)
		ledger := service.NewLedgerService(phoneRepo)
		svc := service.NewWheelService(wheelRepo, couponRepo, ledger, rand.NewSource(1))

		wheelRepo.On("GetByID", ctx, int32(1)).Return(wheelWith(100), nil)
		phoneRepo.On("TrackForWheel", ctx, "712345678").Return(false, nil).Once()
		couponRepo.On("GetByID", ctx, int32(100)).Return(&domain.Coupon{
			ID: 100, Code: "WHEEL10", IsActive: true,
			AvailableCodes: []string{"code-a", "code-b"},
		}, nil).Once()
		couponRepo.On("MarkCodeShown", ctx, int32(100), "code-a").Return(domain.ErrCouponNotAvailable).Once()
		couponRepo.On("MarkCodeShown", ctx, int32(100), "code-b").Return(nil).Once()
		phoneRepo.On("GrantCoupon", ctx, "712345678", "code-b").Return(nil).Once()

		res, err := svc.Spin(ctx, 1, "712345678")
		assert.NoError(t, err)
		assert.Equal(t, "code-b", res.PrizeCode)
		couponRepo.AssertExpectations(t)
	})
}
