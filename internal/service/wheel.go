package service

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/repository"
)

type wheelService struct {
	wheelRepo  repository.WheelRepository
	couponRepo repository.CouponRepository
	ledger     LedgerService
	log        *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewWheelService builds the wheel service. src lets tests inject a
// deterministic random source; pass nil for a time-seeded one.
func NewWheelService(wheelRepo repository.WheelRepository, couponRepo repository.CouponRepository, ledger LedgerService, src rand.Source) WheelService {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &wheelService{
		wheelRepo:  wheelRepo,
		couponRepo: couponRepo,
		ledger:     ledger,
		log:        logger.WithService("wheel"),
		rng:        rand.New(src),
	}
}

// pickSegmentIndex runs a roulette draw over the segment weights. Segments
// with non-positive weight are skipped; when every weight is misconfigured
// to zero the draw falls back to a uniform pick over the full list so a
// spin always lands somewhere.
func pickSegmentIndex(segments []domain.WheelSegment, rng *rand.Rand) int {
	var total int64
	for _, seg := range segments {
		if seg.Weight > 0 {
			total += int64(seg.Weight)
		}
	}
	if total == 0 {
		return rng.Intn(len(segments))
	}

	draw := rng.Int63n(total)
	var cumulative int64
	for i, seg := range segments {
		if seg.Weight <= 0 {
			continue
		}
		cumulative += int64(seg.Weight)
		if draw < cumulative {
			return i
		}
	}
	// Unreachable while weights are consistent with total.
	return len(segments) - 1
}

func (s *wheelService) Spin(ctx context.Context, wheelID int32, phone string) (*SpinResult, error) {
	wheel, err := s.wheelRepo.GetByID(ctx, wheelID)
	if err != nil {
		return nil, err
	}
	if !wheel.Enabled {
		return nil, &domain.ValidationError{Field: "wheel", Reason: "wheel is disabled"}
	}
	if len(wheel.Segments) == 0 {
		return nil, &domain.ValidationError{Field: "wheel", Reason: "wheel has no segments"}
	}

	s.mu.Lock()
	idx := pickSegmentIndex(wheel.Segments, s.rng)
	s.mu.Unlock()

	result := &SpinResult{
		WinningIndex: idx,
		CouponID:     wheel.Segments[idx].CouponID,
	}

	if phone == "" {
		return result, nil
	}

	if _, err := s.ledger.TrackForWheel(ctx, phone); err != nil {
		return nil, err
	}

	coupon, err := s.couponRepo.GetByID(ctx, result.CouponID)
	if err != nil {
		return nil, err
	}

	code := s.drawPrizeCode(ctx, coupon)
	if code == "" {
		// No redemption pool on this coupon: grant the main code itself.
		code = coupon.Code
	}
	if err := s.ledger.GrantCoupon(ctx, phone, code); err != nil {
		return nil, err
	}
	result.PrizeCode = code

	return result, nil
}

// drawPrizeCode hands out the first pool code the wheel has not shown yet.
// Returns "" when the coupon has no unshown codes left.
func (s *wheelService) drawPrizeCode(ctx context.Context, coupon *domain.Coupon) string {
	shown := make(map[string]bool, len(coupon.ShowedCodes))
	for _, c := range coupon.ShowedCodes {
		shown[c] = true
	}
	for _, code := range coupon.AvailableCodes {
		if shown[code] {
			continue
		}
		if err := s.couponRepo.MarkCodeShown(ctx, coupon.ID, code); err != nil {
			// Lost a race for this code; try the next one.
			s.log.Debug("prize code taken concurrently", "coupon_id", coupon.ID)
			continue
		}
		return code
	}
	return ""
}
