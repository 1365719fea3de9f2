package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"
	"autorent-backend/internal/utils"
)

type discountService struct {
	couponRepo repository.CouponRepository
	phoneRepo  repository.PhoneRepository
}

func NewDiscountService(couponRepo repository.CouponRepository, phoneRepo repository.PhoneRepository) DiscountService {
	return &discountService{
		couponRepo: couponRepo,
		phoneRepo:  phoneRepo,
	}
}

func invalid(reason string) *domain.DiscountResult {
	return &domain.DiscountResult{Valid: false, Reason: reason}
}

// Resolve tries the code as a single-use redemption code first, then as a
// main coupon. Main coupon codes are case-insensitive; redemption codes
// match exactly.
func (s *discountService) Resolve(ctx context.Context, code string, subtotalCents int32, phone string) (*domain.DiscountResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return invalid(domain.DiscountReasonInvalidCode), nil
	}
	now := time.Now()

	coupon, err := s.couponRepo.FindByRedemptionCode(ctx, code)
	switch {
	case err == nil:
		return s.resolveRedemption(ctx, coupon, code, subtotalCents, phone, now)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	coupon, err = s.couponRepo.GetByCode(ctx, strings.ToUpper(code))
	if errors.Is(err, domain.ErrNotFound) {
		return invalid(domain.DiscountReasonInvalidCode), nil
	}
	if err != nil {
		return nil, err
	}
	if !coupon.IsActive {
		return invalid(domain.DiscountReasonInvalidCode), nil
	}
	if coupon.Expired(now) {
		return invalid(domain.DiscountReasonExpired), nil
	}
	return s.priced(coupon, coupon.Code, subtotalCents, false), nil
}

func (s *discountService) resolveRedemption(ctx context.Context, coupon *domain.Coupon, code string, subtotalCents int32, phone string, now time.Time) (*domain.DiscountResult, error) {
	if !coupon.IsActive {
		return invalid(domain.DiscountReasonInvalidCode), nil
	}
	if coupon.Expired(now) {
		return invalid(domain.DiscountReasonExpired), nil
	}
	// When a phone number accompanies the request the code must have been
	// granted to that phone's ledger entry.
	if phone != "" {
		rec, err := s.phoneRepo.Get(ctx, utils.NormalizePhone(phone))
		if errors.Is(err, domain.ErrNotFound) {
			return invalid(domain.DiscountReasonWrongPhone), nil
		}
		if err != nil {
			return nil, err
		}
		if !rec.HasAvailableCoupon(code) {
			return invalid(domain.DiscountReasonWrongPhone), nil
		}
	}
	return s.priced(coupon, code, subtotalCents, true), nil
}

func (s *discountService) priced(coupon *domain.Coupon, code string, subtotalCents int32, redemption bool) *domain.DiscountResult {
	res := &domain.DiscountResult{
		Valid:            true,
		Code:             code,
		CouponID:         coupon.ID,
		IsRedemptionCode: redemption,
		AmountCents:      coupon.DiscountCents(subtotalCents),
	}
	if coupon.Type == domain.CouponTypeFreeDays {
		// Free days are granted operationally, not priced into the quote.
		res.FreeDays = coupon.Value
	}
	return res
}
