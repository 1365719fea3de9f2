package service

import (
	"context"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"
	"autorent-backend/internal/utils"
)

// ledgerService applies phone normalization in front of every repository
// call so reads and writes always key on the same canonical number.
type ledgerService struct {
	phoneRepo repository.PhoneRepository
}

func NewLedgerService(phoneRepo repository.PhoneRepository) LedgerService {
	return &ledgerService{phoneRepo: phoneRepo}
}

func (s *ledgerService) TrackBooking(ctx context.Context, phone, bookingRef string) error {
	norm := utils.NormalizePhone(phone)
	if norm == "" {
		return &domain.ValidationError{Field: "phone", Reason: "empty after normalization"}
	}
	return s.phoneRepo.TrackBooking(ctx, norm, bookingRef)
}

func (s *ledgerService) TrackForWheel(ctx context.Context, phone string) (bool, error) {
	norm := utils.NormalizePhone(phone)
	if norm == "" {
		return false, &domain.ValidationError{Field: "phone", Reason: "empty after normalization"}
	}
	return s.phoneRepo.TrackForWheel(ctx, norm)
}

func (s *ledgerService) GrantCoupon(ctx context.Context, phone, code string) error {
	return s.phoneRepo.GrantCoupon(ctx, utils.NormalizePhone(phone), code)
}

func (s *ledgerService) RedeemCoupon(ctx context.Context, phone, code string) error {
	return s.phoneRepo.RedeemCoupon(ctx, utils.NormalizePhone(phone), code)
}

func (s *ledgerService) MarkReturnGiftRedeemed(ctx context.Context, phone string) (bool, error) {
	affected, err := s.phoneRepo.MarkReturnGiftRedeemed(ctx, utils.NormalizePhone(phone))
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *ledgerService) GetRecord(ctx context.Context, phone string) (*domain.PhoneRecord, error) {
	return s.phoneRepo.Get(ctx, utils.NormalizePhone(phone))
}
