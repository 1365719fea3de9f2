package service

import (
	"context"
	"log/slog"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/repository"
	"autorent-backend/internal/utils"
)

type quoteService struct {
	carRepo   repository.CarRepository
	feeRepo   repository.FeeRepository
	discounts DiscountService
	log       *slog.Logger
}

func NewQuoteService(carRepo repository.CarRepository, feeRepo repository.FeeRepository, discounts DiscountService) QuoteService {
	return &quoteService{
		carRepo:   carRepo,
		feeRepo:   feeRepo,
		discounts: discounts,
		log:       logger.WithService("quote"),
	}
}

// QuotePrice turns a rental request into an itemized price breakdown. An
// invalid discount code leaves the quote undiscounted; the separate
// validate-discount operation tells the caller why.
func (s *quoteService) QuotePrice(ctx context.Context, req *domain.QuoteRequest) (*domain.PriceBreakdown, error) {
	if !req.PickupLocation.Valid() {
		return nil, &domain.ValidationError{Field: "pickup_location", Reason: "unknown location"}
	}
	if !req.DropoffLocation.Valid() {
		return nil, &domain.ValidationError{Field: "dropoff_location", Reason: "unknown location"}
	}
	if req.PickupAt.IsZero() || req.ReturnAt.IsZero() {
		return nil, &domain.ValidationError{Field: "dates", Reason: "pickup and return times are required"}
	}

	car, err := s.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}

	fees, err := s.feeRepo.GetSchedule(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := utils.CalculateBreakdown(car, fees, req)

	if req.DiscountCode != "" {
		res, err := s.discounts.Resolve(ctx, req.DiscountCode, breakdown.SubtotalCents(), req.CustomerPhone)
		if err != nil {
			return nil, err
		}
		if res.Valid {
			utils.ApplyDiscount(breakdown, res.AmountCents, res.FreeDays)
		} else {
			s.log.Debug("discount code not applied", "code", req.DiscountCode, "reason", res.Reason)
		}
	}

	return breakdown, nil
}
