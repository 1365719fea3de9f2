package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/logger"
	"autorent-backend/internal/notify"
	"autorent-backend/internal/repository"
	"autorent-backend/internal/utils"

	"github.com/google/uuid"
)

const (
	minCustomerAge = 18
	maxCustomerAge = 100
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	carRepo     repository.CarRepository
	feeRepo     repository.FeeRepository
	couponRepo  repository.CouponRepository
	discounts   DiscountService
	ledger      LedgerService
	notifier    notify.Notifier
	emails      notify.EmailSender
	// returnGiftCode is granted once per phone number on a repeat booking.
	returnGiftCode string
	log            *slog.Logger
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	carRepo repository.CarRepository,
	feeRepo repository.FeeRepository,
	couponRepo repository.CouponRepository,
	discounts DiscountService,
	ledger LedgerService,
	notifier notify.Notifier,
	emails notify.EmailSender,
	returnGiftCode string,
) BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		carRepo:        carRepo,
		feeRepo:        feeRepo,
		couponRepo:     couponRepo,
		discounts:      discounts,
		ledger:         ledger,
		notifier:       notifier,
		emails:         emails,
		returnGiftCode: returnGiftCode,
		log:            logger.WithService("booking"),
	}
}

func validateCreateRequest(req *CreateBookingRequest) error {
	if req.CustomerName == "" {
		return &domain.ValidationError{Field: "customer_name", Reason: "required"}
	}
	if req.CustomerPhone == "" {
		return &domain.ValidationError{Field: "customer_phone", Reason: "required"}
	}
	if req.CustomerAge < minCustomerAge || req.CustomerAge > maxCustomerAge {
		return &domain.ValidationError{Field: "customer_age", Reason: fmt.Sprintf("must be between %d and %d", minCustomerAge, maxCustomerAge)}
	}
	if !req.PickupLocation.Valid() {
		return &domain.ValidationError{Field: "pickup_location", Reason: "unknown location"}
	}
	if !req.DropoffLocation.Valid() {
		return &domain.ValidationError{Field: "dropoff_location", Reason: "unknown location"}
	}
	if req.PickupAt.Before(utils.StartOfDay(time.Now())) {
		return &domain.ValidationError{Field: "pickup_at", Reason: "pickup date cannot be in the past"}
	}
	if !req.ReturnAt.After(req.PickupAt) {
		return &domain.ValidationError{Field: "return_at", Reason: "return must be after pickup"}
	}
	return nil
}

// CreateBooking validates the request, prices it and persists it in
// pending. Ledger tracking, reward granting and notifications are
// best-effort: the booking survives their failure.
func (s *bookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*domain.Booking, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	car, err := s.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}
	if !car.IsActive {
		return nil, &domain.ValidationError{Field: "car_id", Reason: "car is not available for rental"}
	}

	available, err := s.CarAvailable(ctx, req.CarID, req.PickupAt, req.ReturnAt)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, &domain.ValidationError{Field: "car_id", Reason: "car is already booked for this period"}
	}

	fees, err := s.feeRepo.GetSchedule(ctx)
	if err != nil {
		return nil, err
	}

	quote := &domain.QuoteRequest{
		CarID:           req.CarID,
		PickupAt:        req.PickupAt,
		ReturnAt:        req.ReturnAt,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		Insurance:       req.Insurance,
	}
	breakdown := utils.CalculateBreakdown(car, fees, quote)

	// The booking stores the resolver's canonical code, not the raw input:
	// confirm-time consumption looks the code up again and must hit.
	discountCode := ""
	if req.DiscountCode != "" {
		res, err := s.discounts.Resolve(ctx, req.DiscountCode, breakdown.SubtotalCents(), req.CustomerPhone)
		if err != nil {
			return nil, err
		}
		if !res.Valid {
			return nil, &domain.ValidationError{Field: "discount_code", Reason: res.Reason}
		}
		utils.ApplyDiscount(breakdown, res.AmountCents, res.FreeDays)
		discountCode = res.Code
	}

	booking := &domain.Booking{
		Reference:       uuid.NewString(),
		CarID:           req.CarID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   utils.NormalizePhone(req.CustomerPhone),
		CustomerAge:     req.CustomerAge,
		PickupAt:        req.PickupAt,
		ReturnAt:        req.ReturnAt,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		Insurance:       req.Insurance,
		DiscountCode:    discountCode,
		Price:           *breakdown,
		Status:          domain.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.trackAndReward(ctx, booking)

	s.notifyChat(ctx, fmt.Sprintf("New booking %s: %s %s, %s -> %s, total %s",
		booking.Reference, car.Make, car.Model,
		booking.PickupAt.Format("2006-01-02 15:04"), booking.ReturnAt.Format("2006-01-02 15:04"),
		formatCents(booking.Price.TotalCents)))
	s.emailCustomer(ctx, booking, "Booking received",
		fmt.Sprintf("Hello %s,\n\nWe received your booking %s for %s %s. Total: %s. We will confirm it shortly.",
			booking.CustomerName, booking.Reference, car.Make, car.Model, formatCents(booking.Price.TotalCents)))

	return booking, nil
}

// trackAndReward appends the booking to the phone ledger and grants the
// one-time return gift on a repeat booking. Failures here are logged, never
// surfaced: the booking is already persisted.
func (s *bookingService) trackAndReward(ctx context.Context, booking *domain.Booking) {
	if err := s.ledger.TrackBooking(ctx, booking.CustomerPhone, booking.Reference); err != nil {
		s.log.Error("failed to track booking in phone ledger", "booking", booking.Reference, "error", err)
		return
	}

	if s.returnGiftCode == "" {
		return
	}
	rec, err := s.ledger.GetRecord(ctx, booking.CustomerPhone)
	if err != nil {
		s.log.Error("failed to read phone ledger for return gift", "booking", booking.Reference, "error", err)
		return
	}
	if len(rec.BookingIDs) < 2 || rec.ReturnGiftRedeemed {
		return
	}
	// Grant before marking: an unmarked grant retries as a no-op append on
	// the next booking, while a marked-but-failed grant would lose the gift.
	if err := s.ledger.GrantCoupon(ctx, booking.CustomerPhone, s.returnGiftCode); err != nil {
		s.log.Error("failed to grant return gift", "phone", rec.Phone, "error", err)
		return
	}
	if _, err := s.ledger.MarkReturnGiftRedeemed(ctx, booking.CustomerPhone); err != nil {
		s.log.Error("failed to mark return gift redeemed", "phone", rec.Phone, "error", err)
	}
}

// ConfirmBooking moves a pending booking to confirmed, consumes the
// redemption code if one was used and opens the active rental record.
func (s *bookingService) ConfirmBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := domain.NextStatus(booking.Status, domain.EventConfirm)
	if err != nil {
		return nil, err
	}
	affected, err := s.bookingRepo.UpdateStatus(ctx, id, booking.Status, next, "")
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Someone else moved it first.
		return nil, &domain.StateConflictError{Status: booking.Status, Event: domain.EventConfirm}
	}
	booking.Status = next

	s.consumeRedemptionCode(ctx, booking)

	rental := &domain.ActiveRental{
		BookingID: booking.ID,
		CarID:     booking.CarID,
		PickupAt:  booking.PickupAt,
		ReturnAt:  booking.ReturnAt,
	}
	if err := s.bookingRepo.CreateActiveRental(ctx, rental); err != nil {
		return nil, fmt.Errorf("failed to create active rental: %w", err)
	}

	// Re-track: a no-op when create already recorded it.
	if err := s.ledger.TrackBooking(ctx, booking.CustomerPhone, booking.Reference); err != nil {
		s.log.Error("failed to re-track booking in phone ledger", "booking", booking.Reference, "error", err)
	}

	s.notifyChat(ctx, fmt.Sprintf("Booking %s confirmed", booking.Reference))
	s.emailCustomer(ctx, booking, "Booking confirmed",
		fmt.Sprintf("Hello %s,\n\nYour booking %s is confirmed. Pickup: %s at %s.",
			booking.CustomerName, booking.Reference, booking.PickupAt.Format("2006-01-02 15:04"), booking.PickupLocation))

	return booking, nil
}

// consumeRedemptionCode moves a used redemption code out of the coupon pool
// and marks it redeemed on the phone ledger. Best-effort: a confirmed
// booking is never rolled back over reward bookkeeping.
func (s *bookingService) consumeRedemptionCode(ctx context.Context, booking *domain.Booking) {
	if booking.DiscountCode == "" {
		return
	}
	if _, err := s.couponRepo.FindByRedemptionCode(ctx, booking.DiscountCode); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Error("failed to look up redemption code", "booking", booking.Reference, "error", err)
		}
		// Main coupons are reusable; nothing to consume.
		return
	}
	if err := s.ledger.RedeemCoupon(ctx, booking.CustomerPhone, booking.DiscountCode); err != nil &&
		!errors.Is(err, domain.ErrAlreadyRedeemed) {
		s.log.Error("failed to redeem coupon on phone ledger", "booking", booking.Reference, "error", err)
	}
	if err := s.couponRepo.ConsumeRedemptionCode(ctx, booking.DiscountCode); err != nil {
		s.log.Error("failed to consume redemption code", "booking", booking.Reference, "error", err)
	}
}

func (s *bookingService) RejectBooking(ctx context.Context, id int32, reason string) (*domain.Booking, error) {
	if reason == "" {
		return nil, &domain.ValidationError{Field: "reason", Reason: "required"}
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := domain.NextStatus(booking.Status, domain.EventReject)
	if err != nil {
		return nil, err
	}
	affected, err := s.bookingRepo.UpdateStatus(ctx, id, booking.Status, next, reason)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, &domain.StateConflictError{Status: booking.Status, Event: domain.EventReject}
	}
	booking.Status = next
	booking.RejectionReason = reason

	s.notifyChat(ctx, fmt.Sprintf("Booking %s rejected: %s", booking.Reference, reason))
	s.emailCustomer(ctx, booking, "Booking rejected",
		fmt.Sprintf("Hello %s,\n\nUnfortunately your booking %s was rejected: %s.", booking.CustomerName, booking.Reference, reason))

	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := domain.NextStatus(booking.Status, domain.EventCancel)
	if err != nil {
		return nil, err
	}
	wasConfirmed := booking.Status == domain.BookingStatusConfirmed

	affected, err := s.bookingRepo.UpdateStatus(ctx, id, booking.Status, next, "")
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, &domain.StateConflictError{Status: booking.Status, Event: domain.EventCancel}
	}
	booking.Status = next

	if wasConfirmed {
		if err := s.bookingRepo.DeleteActiveRentalByBooking(ctx, booking.ID); err != nil {
			s.log.Error("failed to remove active rental", "booking", booking.Reference, "error", err)
		}
	}

	s.notifyChat(ctx, fmt.Sprintf("Booking %s cancelled", booking.Reference))

	return booking, nil
}

// ListBookings sweeps overdue confirmed bookings to finished first, so
// listings never show a rental that already ended as still running.
func (s *bookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	finished, err := s.bookingRepo.FinishOverdue(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	if finished > 0 {
		s.log.Info("auto-finished overdue bookings", "count", finished)
	}
	return s.bookingRepo.List(ctx)
}

func (s *bookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// CarAvailable reports whether no pending or confirmed booking overlaps the
// period. Availability is always derived, never cached on the car.
func (s *bookingService) CarAvailable(ctx context.Context, carID int32, from, to time.Time) (bool, error) {
	count, err := s.bookingRepo.CountOverlapping(ctx, carID, from, to)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (s *bookingService) notifyChat(ctx context.Context, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, message); err != nil {
		s.log.Error("failed to send chat notification", "error", err)
	}
}

func (s *bookingService) emailCustomer(ctx context.Context, booking *domain.Booking, subject, body string) {
	if s.emails == nil || booking.CustomerEmail == "" {
		return
	}
	if err := s.emails.SendEmail(ctx, booking.CustomerEmail, booking.CustomerName, subject, body); err != nil {
		s.log.Error("failed to send customer email", "booking", booking.Reference, "error", err)
	}
}

func formatCents(cents int32) string {
	return fmt.Sprintf("%d.%02d EUR", cents/100, cents%100)
}
