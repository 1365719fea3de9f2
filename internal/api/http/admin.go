package http

import (
	"net/http"
	"strings"
	"time"

	"autorent-backend/internal/config"
	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"
	"autorent-backend/internal/security"
	"autorent-backend/internal/service"

	"github.com/google/uuid"
)

// AdminHandler exposes the operator API: booking moderation, coupon and
// wheel administration, fee schedule maintenance.
type AdminHandler struct {
	admin      config.AdminConfig
	tokens     security.TokenManager
	bookings   service.BookingService
	ledger     service.LedgerService
	couponRepo repository.CouponRepository
	wheelRepo  repository.WheelRepository
	feeRepo    repository.FeeRepository
}

func NewAdminHandler(
	admin config.AdminConfig,
	tokens security.TokenManager,
	bookings service.BookingService,
	ledger service.LedgerService,
	couponRepo repository.CouponRepository,
	wheelRepo repository.WheelRepository,
	feeRepo repository.FeeRepository,
) *AdminHandler {
	return &AdminHandler{
		admin:      admin,
		tokens:     tokens,
		bookings:   bookings,
		ledger:     ledger,
		couponRepo: couponRepo,
		wheelRepo:  wheelRepo,
		feeRepo:    feeRepo,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !strings.EqualFold(req.Email, h.admin.Email) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := security.VerifyPassword(h.admin.PasswordHash, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := h.tokens.GenerateAdminToken(h.admin.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.ListBookings(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

func (h *AdminHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, err)
		return
	}
	booking, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *AdminHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, err)
		return
	}
	booking, err := h.bookings.ConfirmBooking(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *AdminHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, err)
		return
	}
	var req rejectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	booking, err := h.bookings.RejectBooking(r.Context(), id, req.Reason)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

type couponRequest struct {
	Code      string            `json:"code"`
	Type      domain.CouponType `json:"type"`
	Value     int32             `json:"value"`
	IsActive  bool              `json:"is_active"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
}

func (req *couponRequest) validate() error {
	if req.Code == "" {
		return &domain.ValidationError{Field: "code", Reason: "required"}
	}
	if !req.Type.Valid() {
		return &domain.ValidationError{Field: "type", Reason: "unknown coupon type"}
	}
	switch req.Type {
	case domain.CouponTypePercentage:
		if req.Value < 1 || req.Value > 100 {
			return &domain.ValidationError{Field: "value", Reason: "percentage must be between 1 and 100"}
		}
	case domain.CouponTypeFreeDays:
		if req.Value < 1 || req.Value > 30 {
			return &domain.ValidationError{Field: "value", Reason: "free days must be between 1 and 30"}
		}
	case domain.CouponTypeFixed:
		if req.Value < 1 {
			return &domain.ValidationError{Field: "value", Reason: "amount must be positive"}
		}
	}
	return nil
}

func (h *AdminHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondServiceError(w, err)
		return
	}
	coupon := &domain.Coupon{
		Code:      strings.ToUpper(req.Code),
		Type:      req.Type,
		Value:     req.Value,
		IsActive:  req.IsActive,
		ExpiresAt: req.ExpiresAt,
	}
	if err := h.couponRepo.Create(r.Context(), coupon); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, coupon)
}

func (h *AdminHandler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, err)
		return
	}
	var req couponRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondServiceError(w, err)
		return
	}
	coupon, err := h.couponRepo.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	coupon.Code = strings.ToUpper(req.Code)
	coupon.Type = req.Type
	coupon.Value = req.Value
	coupon.IsActive = req.IsActive
	coupon.ExpiresAt = req.ExpiresAt
	if err := h.couponRepo.Update(r.Context(), coupon); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, coupon)
}

func (h *AdminHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.couponRepo.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, coupons)
}

type generateCodesRequest struct {
	Count int `json:"count"`
}

// GenerateCodes appends freshly generated single-use redemption codes to a
// coupon's pool.
func (h *AdminHandler) GenerateCodes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, err)
		return
	}
	var req generateCodesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Count < 1 || req.Count > 1000 {
		respondServiceError(w, &domain.ValidationError{Field: "count", Reason: "must be between 1 and 1000"})
		return
	}
	if _, err := h.couponRepo.GetByID(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	codes := make([]string, req.Count)
	for i := range codes {
		codes[i] = uuid.NewString()
	}
	if err := h.couponRepo.AddRedemptionCodes(r.Context(), id, codes); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string][]string{"codes": codes})
}

func (h *AdminHandler) ListWheels(w http.ResponseWriter, r *http.Request) {
	wheels, err := h.wheelRepo.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wheels)
}

type wheelEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *AdminHandler) SetWheelEnabled(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, err)
		return
	}
	var req wheelEnabledRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.wheelRepo.SetEnabled(r.Context(), id, req.Enabled); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) UpsertFee(w http.ResponseWriter, r *http.Request) {
	var fee domain.Fee
	if err := decodeJSON(r, &fee); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fee.Name == "" {
		respondServiceError(w, &domain.ValidationError{Field: "name", Reason: "required"})
		return
	}
	if fee.AmountCents < 0 {
		respondServiceError(w, &domain.ValidationError{Field: "amount_cents", Reason: "must not be negative"})
		return
	}
	if err := h.feeRepo.Upsert(r.Context(), &fee); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fee)
}

func (h *AdminHandler) ListFees(w http.ResponseWriter, r *http.Request) {
	fees, err := h.feeRepo.GetSchedule(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fees)
}

// GetPhoneRecord lets operators inspect a customer's reward ledger entry.
func (h *AdminHandler) GetPhoneRecord(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		respondServiceError(w, &domain.ValidationError{Field: "phone", Reason: "required"})
		return
	}
	record, err := h.ledger.GetRecord(r.Context(), phone)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}
