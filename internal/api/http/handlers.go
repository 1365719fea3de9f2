package http

import (
	"net/http"
	"strconv"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"
	"autorent-backend/internal/service"

	"github.com/gorilla/mux"
)

// Handler exposes the public customer-facing API.
type Handler struct {
	quotes    service.QuoteService
	discounts service.DiscountService
	bookings  service.BookingService
	ledger    service.LedgerService
	wheels    service.WheelService
	carRepo   repository.CarRepository
	wheelRepo repository.WheelRepository
}

func NewHandler(
	quotes service.QuoteService,
	discounts service.DiscountService,
	bookings service.BookingService,
	ledger service.LedgerService,
	wheels service.WheelService,
	carRepo repository.CarRepository,
	wheelRepo repository.WheelRepository,
) *Handler {
	return &Handler{
		quotes:    quotes,
		discounts: discounts,
		bookings:  bookings,
		ledger:    ledger,
		wheels:    wheels,
		carRepo:   carRepo,
		wheelRepo: wheelRepo,
	}
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: name, Reason: "must be a positive integer"}
	}
	return int32(id), nil
}

func (h *Handler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.carRepo.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cars)
}

func (h *Handler) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, err)
		return
	}
	car, err := h.carRepo.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, car)
}

func (h *Handler) QuotePrice(w http.ResponseWriter, r *http.Request) {
	var req domain.QuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	breakdown, err := h.quotes.QuotePrice(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, breakdown)
}

type validateDiscountRequest struct {
	Code          string `json:"code"`
	SubtotalCents int32  `json:"subtotal_cents"`
	Phone         string `json:"phone,omitempty"`
}

func (h *Handler) ValidateDiscount(w http.ResponseWriter, r *http.Request) {
	var req validateDiscountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.discounts.Resolve(r.Context(), req.Code, req.SubtotalCents, req.Phone)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	booking, err := h.bookings.CreateBooking(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, err)
		return
	}
	booking, err := h.bookings.CancelBooking(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

type availabilityRequest struct {
	CarID    int32     `json:"car_id"`
	PickupAt time.Time `json:"pickup_at"`
	ReturnAt time.Time `json:"return_at"`
}

func (h *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.ReturnAt.After(req.PickupAt) {
		respondServiceError(w, &domain.ValidationError{Field: "return_at", Reason: "return must be after pickup"})
		return
	}
	available, err := h.bookings.CarAvailable(r.Context(), req.CarID, req.PickupAt, req.ReturnAt)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"available": available})
}

type trackPhoneRequest struct {
	Phone      string `json:"phone"`
	BookingRef string `json:"booking_ref,omitempty"`
}

func (h *Handler) TrackPhoneForBooking(w http.ResponseWriter, r *http.Request) {
	var req trackPhoneRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BookingRef == "" {
		respondServiceError(w, &domain.ValidationError{Field: "booking_ref", Reason: "required"})
		return
	}
	if err := h.ledger.TrackBooking(r.Context(), req.Phone, req.BookingRef); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) TrackPhoneForWheel(w http.ResponseWriter, r *http.Request) {
	var req trackPhoneRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.ledger.TrackForWheel(r.Context(), req.Phone)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"created": created})
}

type spinRequest struct {
	Phone string `json:"phone,omitempty"`
}

func (h *Handler) SpinWheel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, err)
		return
	}
	var req spinRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.wheels.Spin(r.Context(), id, req.Phone)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) GetWheel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondServiceError(w, err)
		return
	}
	wheel, err := h.wheelRepo.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wheel)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
