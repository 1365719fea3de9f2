package http

import (
	"autorent-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires the public and admin APIs. Admin routes sit behind the
// bearer-token middleware; the login endpoint is the only open admin route.
func NewRouter(h *Handler, admin *AdminHandler, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/health", h.Health).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/cars", h.ListCars).Methods("GET")
	api.HandleFunc("/cars/{id}", h.GetCar).Methods("GET")
	api.HandleFunc("/quotes", h.QuotePrice).Methods("POST")
	api.HandleFunc("/discounts/validate", h.ValidateDiscount).Methods("POST")
	api.HandleFunc("/availability", h.CheckAvailability).Methods("POST")
	api.HandleFunc("/bookings", h.CreateBooking).Methods("POST")
	api.HandleFunc("/bookings/{id}/cancel", h.CancelBooking).Methods("POST")
	api.HandleFunc("/phones/track-booking", h.TrackPhoneForBooking).Methods("POST")
	api.HandleFunc("/phones/track-wheel", h.TrackPhoneForWheel).Methods("POST")
	api.HandleFunc("/wheels/{id}", h.GetWheel).Methods("GET")
	api.HandleFunc("/wheels/{id}/spin", h.SpinWheel).Methods("POST")

	r.HandleFunc("/admin/v1/login", admin.Login).Methods("POST")

	adm := r.PathPrefix("/admin/v1").Subrouter()
	adm.Use(AdminAuthMiddleware(tokens))
	adm.HandleFunc("/bookings", admin.ListBookings).Methods("GET")
	adm.HandleFunc("/bookings/{id}", admin.GetBooking).Methods("GET")
	adm.HandleFunc("/bookings/{id}/confirm", admin.ConfirmBooking).Methods("POST")
	adm.HandleFunc("/bookings/{id}/reject", admin.RejectBooking).Methods("POST")
	adm.HandleFunc("/coupons", admin.ListCoupons).Methods("GET")
	adm.HandleFunc("/coupons", admin.CreateCoupon).Methods("POST")
	adm.HandleFunc("/coupons/{id}", admin.UpdateCoupon).Methods("PUT")
	adm.HandleFunc("/coupons/{id}/codes", admin.GenerateCodes).Methods("POST")
	adm.HandleFunc("/wheels", admin.ListWheels).Methods("GET")
	adm.HandleFunc("/wheels/{id}/enabled", admin.SetWheelEnabled).Methods("PUT")
	adm.HandleFunc("/fees", admin.ListFees).Methods("GET")
	adm.HandleFunc("/fees", admin.UpsertFee).Methods("PUT")
	adm.HandleFunc("/phones", admin.GetPhoneRecord).Methods("GET")

	return r
}
