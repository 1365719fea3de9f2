package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusFinished  BookingStatus = "finished"
)

type BookingEvent string

const (
	EventConfirm BookingEvent = "confirm"
	EventReject  BookingEvent = "reject"
	EventCancel  BookingEvent = "cancel"
	EventFinish  BookingEvent = "finish"
)

// bookingTransitions is the single place lifecycle rules live. A missing
// entry means the transition is illegal.
var bookingTransitions = map[BookingStatus]map[BookingEvent]BookingStatus{
	BookingStatusPending: {
		EventConfirm: BookingStatusConfirmed,
		EventReject:  BookingStatusRejected,
		EventCancel:  BookingStatusCancelled,
	},
	BookingStatusConfirmed: {
		EventCancel: BookingStatusCancelled,
		EventFinish: BookingStatusFinished,
	},
}

// NextStatus resolves the status a booking moves to when event fires in the
// given status. Illegal transitions return a StateConflictError.
func NextStatus(from BookingStatus, event BookingEvent) (BookingStatus, error) {
	if next, ok := bookingTransitions[from][event]; ok {
		return next, nil
	}
	return "", &StateConflictError{Status: from, Event: event}
}

type Booking struct {
	ID              int32         `json:"id"`
	Reference       string        `json:"reference"`
	CarID           int32         `json:"car_id"`
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerPhone   string        `json:"customer_phone"`
	CustomerAge     int32         `json:"customer_age"`
	PickupAt        time.Time     `json:"pickup_at"`
	ReturnAt        time.Time     `json:"return_at"`
	PickupLocation  Location      `json:"pickup_location"`
	DropoffLocation Location      `json:"dropoff_location"`
	Insurance       string        `json:"insurance"`
	DiscountCode    string        `json:"discount_code,omitempty"`
	// Price snapshot captured at booking creation. Later rate or fee
	// changes never alter an existing booking's price.
	Price           PriceBreakdown `json:"price"`
	Status          BookingStatus  `json:"status"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	CreatedOn       time.Time      `json:"created_on"`
	UpdatedOn       time.Time      `json:"updated_on"`
}

// ActiveRental is the operational record created when a booking is
// confirmed and removed if it is cancelled afterwards.
type ActiveRental struct {
	ID        int32     `json:"id"`
	BookingID int32     `json:"booking_id"`
	CarID     int32     `json:"car_id"`
	PickupAt  time.Time `json:"pickup_at"`
	ReturnAt  time.Time `json:"return_at"`
	CreatedOn time.Time `json:"created_on"`
}
