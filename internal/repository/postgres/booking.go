package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, reference, car_id, customer_name, customer_email, customer_phone, customer_age,
	pickup_at, return_at, pickup_location, dropoff_location, insurance, discount_code,
	days, daily_rate_cents, base_cents, pickup_fee_cents, dropoff_fee_cents,
	pickup_outside_hours_cents, return_outside_hours_cents, insurance_cents, discount_cents, free_days, total_cents,
	status, rejection_reason, created_on, updated_on`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.Reference, &b.CarID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.CustomerAge,
		&b.PickupAt, &b.ReturnAt, &b.PickupLocation, &b.DropoffLocation, &b.Insurance, &b.DiscountCode,
		&b.Price.Days, &b.Price.DailyRateCents, &b.Price.BaseCents, &b.Price.PickupFeeCents, &b.Price.DropoffFeeCents,
		&b.Price.PickupOutsideHoursCents, &b.Price.ReturnOutsideHoursCents, &b.Price.InsuranceCents,
		&b.Price.DiscountCents, &b.Price.FreeDays, &b.Price.TotalCents,
		&b.Status, &b.RejectionReason, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (reference, car_id, customer_name, customer_email, customer_phone, customer_age,
	              pickup_at, return_at, pickup_location, dropoff_location, insurance, discount_code,
	              days, daily_rate_cents, base_cents, pickup_fee_cents, dropoff_fee_cents,
	              pickup_outside_hours_cents, return_outside_hours_cents, insurance_cents, discount_cents, free_days, total_cents,
	              status, rejection_reason, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
	                  $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, '', $25, $25)
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		b.Reference, b.CarID, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.CustomerAge,
		b.PickupAt, b.ReturnAt, b.PickupLocation, b.DropoffLocation, b.Insurance, b.DiscountCode,
		b.Price.Days, b.Price.DailyRateCents, b.Price.BaseCents, b.Price.PickupFeeCents, b.Price.DropoffFeeCents,
		b.Price.PickupOutsideHoursCents, b.Price.ReturnOutsideHoursCents, b.Price.InsuranceCents,
		b.Price.DiscountCents, b.Price.FreeDays, b.Price.TotalCents,
		b.Status, time.Now()).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	return b, err
}

func (r *bookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_on DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.BookingStatus, reason string) (int64, error) {
	query := `UPDATE bookings SET status = $1, rejection_reason = $2, updated_on = $3 WHERE id = $4 AND status = $5`
	res, err := r.db.ExecContext(ctx, query, to, reason, time.Now(), id, from)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *bookingRepository) FinishOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE bookings SET status = $1, updated_on = $2 WHERE status = $3 AND return_at < $2`
	res, err := r.db.ExecContext(ctx, query, domain.BookingStatusFinished, now, domain.BookingStatusConfirmed)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountOverlapping counts pending and confirmed bookings for a car whose
// period intersects [from, to). Availability is always derived from this,
// never from a stored flag.
func (r *bookingRepository) CountOverlapping(ctx context.Context, carID int32, from, to time.Time) (int32, error) {
	query := `SELECT count(*) FROM bookings
	          WHERE car_id = $1 AND status IN ($2, $3) AND pickup_at < $5 AND return_at > $4`
	var count int32
	err := r.db.QueryRowContext(ctx, query, carID, domain.BookingStatusPending, domain.BookingStatusConfirmed, from, to).Scan(&count)
	return count, err
}

func (r *bookingRepository) ListConfirmedReturningBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 AND return_at >= $2 AND return_at < $3 ORDER BY return_at`
	rows, err := r.db.QueryContext(ctx, query, domain.BookingStatusConfirmed, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) CreateActiveRental(ctx context.Context, ar *domain.ActiveRental) error {
	query := `INSERT INTO active_rentals (booking_id, car_id, pickup_at, return_at, created_on)
	          VALUES ($1, $2, $3, $4, $5) ON CONFLICT (booking_id) DO NOTHING RETURNING id`
	err := r.db.QueryRowContext(ctx, query, ar.BookingID, ar.CarID, ar.PickupAt, ar.ReturnAt, time.Now()).Scan(&ar.ID)
	if errors.Is(err, sql.ErrNoRows) {
		// Already present from an earlier confirm; nothing to do.
		return nil
	}
	return err
}

func (r *bookingRepository) DeleteActiveRentalByBooking(ctx context.Context, bookingID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM active_rentals WHERE booking_id = $1`, bookingID)
	return err
}
