package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"

	"github.com/lib/pq"
)

// phoneRepository keeps the per-phone reward ledger. Every mutation is a
// single UPDATE/UPSERT with the merge expressed in SQL, so two requests for
// the same phone number can interleave without losing appends.
type phoneRepository struct {
	db *sql.DB
}

func NewPhoneRepository(db *sql.DB) repository.PhoneRepository {
	return &phoneRepository{db: db}
}

func (r *phoneRepository) Get(ctx context.Context, phone string) (*domain.PhoneRecord, error) {
	rec := &domain.PhoneRecord{}
	query := `SELECT phone, bookings_ids, available_coupons, redeemed_coupons, return_gift_redeemed, created_on, updated_on
	          FROM phone_records WHERE phone = $1`
	err := r.db.QueryRowContext(ctx, query, phone).Scan(&rec.Phone, pq.Array(&rec.BookingIDs),
		pq.Array(&rec.AvailableCoupons), pq.Array(&rec.RedeemedCoupons), &rec.ReturnGiftRedeemed,
		&rec.CreatedOn, &rec.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("phone record %s: %w", phone, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// TrackBooking upserts the record and appends the booking reference unless
// it is already present.
func (r *phoneRepository) TrackBooking(ctx context.Context, phone, bookingRef string) error {
	query := `INSERT INTO phone_records (phone, bookings_ids, available_coupons, redeemed_coupons, return_gift_redeemed, created_on, updated_on)
	          VALUES ($1, ARRAY[$2]::text[], '{}', '{}', false, $3, $3)
	          ON CONFLICT (phone) DO UPDATE SET
	              bookings_ids = CASE WHEN phone_records.bookings_ids @> ARRAY[$2]::text[]
	                                  THEN phone_records.bookings_ids
	                                  ELSE array_append(phone_records.bookings_ids, $2) END,
	              updated_on = $3`
	_, err := r.db.ExecContext(ctx, query, phone, bookingRef, time.Now())
	return err
}

// TrackForWheel creates an empty record for the phone if absent and reports
// whether it was newly created.
func (r *phoneRepository) TrackForWheel(ctx context.Context, phone string) (bool, error) {
	query := `INSERT INTO phone_records (phone, bookings_ids, available_coupons, redeemed_coupons, return_gift_redeemed, created_on, updated_on)
	          VALUES ($1, '{}', '{}', '{}', false, $2, $2)
	          ON CONFLICT (phone) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, phone, time.Now())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *phoneRepository) GrantCoupon(ctx context.Context, phone, code string) error {
	query := `UPDATE phone_records SET
	              available_coupons = CASE WHEN available_coupons @> ARRAY[$2]::text[]
	                                       THEN available_coupons
	                                       ELSE array_append(available_coupons, $2) END,
	              updated_on = $3
	          WHERE phone = $1`
	res, err := r.db.ExecContext(ctx, query, phone, code, time.Now())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("phone record %s: %w", phone, domain.ErrNotFound)
	}
	return nil
}

// RedeemCoupon atomically moves a code from available to redeemed. The
// WHERE clause makes a double redeem a no-op at the database level; the
// follow-up read distinguishes why nothing moved.
func (r *phoneRepository) RedeemCoupon(ctx context.Context, phone, code string) error {
	query := `UPDATE phone_records SET
	              available_coupons = array_remove(available_coupons, $2),
	              redeemed_coupons = array_append(redeemed_coupons, $2),
	              updated_on = $3
	          WHERE phone = $1
	            AND available_coupons @> ARRAY[$2]::text[]
	            AND NOT (redeemed_coupons @> ARRAY[$2]::text[])`
	res, err := r.db.ExecContext(ctx, query, phone, code, time.Now())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	rec, err := r.Get(ctx, phone)
	if err != nil {
		return err
	}
	if rec.HasRedeemedCoupon(code) {
		return domain.ErrAlreadyRedeemed
	}
	return domain.ErrCouponNotAvailable
}

// MarkReturnGiftRedeemed flips the one-time flag and reports how many rows
// changed; zero means it was already set or the phone is unknown.
func (r *phoneRepository) MarkReturnGiftRedeemed(ctx context.Context, phone string) (int64, error) {
	query := `UPDATE phone_records SET return_gift_redeemed = true, updated_on = $2
	          WHERE phone = $1 AND NOT return_gift_redeemed`
	res, err := r.db.ExecContext(ctx, query, phone, time.Now())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
