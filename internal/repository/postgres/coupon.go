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

type couponRepository struct {
	db *sql.DB
}

func NewCouponRepository(db *sql.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

const couponColumns = `id, code, type, value, is_active, expires_at, available_codes, showed_codes, created_on, updated_on`

func scanCoupon(row interface{ Scan(...any) error }) (*domain.Coupon, error) {
	c := &domain.Coupon{}
	err := row.Scan(&c.ID, &c.Code, &c.Type, &c.Value, &c.IsActive, &c.ExpiresAt,
		pq.Array(&c.AvailableCodes), pq.Array(&c.ShowedCodes), &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *couponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	query := `INSERT INTO coupons (code, type, value, is_active, expires_at, available_codes, showed_codes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Code, c.Type, c.Value, c.IsActive, c.ExpiresAt,
		pq.Array(c.AvailableCodes), pq.Array(c.ShowedCodes), time.Now()).Scan(&c.ID)
}

func (r *couponRepository) Update(ctx context.Context, c *domain.Coupon) error {
	query := `UPDATE coupons SET type = $1, value = $2, is_active = $3, expires_at = $4, updated_on = $5 WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, c.Type, c.Value, c.IsActive, c.ExpiresAt, time.Now(), c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("coupon %d: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *couponRepository) GetByID(ctx context.Context, id int32) (*domain.Coupon, error) {
	c, err := scanCoupon(r.db.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("coupon %d: %w", id, domain.ErrNotFound)
	}
	return c, err
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	c, err := scanCoupon(r.db.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("coupon %q: %w", code, domain.ErrNotFound)
	}
	return c, err
}

func (r *couponRepository) List(ctx context.Context) ([]domain.Coupon, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, *c)
	}
	return coupons, rows.Err()
}

// FindByRedemptionCode locates the coupon whose available pool still holds
// the given single-use code.
func (r *couponRepository) FindByRedemptionCode(ctx context.Context, code string) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE available_codes @> ARRAY[$1]::text[]`
	c, err := scanCoupon(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("redemption code: %w", domain.ErrNotFound)
	}
	return c, err
}

func (r *couponRepository) AddRedemptionCodes(ctx context.Context, couponID int32, codes []string) error {
	query := `UPDATE coupons SET available_codes = available_codes || $1::text[], updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, pq.Array(codes), time.Now(), couponID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("coupon %d: %w", couponID, domain.ErrNotFound)
	}
	return nil
}

// MarkCodeShown records that the wheel handed out a code. The guard keeps
// the append idempotent under concurrent spins.
func (r *couponRepository) MarkCodeShown(ctx context.Context, couponID int32, code string) error {
	query := `UPDATE coupons SET showed_codes = array_append(showed_codes, $1), updated_on = $2
	          WHERE id = $3 AND available_codes @> ARRAY[$1]::text[] AND NOT (showed_codes @> ARRAY[$1]::text[])`
	res, err := r.db.ExecContext(ctx, query, code, time.Now(), couponID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("code already shown or unknown: %w", domain.ErrCouponNotAvailable)
	}
	return nil
}

// ConsumeRedemptionCode removes a code from its pool once a booking using
// it is confirmed.
func (r *couponRepository) ConsumeRedemptionCode(ctx context.Context, code string) error {
	query := `UPDATE coupons SET available_codes = array_remove(available_codes, $1), updated_on = $2
	          WHERE available_codes @> ARRAY[$1]::text[]`
	res, err := r.db.ExecContext(ctx, query, code, time.Now())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("redemption code: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *couponRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE coupons SET is_active = false, updated_on = $1 WHERE is_active AND expires_at IS NOT NULL AND expires_at < $1`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
