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

type wheelRepository struct {
	db *sql.DB
}

func NewWheelRepository(db *sql.DB) repository.WheelRepository {
	return &wheelRepository{db: db}
}

func (r *wheelRepository) GetByID(ctx context.Context, id int32) (*domain.SpinningWheel, error) {
	w := &domain.SpinningWheel{}
	query := `SELECT id, name, enabled, premium, created_on, updated_on FROM spinning_wheels WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.Name, &w.Enabled, &w.Premium, &w.CreatedOn, &w.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("wheel %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadSegments(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *wheelRepository) loadSegments(ctx context.Context, w *domain.SpinningWheel) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT coupon_id, weight, position FROM wheel_segments WHERE wheel_id = $1 ORDER BY position`, w.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var seg domain.WheelSegment
		if err := rows.Scan(&seg.CouponID, &seg.Weight, &seg.Position); err != nil {
			return err
		}
		w.Segments = append(w.Segments, seg)
	}
	return rows.Err()
}

func (r *wheelRepository) List(ctx context.Context) ([]domain.SpinningWheel, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, enabled, premium, created_on, updated_on FROM spinning_wheels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wheels []domain.SpinningWheel
	for rows.Next() {
		var w domain.SpinningWheel
		if err := rows.Scan(&w.ID, &w.Name, &w.Enabled, &w.Premium, &w.CreatedOn, &w.UpdatedOn); err != nil {
			return nil, err
		}
		wheels = append(wheels, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range wheels {
		if err := r.loadSegments(ctx, &wheels[i]); err != nil {
			return nil, err
		}
	}
	return wheels, nil
}

func (r *wheelRepository) SetEnabled(ctx context.Context, id int32, enabled bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE spinning_wheels SET enabled = $1, updated_on = $2 WHERE id = $3`, enabled, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("wheel %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
