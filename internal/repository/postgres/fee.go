package postgres

import (
	"context"
	"database/sql"
	"time"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"
)

type feeRepository struct {
	db *sql.DB
}

func NewFeeRepository(db *sql.DB) repository.FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) GetSchedule(ctx context.Context) (domain.FeeSchedule, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, amount_cents, is_active FROM fee_schedule`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedule := domain.FeeSchedule{}
	for rows.Next() {
		var fee domain.Fee
		if err := rows.Scan(&fee.Name, &fee.AmountCents, &fee.IsActive); err != nil {
			return nil, err
		}
		schedule[fee.Name] = fee
	}
	return schedule, rows.Err()
}

func (r *feeRepository) Upsert(ctx context.Context, fee *domain.Fee) error {
	query := `INSERT INTO fee_schedule (name, amount_cents, is_active, updated_on) VALUES ($1, $2, $3, $4)
	          ON CONFLICT (name) DO UPDATE SET amount_cents = $2, is_active = $3, updated_on = $4`
	_, err := r.db.ExecContext(ctx, query, fee.Name, fee.AmountCents, fee.IsActive, time.Now())
	return err
}
