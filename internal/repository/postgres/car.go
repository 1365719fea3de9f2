package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"autorent-backend/internal/domain"
	"autorent-backend/internal/repository"
)

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	car := &domain.Car{}
	query := `SELECT id, make, model, plate_number, is_active, created_on, updated_on FROM cars WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&car.ID, &car.Make, &car.Model, &car.PlateNumber, &car.IsActive, &car.CreatedOn, &car.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("car %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadRates(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

func (r *carRepository) loadRates(ctx context.Context, car *domain.Car) error {
	car.DailyRates = map[string]int32{}
	rows, err := r.db.QueryContext(ctx, `SELECT bucket, daily_rate_cents FROM car_rates WHERE car_id = $1`, car.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var bucket string
		var rate int32
		if err := rows.Scan(&bucket, &rate); err != nil {
			return err
		}
		car.DailyRates[bucket] = rate
	}
	if err := rows.Err(); err != nil {
		return err
	}

	car.InsuranceDayRates = map[string]int32{}
	rows, err = r.db.QueryContext(ctx, `SELECT plan, day_rate_cents FROM car_insurance_rates WHERE car_id = $1`, car.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var plan string
		var rate int32
		if err := rows.Scan(&plan, &rate); err != nil {
			return err
		}
		car.InsuranceDayRates[plan] = rate
	}
	return rows.Err()
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, make, model, plate_number, is_active, created_on, updated_on FROM cars WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		var car domain.Car
		if err := rows.Scan(&car.ID, &car.Make, &car.Model, &car.PlateNumber, &car.IsActive, &car.CreatedOn, &car.UpdatedOn); err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range cars {
		if err := r.loadRates(ctx, &cars[i]); err != nil {
			return nil, err
		}
	}
	return cars, nil
}
