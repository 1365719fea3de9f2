package postgres

import (
	"database/sql"

	"autorent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CarRepository
	repository.FeeRepository
	repository.CouponRepository
	repository.PhoneRepository
	repository.BookingRepository
	repository.WheelRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		CarRepository:     NewCarRepository(db),
		FeeRepository:     NewFeeRepository(db),
		CouponRepository:  NewCouponRepository(db),
		PhoneRepository:   NewPhoneRepository(db),
		BookingRepository: NewBookingRepository(db),
		WheelRepository:   NewWheelRepository(db),
	}
}
