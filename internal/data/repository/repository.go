package repository

import (
	"context"

	"transit-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Session   SessionRepository
	Station   StationRepository
	Departure DepartureRepository
	Booking   BookingRepository

	db database.PgxIface
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Session:   NewSessionRepository(db, log),
		Station:   NewStationRepository(db, log),
		Departure: NewDepartureRepository(db, log),
		Booking:   NewBookingRepository(db, log),
		db:        db,
	}
}

// WithTx menjalankan fn sebagai satu unit of work di atas transaksi database.
func (r *Repository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.WithTx(ctx, r.db, fn)
}
