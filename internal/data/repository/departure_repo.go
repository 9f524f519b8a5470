package repository

import (
	"context"
	"fmt"
	"time"

	"transit-booking/internal/data/entity"
	"transit-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DepartureRepository interface {
	Create(ctx context.Context, departure *entity.Departure) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Departure, error)
	Search(ctx context.Context, originID, destinationID uuid.UUID, date time.Time, after *time.Time) ([]*entity.Departure, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DepartureStatus, delayMinutes int) error

	// Inventory primitives. Both are single conditional updates so concurrent
	// callers on the same departure serialize at the storage layer.
	TryReserve(ctx context.Context, id uuid.UUID, count int) (bool, error)
	Release(ctx context.Context, id uuid.UUID, count int) (bool, error)
}

type departureRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDepartureRepository(db database.PgxIface, log *zap.Logger) DepartureRepository {
	return &departureRepository{
		db:  db,
		log: log.With(zap.String("repository", "departure")),
	}
}

func (r *departureRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFromContext(ctx, r.db)
}

const departureColumns = `id, train_name, train_number, origin_station_id, destination_station_id,
		departure_at, arrival_at, total_seats, available_seats, price, status, delay_minutes,
		created_at, updated_at`

func scanDeparture(row pgx.Row, d *entity.Departure) error {
	return row.Scan(
		&d.ID,
		&d.TrainName,
		&d.TrainNumber,
		&d.OriginID,
		&d.DestinationID,
		&d.DepartureAt,
		&d.ArrivalAt,
		&d.TotalSeats,
		&d.AvailableSeats,
		&d.Price,
		&d.Status,
		&d.DelayMinutes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}

func (r *departureRepository) Create(ctx context.Context, departure *entity.Departure) error {
	query := `
		INSERT INTO departures (id, train_name, train_number, origin_station_id, destination_station_id,
			departure_at, arrival_at, total_seats, available_seats, price, status, delay_minutes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.q(ctx).Exec(ctx, query,
		departure.ID,
		departure.TrainName,
		departure.TrainNumber,
		departure.OriginID,
		departure.DestinationID,
		departure.DepartureAt,
		departure.ArrivalAt,
		departure.TotalSeats,
		departure.AvailableSeats,
		departure.Price,
		departure.Status,
		departure.DelayMinutes,
		departure.CreatedAt,
		departure.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create departure",
			zap.Error(err),
			zap.String("train_number", departure.TrainNumber),
		)
		return fmt.Errorf("create departure %s: %w", departure.TrainNumber, err)
	}

	return nil
}

func (r *departureRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Departure, error) {
	query := `SELECT ` + departureColumns + ` FROM departures WHERE id = $1`

	var departure entity.Departure
	err := scanDeparture(r.q(ctx).QueryRow(ctx, query, id), &departure)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find departure by ID",
			zap.Error(err),
			zap.String("departure_id", id.String()),
		)
		return nil, fmt.Errorf("find departure by ID %s: %w", id.String(), err)
	}

	return &departure, nil
}

func (r *departureRepository) Search(ctx context.Context, originID, destinationID uuid.UUID, date time.Time, after *time.Time) ([]*entity.Departure, error) {
	query := `
		SELECT ` + departureColumns + `
		FROM departures
		WHERE origin_station_id = $1
		  AND destination_station_id = $2
		  AND DATE(departure_at) = DATE($3)
		  AND status IN ('active', 'delayed')
		  AND ($4::timestamptz IS NULL OR departure_at >= $4)
		ORDER BY departure_at
	`

	rows, err := r.q(ctx).Query(ctx, query, originID, destinationID, date, after)
	if err != nil {
		r.log.Error("Failed to search departures",
			zap.Error(err),
			zap.String("origin_id", originID.String()),
			zap.String("destination_id", destinationID.String()),
		)
		return nil, fmt.Errorf("search departures: %w", err)
	}
	defer rows.Close()

	var departures []*entity.Departure
	for rows.Next() {
		var departure entity.Departure
		if err := scanDeparture(rows, &departure); err != nil {
			r.log.Error("Failed to scan departure row", zap.Error(err))
			return nil, fmt.Errorf("scan departure row: %w", err)
		}
		departures = append(departures, &departure)
	}

	return departures, nil
}

func (r *departureRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DepartureStatus, delayMinutes int) error {
	query := `UPDATE departures SET status = $2, delay_minutes = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.q(ctx).Exec(ctx, query, id, status, delayMinutes)
	if err != nil {
		r.log.Error("Failed to update departure status",
			zap.Error(err),
			zap.String("departure_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update departure %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("departure %s not found", id.String())
	}

	return nil
}

// TryReserve mengurangi available_seats secara atomik. Predikat available_seats >= count
// ada di dalam UPDATE, bukan read-then-write, supaya tidak ada lost update saat concurrent.
func (r *departureRepository) TryReserve(ctx context.Context, id uuid.UUID, count int) (bool, error) {
	query := `
		UPDATE departures
		SET available_seats = available_seats - $2, updated_at = NOW()
		WHERE id = $1
		  AND status IN ('active', 'delayed')
		  AND available_seats >= $2
	`

	result, err := r.q(ctx).Exec(ctx, query, id, count)
	if err != nil {
		r.log.Error("Failed to reserve seats",
			zap.Error(err),
			zap.String("departure_id", id.String()),
			zap.Int("count", count),
		)
		return false, fmt.Errorf("reserve %d seats on departure %s: %w", count, id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

// Release mengembalikan kursi yang dibatalkan. Guard available_seats + count <= total_seats
// menolak over-release daripada mempercayai disiplin caller.
func (r *departureRepository) Release(ctx context.Context, id uuid.UUID, count int) (bool, error) {
	query := `
		UPDATE departures
		SET available_seats = available_seats + $2, updated_at = NOW()
		WHERE id = $1
		  AND available_seats + $2 <= total_seats
	`

	result, err := r.q(ctx).Exec(ctx, query, id, count)
	if err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.String("departure_id", id.String()),
			zap.Int("count", count),
		)
		return false, fmt.Errorf("release %d seats on departure %s: %w", count, id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}
