package repository

import (
	"context"
	"fmt"

	"transit-booking/internal/data/entity"
	"transit-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type StationRepository interface {
	Create(ctx context.Context, station *entity.Station) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Station, error)
	FindByCode(ctx context.Context, code string) (*entity.Station, error)
	FindAll(ctx context.Context) ([]*entity.Station, error)
}

type stationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStationRepository(db database.PgxIface, log *zap.Logger) StationRepository {
	return &stationRepository{
		db:  db,
		log: log.With(zap.String("repository", "station")),
	}
}

func (r *stationRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFromContext(ctx, r.db)
}

func (r *stationRepository) Create(ctx context.Context, station *entity.Station) error {
	query := `
		INSERT INTO stations (id, name, code, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q(ctx).Exec(ctx, query,
		station.ID,
		station.Name,
		station.Code,
		station.City,
		station.CreatedAt,
		station.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create station",
			zap.Error(err),
			zap.String("code", station.Code),
		)
		return fmt.Errorf("create station %s: %w", station.Code, err)
	}

	return nil
}

func (r *stationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Station, error) {
	query := `SELECT id, name, code, city, created_at, updated_at FROM stations WHERE id = $1`

	var station entity.Station
	err := r.q(ctx).QueryRow(ctx, query, id).Scan(
		&station.ID,
		&station.Name,
		&station.Code,
		&station.City,
		&station.CreatedAt,
		&station.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find station by ID",
			zap.Error(err),
			zap.String("station_id", id.String()),
		)
		return nil, fmt.Errorf("find station by ID %s: %w", id.String(), err)
	}

	return &station, nil
}

func (r *stationRepository) FindByCode(ctx context.Context, code string) (*entity.Station, error) {
	query := `SELECT id, name, code, city, created_at, updated_at FROM stations WHERE code = $1`

	var station entity.Station
	err := r.q(ctx).QueryRow(ctx, query, code).Scan(
		&station.ID,
		&station.Name,
		&station.Code,
		&station.City,
		&station.CreatedAt,
		&station.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find station by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find station by code %s: %w", code, err)
	}

	return &station, nil
}

func (r *stationRepository) FindAll(ctx context.Context) ([]*entity.Station, error) {
	query := `SELECT id, name, code, city, created_at, updated_at FROM stations ORDER BY name`

	rows, err := r.q(ctx).Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list stations", zap.Error(err))
		return nil, fmt.Errorf("list stations: %w", err)
	}
	defer rows.Close()

	var stations []*entity.Station
	for rows.Next() {
		var station entity.Station
		err := rows.Scan(
			&station.ID,
			&station.Name,
			&station.Code,
			&station.City,
			&station.CreatedAt,
			&station.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan station row", zap.Error(err))
			return nil, fmt.Errorf("scan station row: %w", err)
		}
		stations = append(stations, &station)
	}

	return stations, nil
}
