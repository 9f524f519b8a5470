package usecase

import (
	"context"
	"fmt"
	"time"

	"transit-booking/internal/data/entity"
	"transit-booking/internal/data/repository"
	"transit-booking/internal/dto/request"
	"transit-booking/internal/dto/response"
	"transit-booking/pkg/clock"
	"transit-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduleService interface {
	SearchDepartures(ctx context.Context, req *request.SearchDeparturesRequest) (*response.SearchDeparturesResponse, error)
	GetDeparture(ctx context.Context, departureID string) (*response.DepartureResponse, error)

	// Admin
	CreateDeparture(ctx context.Context, req *request.CreateDepartureRequest) (*response.DepartureResponse, error)
	UpdateDepartureStatus(ctx context.Context, departureID string, req *request.UpdateDepartureStatusRequest) error
}

type scheduleService struct {
	repo  *repository.Repository
	cache *searchCache
	clock clock.Clock
	log   *zap.Logger
}

func NewScheduleService(repo *repository.Repository, config *utils.Config, clk clock.Clock, log *zap.Logger) ScheduleService {
	ttl := time.Duration(config.Booking.SearchCacheMinutes) * time.Minute
	return &scheduleService{
		repo:  repo,
		cache: newSearchCache(ttl, clk),
		clock: clk,
		log:   log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) SearchDepartures(ctx context.Context, req *request.SearchDeparturesRequest) (*response.SearchDeparturesResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Search departures validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	key := searchCacheKey(req.OriginID, req.DestinationID, req.Date, req.Time)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	originID, err := uuid.Parse(req.OriginID)
	if err != nil {
		return nil, fmt.Errorf("invalid origin station ID format %s: %w", req.OriginID, err)
	}

	destinationID, err := uuid.Parse(req.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("invalid destination station ID format %s: %w", req.DestinationID, err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fieldError("Date", "Must match format 2006-01-02")
	}

	var after *time.Time
	if req.Time != "" {
		parsed, err := time.Parse("15:04", req.Time)
		if err != nil {
			return nil, fieldError("Time", "Must match format 15:04")
		}
		at := time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
		after = &at
	}

	origin, err := s.repo.Station.FindByID(ctx, originID)
	if err != nil {
		return nil, err
	}
	if origin == nil {
		return nil, ErrStationNotFound
	}

	destination, err := s.repo.Station.FindByID(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	if destination == nil {
		return nil, ErrStationNotFound
	}

	departures, err := s.repo.Departure.Search(ctx, originID, destinationID, date, after)
	if err != nil {
		return nil, err
	}

	departureResponses := make([]response.DepartureResponse, len(departures))
	for i, departure := range departures {
		departureResponses[i] = response.DepartureToResponse(departure, origin.Name, destination.Name)
	}

	result := &response.SearchDeparturesResponse{
		Departures: departureResponses,
		CachedAt:   s.clock.Now(),
	}
	s.cache.Set(key, result)

	s.log.Info("Departures searched",
		zap.String("origin", origin.Code),
		zap.String("destination", destination.Code),
		zap.String("date", req.Date),
		zap.Int("count", len(departures)),
	)

	return result, nil
}

func (s *scheduleService) GetDeparture(ctx context.Context, departureID string) (*response.DepartureResponse, error) {
	id, err := uuid.Parse(departureID)
	if err != nil {
		return nil, fmt.Errorf("invalid departure ID format %s: %w", departureID, err)
	}

	departure, err := s.repo.Departure.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if departure == nil {
		return nil, ErrDepartureNotFound
	}

	var originName, destinationName string
	if origin, _ := s.repo.Station.FindByID(ctx, departure.OriginID); origin != nil {
		originName = origin.Name
	}
	if destination, _ := s.repo.Station.FindByID(ctx, departure.DestinationID); destination != nil {
		destinationName = destination.Name
	}

	resp := response.DepartureToResponse(departure, originName, destinationName)
	return &resp, nil
}

func (s *scheduleService) CreateDeparture(ctx context.Context, req *request.CreateDepartureRequest) (*response.DepartureResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create departure validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	originID, err := uuid.Parse(req.OriginID)
	if err != nil {
		return nil, fmt.Errorf("invalid origin station ID format %s: %w", req.OriginID, err)
	}

	destinationID, err := uuid.Parse(req.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("invalid destination station ID format %s: %w", req.DestinationID, err)
	}

	departureAt, err := time.Parse(time.RFC3339, req.DepartureAt)
	if err != nil {
		return nil, fieldError("DepartureAt", "Must be RFC3339 timestamp")
	}

	arrivalAt, err := time.Parse(time.RFC3339, req.ArrivalAt)
	if err != nil {
		return nil, fieldError("ArrivalAt", "Must be RFC3339 timestamp")
	}

	if !arrivalAt.After(departureAt) {
		return nil, fieldError("ArrivalAt", "Must be after departure time")
	}

	origin, err := s.repo.Station.FindByID(ctx, originID)
	if err != nil {
		return nil, err
	}
	if origin == nil {
		return nil, ErrStationNotFound
	}

	destination, err := s.repo.Station.FindByID(ctx, destinationID)
	if err != nil {
		return nil, err
	}
	if destination == nil {
		return nil, ErrStationNotFound
	}

	now := s.clock.Now()
	departure := &entity.Departure{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TrainName:      req.TrainName,
		TrainNumber:    req.TrainNumber,
		OriginID:       originID,
		DestinationID:  destinationID,
		DepartureAt:    departureAt,
		ArrivalAt:      arrivalAt,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		Price:          req.Price,
		Status:         entity.DepartureStatusActive,
	}

	if err := s.repo.Departure.Create(ctx, departure); err != nil {
		return nil, err
	}

	s.log.Info("Departure created",
		zap.String("departure_id", departure.ID.String()),
		zap.String("train_number", departure.TrainNumber),
		zap.Int("total_seats", departure.TotalSeats),
	)

	resp := response.DepartureToResponse(departure, origin.Name, destination.Name)
	return &resp, nil
}

func (s *scheduleService) UpdateDepartureStatus(ctx context.Context, departureID string, req *request.UpdateDepartureStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return newValidationError(errs)
	}

	id, err := uuid.Parse(departureID)
	if err != nil {
		return fmt.Errorf("invalid departure ID format %s: %w", departureID, err)
	}

	departure, err := s.repo.Departure.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if departure == nil {
		return ErrDepartureNotFound
	}

	if err := s.repo.Departure.UpdateStatus(ctx, id, entity.DepartureStatus(req.Status), req.DelayMinutes); err != nil {
		return err
	}

	s.log.Info("Departure status updated",
		zap.String("departure_id", departureID),
		zap.String("status", req.Status),
		zap.Int("delay_minutes", req.DelayMinutes),
	)

	return nil
}
