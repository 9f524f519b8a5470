package usecase

import (
	"context"
	"fmt"
	"strings"

	"transit-booking/internal/data/entity"
	"transit-booking/internal/data/repository"
	"transit-booking/internal/dto/request"
	"transit-booking/internal/dto/response"
	"transit-booking/pkg/clock"
	"transit-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StationService interface {
	ListStations(ctx context.Context) ([]response.StationResponse, error)
	GetStation(ctx context.Context, stationID string) (*response.StationResponse, error)
	CreateStation(ctx context.Context, req *request.CreateStationRequest) (*response.StationResponse, error)
}

type stationService struct {
	repo  *repository.Repository
	clock clock.Clock
	log   *zap.Logger
}

func NewStationService(repo *repository.Repository, clk clock.Clock, log *zap.Logger) StationService {
	return &stationService{
		repo:  repo,
		clock: clk,
		log:   log.With(zap.String("service", "station")),
	}
}

func (s *stationService) ListStations(ctx context.Context) ([]response.StationResponse, error) {
	stations, err := s.repo.Station.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	stationResponses := make([]response.StationResponse, len(stations))
	for i, station := range stations {
		stationResponses[i] = response.StationToResponse(station)
	}

	return stationResponses, nil
}

func (s *stationService) GetStation(ctx context.Context, stationID string) (*response.StationResponse, error) {
	id, err := uuid.Parse(stationID)
	if err != nil {
		return nil, fmt.Errorf("invalid station ID format %s: %w", stationID, err)
	}

	station, err := s.repo.Station.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, ErrStationNotFound
	}

	resp := response.StationToResponse(station)
	return &resp, nil
}

func (s *stationService) CreateStation(ctx context.Context, req *request.CreateStationRequest) (*response.StationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create station validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	code := strings.ToUpper(req.Code)

	existing, err := s.repo.Station.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fieldError("Code", "Station code already exists")
	}

	now := s.clock.Now()
	station := &entity.Station{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: req.Name,
		Code: code,
		City: req.City,
	}

	if err := s.repo.Station.Create(ctx, station); err != nil {
		return nil, err
	}

	s.log.Info("Station created",
		zap.String("station_id", station.ID.String()),
		zap.String("code", station.Code),
	)

	resp := response.StationToResponse(station)
	return &resp, nil
}
