package usecase

import (
	"transit-booking/internal/data/repository"
	"transit-booking/pkg/clock"
	"transit-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Station  StationService
	Schedule ScheduleService
	Booking  BookingService
	Ticket   TicketService
}

func NewService(repo *repository.Repository, config *utils.Config, clk clock.Clock, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, clk, log),
		Station:  NewStationService(repo, clk, log),
		Schedule: NewScheduleService(repo, config, clk, log),
		Booking:  NewBookingService(repo, config, clk, log),
		Ticket:   NewTicketService(repo, log),
	}
}
