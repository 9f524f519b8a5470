package wire

import (
	"transit-booking/internal/adaptor"
	"transit-booking/internal/data/repository"
	"transit-booking/pkg/middleware"
	"transit-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSchedule(
	r chi.Router,
	scheduleHandler *adaptor.ScheduleHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/schedules/search?origin=&destination=&date=&time= - Search departures
	r.Get("/api/schedules/search", scheduleHandler.SearchDepartures)

	// GET /api/schedules/{id} - Departure detail
	r.Get("/api/schedules/{id}", scheduleHandler.GetDeparture)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/schedules", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		// POST /api/admin/schedules - Publish new departure
		r.Post("/", scheduleHandler.CreateDeparture)

		// PUT /api/admin/schedules/{id}/status - Update departure status
		r.Put("/{id}/status", scheduleHandler.UpdateDepartureStatus)
	})
}
