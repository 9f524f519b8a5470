package wire

import (
	"transit-booking/internal/adaptor"
	"transit-booking/internal/data/repository"
	"transit-booking/pkg/middleware"
	"transit-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireStation(
	r chi.Router,
	stationHandler *adaptor.StationHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/stations - List all stations
	r.Get("/api/stations", stationHandler.ListStations)

	// GET /api/stations/{id} - Station detail
	r.Get("/api/stations/{id}", stationHandler.GetStation)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/stations", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		// POST /api/admin/stations - Register new station
		r.Post("/", stationHandler.CreateStation)
	})
}
