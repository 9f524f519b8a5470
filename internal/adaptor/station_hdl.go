package adaptor

import (
	"encoding/json"
	"net/http"

	"transit-booking/internal/dto/request"
	"transit-booking/internal/usecase"
	"transit-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type StationHandler struct {
	service usecase.StationService
	log     *zap.Logger
}

func NewStationHandler(service usecase.StationService, log *zap.Logger) *StationHandler {
	return &StationHandler{
		service: service,
		log:     log.With(zap.String("handler", "station")),
	}
}

// ListStations handles GET /api/stations (public)
func (h *StationHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.service.ListStations(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list stations")
		return
	}

	utils.ResponseSuccess(w, "success", stations)
}

// GetStation handles GET /api/stations/{id} (public)
func (h *StationHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "id")
	if stationID == "" {
		utils.ResponseBadRequest(w, "Station ID is required", nil)
		return
	}

	station, err := h.service.GetStation(r.Context(), stationID)
	if err != nil {
		writeServiceError(w, h.log, err, "get station")
		return
	}

	utils.ResponseSuccess(w, "success", station)
}

// CreateStation handles POST /api/admin/stations (admin only)
func (h *StationHandler) CreateStation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateStationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	station, err := h.service.CreateStation(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create station")
		return
	}

	utils.ResponseCreated(w, "success", station)
}
