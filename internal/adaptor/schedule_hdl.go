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

type ScheduleHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log.With(zap.String("handler", "schedule")),
	}
}

// SearchDepartures handles GET /api/schedules/search (public)
func (h *ScheduleHandler) SearchDepartures(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.SearchDeparturesRequest{
		OriginID:      query.Get("origin"),
		DestinationID: query.Get("destination"),
		Date:          query.Get("date"),
		Time:          query.Get("time"),
	}

	result, err := h.service.SearchDepartures(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "search departures")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetDeparture handles GET /api/schedules/{id} (public)
func (h *ScheduleHandler) GetDeparture(w http.ResponseWriter, r *http.Request) {
	departureID := chi.URLParam(r, "id")
	if departureID == "" {
		utils.ResponseBadRequest(w, "Departure ID is required", nil)
		return
	}

	departure, err := h.service.GetDeparture(r.Context(), departureID)
	if err != nil {
		writeServiceError(w, h.log, err, "get departure")
		return
	}

	utils.ResponseSuccess(w, "success", departure)
}

// ==================== ADMIN METHODS ====================

// CreateDeparture handles POST /api/admin/schedules (admin only)
func (h *ScheduleHandler) CreateDeparture(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDepartureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	departure, err := h.service.CreateDeparture(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create departure")
		return
	}

	utils.ResponseCreated(w, "success", departure)
}

// UpdateDepartureStatus handles PUT /api/admin/schedules/{id}/status (admin only)
func (h *ScheduleHandler) UpdateDepartureStatus(w http.ResponseWriter, r *http.Request) {
	departureID := chi.URLParam(r, "id")
	if departureID == "" {
		utils.ResponseBadRequest(w, "Departure ID is required", nil)
		return
	}

	var req request.UpdateDepartureStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdateDepartureStatus(r.Context(), departureID, &req); err != nil {
		writeServiceError(w, h.log, err, "update departure status")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
