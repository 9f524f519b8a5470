package response

import "transit-booking/internal/data/entity"

type StationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	City string `json:"city"`
}

func StationToResponse(station *entity.Station) StationResponse {
	return StationResponse{
		ID:   station.ID.String(),
		Name: station.Name,
		Code: station.Code,
		City: station.City,
	}
}
