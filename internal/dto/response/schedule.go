package response

import (
	"time"

	"transit-booking/internal/data/entity"
)

type DepartureResponse struct {
	ID              string                 `json:"id"`
	TrainName       string                 `json:"train_name"`
	TrainNumber     string                 `json:"train_number"`
	OriginID        string                 `json:"origin_station_id"`
	OriginName      string                 `json:"origin_name,omitempty"`
	DestinationID   string                 `json:"destination_station_id"`
	DestinationName string                 `json:"destination_name,omitempty"`
	DepartureAt     time.Time              `json:"departure_at"`
	ArrivalAt       time.Time              `json:"arrival_at"`
	TotalSeats      int                    `json:"total_seats"`
	AvailableSeats  int                    `json:"available_seats"`
	Price           float64                `json:"price"`
	Status          entity.DepartureStatus `json:"status"`
	DelayMinutes    int                    `json:"delay_minutes,omitempty"`
}

func DepartureToResponse(d *entity.Departure, originName, destinationName string) DepartureResponse {
	return DepartureResponse{
		ID:              d.ID.String(),
		TrainName:       d.TrainName,
		TrainNumber:     d.TrainNumber,
		OriginID:        d.OriginID.String(),
		OriginName:      originName,
		DestinationID:   d.DestinationID.String(),
		DestinationName: destinationName,
		DepartureAt:     d.DepartureAt,
		ArrivalAt:       d.ArrivalAt,
		TotalSeats:      d.TotalSeats,
		AvailableSeats:  d.AvailableSeats,
		Price:           d.Price,
		Status:          d.Status,
		DelayMinutes:    d.DelayMinutes,
	}
}

// SearchDeparturesResponse adalah hasil pencarian jadwal. Available seats di sini
// advisory (point-in-time); cek kapasitas otoritatif terjadi saat create booking.
type SearchDeparturesResponse struct {
	Departures []DepartureResponse `json:"departures"`
	CachedAt   time.Time           `json:"cached_at"`
}
