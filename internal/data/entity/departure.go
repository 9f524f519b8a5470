package entity

import (
	"time"

	"github.com/google/uuid"
)

type DepartureStatus string

const (
	DepartureStatusActive      DepartureStatus = "active"
	DepartureStatusCancelled   DepartureStatus = "cancelled"
	DepartureStatusDelayed     DepartureStatus = "delayed"
	DepartureStatusMaintenance DepartureStatus = "maintenance"
)

// Departure adalah satu jadwal keberangkatan kereta dengan kapasitas kursi tetap.
// AvailableSeats hanya boleh berubah lewat conditional update di repository.
type Departure struct {
	Base
	TrainName      string          `db:"train_name"`
	TrainNumber    string          `db:"train_number"`
	OriginID       uuid.UUID       `db:"origin_station_id"`
	DestinationID  uuid.UUID       `db:"destination_station_id"`
	DepartureAt    time.Time       `db:"departure_at"`
	ArrivalAt      time.Time       `db:"arrival_at"`
	TotalSeats     int             `db:"total_seats"`
	AvailableSeats int             `db:"available_seats"`
	Price          float64         `db:"price"`
	Status         DepartureStatus `db:"status"`
	DelayMinutes   int             `db:"delay_minutes"`
}
