package request

type SearchDeparturesRequest struct {
	OriginID      string `json:"origin_station_id" validate:"required,uuid4"`
	DestinationID string `json:"destination_station_id" validate:"required,uuid4"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
}

type CreateDepartureRequest struct {
	TrainName     string  `json:"train_name" validate:"required,min=2,max=100"`
	TrainNumber   string  `json:"train_number" validate:"required,min=1,max=20"`
	OriginID      string  `json:"origin_station_id" validate:"required,uuid4"`
	DestinationID string  `json:"destination_station_id" validate:"required,uuid4"`
	DepartureAt   string  `json:"departure_at" validate:"required"`
	ArrivalAt     string  `json:"arrival_at" validate:"required"`
	TotalSeats    int     `json:"total_seats" validate:"required,gte=1"`
	Price         float64 `json:"price" validate:"required,gte=0"`
}

type UpdateDepartureStatusRequest struct {
	Status       string `json:"status" validate:"required,oneof=active cancelled delayed maintenance"`
	DelayMinutes int    `json:"delay_minutes" validate:"omitempty,gte=0"`
}
