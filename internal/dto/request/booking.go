package request

type PassengerInput struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Age        int    `json:"age" validate:"required,gte=1,max=120"`
	Gender     string `json:"gender" validate:"required,oneof=male female other"`
	IDDocument string `json:"id_document,omitempty" validate:"omitempty,max=50"`
}

type CreateBookingRequest struct {
	DepartureID   string           `json:"departure_id" validate:"required,uuid4"`
	OriginID      string           `json:"origin_station_id" validate:"required,uuid4"`
	DestinationID string           `json:"destination_station_id" validate:"required,uuid4"`
	JourneyDate   string           `json:"journey_date" validate:"required,datetime=2006-01-02"`
	Passengers    []PassengerInput `json:"passengers" validate:"required,min=1,dive"`
	PaymentMethod string           `json:"payment_method,omitempty" validate:"omitempty,oneof=card bank_transfer ewallet counter"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

type SimulatePaymentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card bank_transfer ewallet counter"`
}

// PaymentCallbackRequest diterima dari payment gateway.
type PaymentCallbackRequest struct {
	BookingID        string `json:"booking_id" validate:"required,uuid4"`
	Status           string `json:"status" validate:"required,oneof=pending paid failed refunded"`
	PaymentReference string `json:"payment_reference,omitempty"`
}
