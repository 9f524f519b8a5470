package response

import (
	"time"

	"transit-booking/internal/data/entity"
)

type PassengerResponse struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	IDDocument string `json:"id_document,omitempty"`
}

type BookingResponse struct {
	ID                 string               `json:"id"`
	BookingReference   string               `json:"booking_reference"`
	UserID             string               `json:"user_id"`
	DepartureID        string               `json:"departure_id"`
	TrainName          string               `json:"train_name,omitempty"`
	TrainNumber        string               `json:"train_number,omitempty"`
	OriginName         string               `json:"origin_name,omitempty"`
	DestinationName    string               `json:"destination_name,omitempty"`
	DepartureAt        *time.Time           `json:"departure_at,omitempty"`
	Passengers         []PassengerResponse  `json:"passengers"`
	PassengerCount     int                  `json:"passenger_count"`
	TotalAmount        float64              `json:"total_amount"`
	PaymentStatus      entity.PaymentStatus `json:"payment_status"`
	PaymentMethod      *string              `json:"payment_method,omitempty"`
	PaymentReference   *string              `json:"payment_reference,omitempty"`
	Status             entity.BookingStatus `json:"status"`
	TicketCode         *string              `json:"ticket_code,omitempty"`
	CancellationReason *string              `json:"cancellation_reason,omitempty"`
	RefundAmount       *float64             `json:"refund_amount,omitempty"`
	BookedAt           time.Time            `json:"booked_at"`
	CancelledAt        *time.Time           `json:"cancelled_at,omitempty"`
}

type BookingStatsResponse struct {
	Total           int64   `json:"total"`
	Confirmed       int64   `json:"confirmed"`
	Completed       int64   `json:"completed"`
	Cancelled       int64   `json:"cancelled"`
	TotalAmountPaid float64 `json:"total_amount_paid"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	passengers := make([]PassengerResponse, len(b.Passengers))
	for i, p := range b.Passengers {
		passengers[i] = PassengerResponse{
			Name:       p.Name,
			Age:        p.Age,
			Gender:     p.Gender,
			IDDocument: p.IDDocument,
		}
	}

	return BookingResponse{
		ID:                 b.ID.String(),
		BookingReference:   b.BookingReference,
		UserID:             b.UserID.String(),
		DepartureID:        b.DepartureID.String(),
		Passengers:         passengers,
		PassengerCount:     b.PassengerCount,
		TotalAmount:        b.TotalAmount,
		PaymentStatus:      b.PaymentStatus,
		PaymentMethod:      b.PaymentMethod,
		PaymentReference:   b.PaymentReference,
		Status:             b.Status,
		TicketCode:         b.TicketCode,
		CancellationReason: b.CancellationReason,
		RefundAmount:       b.RefundAmount,
		BookedAt:           b.BookedAt,
		CancelledAt:        b.CancelledAt,
	}
}

// WithDeparture melengkapi response dengan detail jadwal untuk tampilan.
func (r BookingResponse) WithDeparture(d *entity.Departure, originName, destinationName string) BookingResponse {
	if d == nil {
		return r
	}
	departureAt := d.DepartureAt
	r.TrainName = d.TrainName
	r.TrainNumber = d.TrainNumber
	r.OriginName = originName
	r.DestinationName = destinationName
	r.DepartureAt = &departureAt
	return r
}
