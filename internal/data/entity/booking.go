package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Passenger disimpan sebagai elemen array JSONB di kolom passengers.
type Passenger struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	IDDocument string `json:"id_document,omitempty"`
}

type Booking struct {
	Base
	UserID             uuid.UUID     `db:"user_id"`
	DepartureID        uuid.UUID     `db:"departure_id"`
	BookingReference   string        `db:"booking_reference"`
	Passengers         []Passenger   `db:"passengers"`
	PassengerCount     int           `db:"passenger_count"`
	TotalAmount        float64       `db:"total_amount"`
	PaymentStatus      PaymentStatus `db:"payment_status"`
	PaymentMethod      *string       `db:"payment_method"`
	PaymentReference   *string       `db:"payment_reference"`
	Status             BookingStatus `db:"status"`
	TicketCode         *string       `db:"ticket_code"`
	CancellationReason *string       `db:"cancellation_reason"`
	RefundAmount       *float64      `db:"refund_amount"`
	BookedAt           time.Time     `db:"booked_at"`
	CancelledAt        *time.Time    `db:"cancelled_at"`
}
