package usecase

import (
	"bytes"
	"context"
	"fmt"

	"transit-booking/internal/data/entity"
	"transit-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
)

type TicketService interface {
	// GenerateETicket renders e-ticket PDF untuk booking yang sudah dibayar.
	GenerateETicket(ctx context.Context, bookingID, userID string) ([]byte, string, error)
}

type ticketService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTicketService(repo *repository.Repository, log *zap.Logger) TicketService {
	return &ticketService{
		repo: repo,
		log:  log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) GenerateETicket(ctx context.Context, bookingID, userID string) ([]byte, string, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, "", fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, "", fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	booking, err := s.repo.Booking.FindByIDForUser(ctx, id, userUUID)
	if err != nil {
		return nil, "", err
	}
	if booking == nil {
		return nil, "", ErrBookingNotFound
	}

	if booking.PaymentStatus != entity.PaymentStatusPaid || booking.TicketCode == nil {
		return nil, "", ErrTicketNotAvailable
	}

	departure, err := s.repo.Departure.FindByID(ctx, booking.DepartureID)
	if err != nil {
		return nil, "", err
	}
	if departure == nil {
		return nil, "", ErrDepartureNotFound
	}

	var originName, destinationName string
	if origin, _ := s.repo.Station.FindByID(ctx, departure.OriginID); origin != nil {
		originName = fmt.Sprintf("%s (%s)", origin.Name, origin.Code)
	}
	if destination, _ := s.repo.Station.FindByID(ctx, departure.DestinationID); destination != nil {
		destinationName = fmt.Sprintf("%s (%s)", destination.Name, destination.Code)
	}

	pdfBytes, err := buildETicketPDF(booking, departure, originName, destinationName)
	if err != nil {
		s.log.Error("Failed to build e-ticket PDF",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, "", fmt.Errorf("build e-ticket PDF for booking %s: %w", bookingID, err)
	}

	s.log.Info("E-ticket generated",
		zap.String("booking_id", bookingID),
		zap.String("booking_reference", booking.BookingReference),
	)

	filename := fmt.Sprintf("eticket-%s.pdf", booking.BookingReference)
	return pdfBytes, filename, nil
}

func buildETicketPDF(booking *entity.Booking, departure *entity.Departure, originName, destinationName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "E-TICKET")
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Booking Reference: %s", booking.BookingReference))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Train: %s (%s)", departure.TrainName, departure.TrainNumber))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("From: %s", originName))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("To: %s", destinationName))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Departure: %s", departure.DepartureAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 7, "Passengers")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for i, p := range booking.Passengers {
		pdf.Cell(0, 6, fmt.Sprintf("%d. %s (%d, %s)", i+1, p.Name, p.Age, p.Gender))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Total: %.2f", booking.TotalAmount))
	pdf.Ln(10)

	// Ticket code dicetak untuk scanning di gate.
	pdf.SetFont("Courier", "", 7)
	pdf.MultiCell(0, 4, *booking.TicketCode, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
