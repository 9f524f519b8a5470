package usecase

import (
	"context"
	"fmt"
	"math/rand"

	"transit-booking/internal/data/entity"
	"transit-booking/internal/data/repository"
	"transit-booking/internal/dto/request"
	"transit-booking/internal/dto/response"
	"transit-booking/pkg/clock"
	"transit-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, userID string, reason string) error
	GetBooking(ctx context.Context, bookingID string, userID *string) (*response.BookingResponse, error)
	GetBookingByReference(ctx context.Context, reference string) (*response.BookingResponse, error)
	ListUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingStats(ctx context.Context, userID *string) (*response.BookingStatsResponse, error)

	// Payment state machine
	UpdatePaymentStatus(ctx context.Context, bookingID, status string, paymentReference *string) error
	SimulatePayment(ctx context.Context, bookingID, userID string, req *request.SimulatePaymentRequest) (*response.BookingResponse, error)
}

// txRunner adalah unit of work di atas transaksi database.
type txRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type bookingService struct {
	repo   *repository.Repository
	uow    txRunner
	config *utils.Config
	clock  clock.Clock
	log    *zap.Logger

	// paymentOutcome menentukan hasil simulated payment; di-override di test.
	paymentOutcome func() bool
}

func NewBookingService(repo *repository.Repository, config *utils.Config, clk clock.Clock, log *zap.Logger) BookingService {
	successRate := config.Payment.SuccessRate
	return &bookingService{
		repo:   repo,
		uow:    repo,
		config: config,
		clock:  clk,
		log:    log.With(zap.String("service", "booking")),
		paymentOutcome: func() bool {
			return rand.Float64() < successRate
		},
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	if len(req.Passengers) > s.config.Booking.MaxPassengers {
		return nil, fieldError("Passengers",
			fmt.Sprintf("Maximum is %d passengers per booking", s.config.Booking.MaxPassengers))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	departureID, err := uuid.Parse(req.DepartureID)
	if err != nil {
		return nil, fmt.Errorf("invalid departure ID format %s: %w", req.DepartureID, err)
	}

	passengers := make([]entity.Passenger, len(req.Passengers))
	for i, p := range req.Passengers {
		passengers[i] = entity.Passenger{
			Name:       p.Name,
			Age:        p.Age,
			Gender:     p.Gender,
			IDDocument: p.IDDocument,
		}
	}

	now := s.clock.Now()
	var booking *entity.Booking

	// Satu unit of work: conditional decrement + insert booking commit bersama
	// atau rollback bersama. Tidak ada state parsial yang durable.
	err = s.uow.WithTx(ctx, func(txCtx context.Context) error {
		departure, err := s.repo.Departure.FindByID(txCtx, departureID)
		if err != nil {
			return err
		}
		if departure == nil {
			return ErrDepartureNotFound
		}

		if departure.Status != entity.DepartureStatusActive && departure.Status != entity.DepartureStatusDelayed {
			return ErrDepartureNotBookable
		}
		if departure.DepartureAt.Before(now) {
			return ErrDepartureNotBookable
		}

		reserved, err := s.repo.Departure.TryReserve(txCtx, departureID, len(passengers))
		if err != nil {
			return err
		}
		if !reserved {
			return ErrInsufficientSeats
		}

		totalAmount := departure.Price * float64(len(passengers))

		var paymentMethod *string
		if req.PaymentMethod != "" {
			paymentMethod = &req.PaymentMethod
		}

		booking = &entity.Booking{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:           userUUID,
			DepartureID:      departureID,
			BookingReference: utils.GenerateBookingReference(),
			Passengers:       passengers,
			PassengerCount:   len(passengers),
			TotalAmount:      totalAmount,
			PaymentStatus:    entity.PaymentStatusPending,
			PaymentMethod:    paymentMethod,
			Status:           entity.BookingStatusConfirmed,
			BookedAt:         now,
		}

		return s.repo.Booking.Create(txCtx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_reference", booking.BookingReference),
		zap.String("user_id", userID),
		zap.Int("passenger_count", booking.PassengerCount),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	resp := s.buildBookingResponse(ctx, booking)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID, userID string, reason string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	now := s.clock.Now()

	err = s.uow.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.Booking.FindByIDForUser(txCtx, id, userUUID)
		if err != nil {
			return err
		}
		if booking == nil {
			return ErrBookingNotFound
		}
		if booking.Status == entity.BookingStatusCancelled {
			return ErrBookingAlreadyCancelled
		}

		departure, err := s.repo.Departure.FindByID(txCtx, booking.DepartureID)
		if err != nil {
			return err
		}
		if departure == nil {
			return ErrDepartureNotFound
		}

		refundAmount := CalculateRefund(departure.DepartureAt, now, booking.TotalAmount)

		// Guard status <> cancelled di repository membuat double-cancel yang
		// balapan tetap cuma melepas kursi sekali.
		marked, err := s.repo.Booking.MarkCancelled(txCtx, id, reason, refundAmount, now)
		if err != nil {
			return err
		}
		if !marked {
			return ErrBookingAlreadyCancelled
		}

		released, err := s.repo.Departure.Release(txCtx, booking.DepartureID, booking.PassengerCount)
		if err != nil {
			return err
		}
		if !released {
			// Invariant: kursi yang dilepas tidak boleh melebihi kapasitas awal.
			return fmt.Errorf("release %d seats on departure %s would exceed capacity",
				booking.PassengerCount, booking.DepartureID.String())
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID),
		zap.String("reason", reason),
	)

	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string, userID *string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	var booking *entity.Booking
	if userID != nil {
		userUUID, err := uuid.Parse(*userID)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID format %s: %w", *userID, err)
		}
		booking, err = s.repo.Booking.FindByIDForUser(ctx, id, userUUID)
		if err != nil {
			return nil, err
		}
	} else {
		booking, err = s.repo.Booking.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	if booking == nil {
		return nil, ErrBookingNotFound
	}

	resp := s.buildBookingResponse(ctx, booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByReference(ctx context.Context, reference string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	resp := s.buildBookingResponse(ctx, booking)
	return &resp, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = s.buildBookingResponse(ctx, booking)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBookingStats(ctx context.Context, userID *string) (*response.BookingStatsResponse, error) {
	var userUUID *uuid.UUID
	if userID != nil {
		parsed, err := uuid.Parse(*userID)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID format %s: %w", *userID, err)
		}
		userUUID = &parsed
	}

	stats, err := s.repo.Booking.Stats(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	return &response.BookingStatsResponse{
		Total:           stats.Total,
		Confirmed:       stats.Confirmed,
		Completed:       stats.Completed,
		Cancelled:       stats.Cancelled,
		TotalAmountPaid: stats.TotalAmountPaid,
	}, nil
}

// ==================== PAYMENT STATE MACHINE ====================

// paymentTransitions: pending -> paid | failed, paid -> refunded,
// failed -> pending (retry oleh caller).
var paymentTransitions = map[entity.PaymentStatus][]entity.PaymentStatus{
	entity.PaymentStatusPending: {entity.PaymentStatusPaid, entity.PaymentStatusFailed},
	entity.PaymentStatusPaid:    {entity.PaymentStatusRefunded},
	entity.PaymentStatusFailed:  {entity.PaymentStatusPending},
}

func parsePaymentStatus(status string) (entity.PaymentStatus, bool) {
	switch entity.PaymentStatus(status) {
	case entity.PaymentStatusPending, entity.PaymentStatusPaid,
		entity.PaymentStatusFailed, entity.PaymentStatusRefunded:
		return entity.PaymentStatus(status), true
	}
	return "", false
}

func transitionAllowed(from, to entity.PaymentStatus) bool {
	for _, allowed := range paymentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *bookingService) UpdatePaymentStatus(ctx context.Context, bookingID, status string, paymentReference *string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	target, ok := parsePaymentStatus(status)
	if !ok {
		return ErrInvalidPaymentStatus
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if booking.PaymentStatus == target {
		// Idempotent replay dari gateway. Untuk paid, pastikan ticket tetap ada.
		if target == entity.PaymentStatusPaid && booking.TicketCode == nil {
			return s.applyPayment(ctx, booking, target, paymentReference)
		}
		return nil
	}

	if !transitionAllowed(booking.PaymentStatus, target) {
		return ErrInvalidPaymentStatus
	}

	return s.applyPayment(ctx, booking, target, paymentReference)
}

// applyPayment menulis transisi; transisi ke paid sekaligus materialize ticket code.
func (s *bookingService) applyPayment(ctx context.Context, booking *entity.Booking, target entity.PaymentStatus, paymentReference *string) error {
	var ticketCode *string
	if target == entity.PaymentStatusPaid && booking.TicketCode == nil {
		code, err := utils.GenerateTicketCode(s.config.Booking.TicketSecret, booking.ID, booking.BookingReference, s.clock.Now())
		if err != nil {
			return err
		}
		ticketCode = &code
	}

	if err := s.repo.Booking.UpdatePayment(ctx, booking.ID, target, paymentReference, nil, ticketCode); err != nil {
		return err
	}

	s.log.Info("Payment status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", string(booking.PaymentStatus)),
		zap.String("to", string(target)),
	)

	return nil
}

func (s *bookingService) SimulatePayment(ctx context.Context, bookingID, userID string, req *request.SimulatePaymentRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	booking, err := s.repo.Booking.FindByIDForUser(ctx, id, userUUID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	// Retry atas pembayaran gagal adalah transisi pending baru.
	if booking.PaymentStatus == entity.PaymentStatusFailed {
		if err := s.repo.Booking.UpdatePayment(ctx, booking.ID, entity.PaymentStatusPending, nil, nil, nil); err != nil {
			return nil, err
		}
		booking.PaymentStatus = entity.PaymentStatusPending
	}

	if booking.PaymentStatus != entity.PaymentStatusPending {
		return nil, ErrInvalidPaymentStatus
	}

	target := entity.PaymentStatusFailed
	if s.paymentOutcome() {
		target = entity.PaymentStatusPaid
	}

	paymentRef := fmt.Sprintf("SIM-%s", uuid.New().String())

	var ticketCode *string
	if target == entity.PaymentStatusPaid {
		code, err := utils.GenerateTicketCode(s.config.Booking.TicketSecret, booking.ID, booking.BookingReference, s.clock.Now())
		if err != nil {
			return nil, err
		}
		ticketCode = &code
	}

	if err := s.repo.Booking.UpdatePayment(ctx, booking.ID, target, &paymentRef, &req.PaymentMethod, ticketCode); err != nil {
		return nil, err
	}

	s.log.Info("Simulated payment processed",
		zap.String("booking_id", bookingID),
		zap.String("payment_method", req.PaymentMethod),
		zap.String("result", string(target)),
	)

	updated, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrBookingNotFound
	}

	resp := s.buildBookingResponse(ctx, updated)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) buildBookingResponse(ctx context.Context, booking *entity.Booking) response.BookingResponse {
	resp := response.BookingToResponse(booking)

	departure, _ := s.repo.Departure.FindByID(ctx, booking.DepartureID)
	if departure == nil {
		return resp
	}

	var originName, destinationName string
	if origin, _ := s.repo.Station.FindByID(ctx, departure.OriginID); origin != nil {
		originName = origin.Name
	}
	if destination, _ := s.repo.Station.FindByID(ctx, departure.DestinationID); destination != nil {
		destinationName = destination.Name
	}

	return resp.WithDeparture(departure, originName, destinationName)
}
