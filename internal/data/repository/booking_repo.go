package repository

import (
	"context"
	"fmt"
	"time"

	"transit-booking/internal/data/entity"
	"transit-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingStats adalah agregat untuk dashboard user/admin.
type BookingStats struct {
	Total           int64
	Confirmed       int64
	Completed       int64
	Cancelled       int64
	TotalAmountPaid float64
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error)
	FindByReference(ctx context.Context, reference string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkCancelled flips status ke cancelled sekali saja; returns false kalau
	// booking sudah cancelled (guard di WHERE clause, idempotent).
	MarkCancelled(ctx context.Context, id uuid.UUID, reason string, refundAmount float64, cancelledAt time.Time) (bool, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, status entity.PaymentStatus, paymentRef, paymentMethod, ticketCode *string) error
	Stats(ctx context.Context, userID *uuid.UUID) (*BookingStats, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFromContext(ctx, r.db)
}

const bookingColumns = `id, user_id, departure_id, booking_reference, passengers, passenger_count,
		total_amount, payment_status, payment_method, payment_reference, status, ticket_code,
		cancellation_reason, refund_amount, booked_at, cancelled_at, created_at, updated_at`

func scanBooking(row pgx.Row, b *entity.Booking) error {
	return row.Scan(
		&b.ID,
		&b.UserID,
		&b.DepartureID,
		&b.BookingReference,
		&b.Passengers,
		&b.PassengerCount,
		&b.TotalAmount,
		&b.PaymentStatus,
		&b.PaymentMethod,
		&b.PaymentReference,
		&b.Status,
		&b.TicketCode,
		&b.CancellationReason,
		&b.RefundAmount,
		&b.BookedAt,
		&b.CancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, departure_id, booking_reference, passengers, passenger_count,
			total_amount, payment_status, payment_method, payment_reference, status, ticket_code,
			cancellation_reason, refund_amount, booked_at, cancelled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.q(ctx).Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.DepartureID,
		booking.BookingReference,
		booking.Passengers,
		booking.PassengerCount,
		booking.TotalAmount,
		booking.PaymentStatus,
		booking.PaymentMethod,
		booking.PaymentReference,
		booking.Status,
		booking.TicketCode,
		booking.CancellationReason,
		booking.RefundAmount,
		booking.BookedAt,
		booking.CancelledAt,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_reference", booking.BookingReference),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingReference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := scanBooking(r.q(ctx).QueryRow(ctx, query, id), &booking)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND user_id = $2`

	var booking entity.Booking
	err := scanBooking(r.q(ctx).QueryRow(ctx, query, id, userID), &booking)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID for user",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find booking %s for user %s: %w", id.String(), userID.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_reference = $1`

	var booking entity.Booking
	err := scanBooking(r.q(ctx).QueryRow(ctx, query, reference), &booking)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("booking_reference", reference),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", reference, err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q(ctx).Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		if err := scanBooking(rows, &booking); err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.q(ctx).QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) MarkCancelled(ctx context.Context, id uuid.UUID, reason string, refundAmount float64, cancelledAt time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancellation_reason = $2, refund_amount = $3,
		    cancelled_at = $4, updated_at = NOW()
		WHERE id = $1 AND status <> 'cancelled'
	`

	result, err := r.q(ctx).Exec(ctx, query, id, reason, refundAmount, cancelledAt)
	if err != nil {
		r.log.Error("Failed to mark booking cancelled",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return false, fmt.Errorf("mark booking %s cancelled: %w", id.String(), err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *bookingRepository) UpdatePayment(ctx context.Context, id uuid.UUID, status entity.PaymentStatus, paymentRef, paymentMethod, ticketCode *string) error {
	query := `
		UPDATE bookings
		SET payment_status = $2,
		    payment_reference = COALESCE($3, payment_reference),
		    payment_method = COALESCE($4, payment_method),
		    ticket_code = COALESCE($5, ticket_code),
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.q(ctx).Exec(ctx, query, id, status, paymentRef, paymentMethod, ticketCode)
	if err != nil {
		r.log.Error("Failed to update booking payment",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("payment_status", string(status)),
		)
		return fmt.Errorf("update booking %s payment to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) Stats(ctx context.Context, userID *uuid.UUID) (*BookingStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'confirmed'),
		       COUNT(*) FILTER (WHERE status = 'completed'),
		       COUNT(*) FILTER (WHERE status = 'cancelled'),
		       COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'paid'), 0)
		FROM bookings
		WHERE ($1::uuid IS NULL OR user_id = $1)
	`

	var stats BookingStats
	err := r.q(ctx).QueryRow(ctx, query, userID).Scan(
		&stats.Total,
		&stats.Confirmed,
		&stats.Completed,
		&stats.Cancelled,
		&stats.TotalAmountPaid,
	)
	if err != nil {
		r.log.Error("Failed to load booking stats", zap.Error(err))
		return nil, fmt.Errorf("load booking stats: %w", err)
	}

	return &stats, nil
}
