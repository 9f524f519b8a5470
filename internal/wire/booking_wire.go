package wire

import (
	"transit-booking/internal/adaptor"
	"transit-booking/internal/data/repository"
	"transit-booking/pkg/middleware"
	"transit-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Create new booking
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - Booking detail (owner or admin)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// PUT /api/bookings/{id}/cancel - Cancel booking and release seats
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// GET /api/bookings/ref/{reference} - Lookup by booking reference
		r.Get("/api/bookings/ref/{reference}", bookingHandler.GetBookingByReference)

		// POST /api/bookings/{id}/pay - Simulate payment for booking
		r.Post("/api/bookings/{id}/pay", bookingHandler.SimulatePayment)

		// GET /api/bookings/{id}/ticket - Download e-ticket PDF
		r.Get("/api/bookings/{id}/ticket", bookingHandler.DownloadTicket)

		// GET /api/user/bookings - View booking history (user's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// GET /api/user/bookings/stats - Booking stats for current user
		r.Get("/api/user/bookings/stats", bookingHandler.GetUserBookingStats)
	})

	// ==================== PUBLIC ROUTES ====================
	// POST /api/payments/callback - Payment gateway callback
	r.Post("/api/payments/callback", bookingHandler.PaymentCallback)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/bookings/stats - Aggregate booking stats
		r.Get("/stats", bookingHandler.GetBookingStats)
	})
}
