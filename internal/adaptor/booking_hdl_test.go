package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"transit-booking/internal/dto/request"
	"transit-booking/internal/dto/response"
	"transit-booking/internal/usecase"
	"transit-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stubBookingService mengembalikan hasil dari function field per method.
type stubBookingService struct {
	createFn    func(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	cancelFn    func(ctx context.Context, bookingID, userID, reason string) error
	getFn       func(ctx context.Context, bookingID string, userID *string) (*response.BookingResponse, error)
	byRefFn     func(ctx context.Context, reference string) (*response.BookingResponse, error)
	listFn      func(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	statsFn     func(ctx context.Context, userID *string) (*response.BookingStatsResponse, error)
	updatePayFn func(ctx context.Context, bookingID, status string, paymentReference *string) error
	simulateFn  func(ctx context.Context, bookingID, userID string, req *request.SimulatePaymentRequest) (*response.BookingResponse, error)
}

func (s *stubBookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return s.createFn(ctx, userID, req)
}

func (s *stubBookingService) CancelBooking(ctx context.Context, bookingID, userID string, reason string) error {
	return s.cancelFn(ctx, bookingID, userID, reason)
}

func (s *stubBookingService) GetBooking(ctx context.Context, bookingID string, userID *string) (*response.BookingResponse, error) {
	return s.getFn(ctx, bookingID, userID)
}

func (s *stubBookingService) GetBookingByReference(ctx context.Context, reference string) (*response.BookingResponse, error) {
	return s.byRefFn(ctx, reference)
}

func (s *stubBookingService) ListUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	return s.listFn(ctx, userID, req)
}

func (s *stubBookingService) GetBookingStats(ctx context.Context, userID *string) (*response.BookingStatsResponse, error) {
	return s.statsFn(ctx, userID)
}

func (s *stubBookingService) UpdatePaymentStatus(ctx context.Context, bookingID, status string, paymentReference *string) error {
	return s.updatePayFn(ctx, bookingID, status, paymentReference)
}

func (s *stubBookingService) SimulatePayment(ctx context.Context, bookingID, userID string, req *request.SimulatePaymentRequest) (*response.BookingResponse, error) {
	return s.simulateFn(ctx, bookingID, userID, req)
}

type stubTicketService struct {
	generateFn func(ctx context.Context, bookingID, userID string) ([]byte, string, error)
}

func (s *stubTicketService) GenerateETicket(ctx context.Context, bookingID, userID string) ([]byte, string, error) {
	return s.generateFn(ctx, bookingID, userID)
}

// withUser menirukan auth middleware: set user ID dan role di context.
func withUser(userID uuid.UUID, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := utils.SetUserContext(r.Context(), userID, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newBookingRouter(service usecase.BookingService, tickets usecase.TicketService, userID uuid.UUID, role string) *chi.Mux {
	handler := NewBookingHandler(service, tickets, zap.NewNop())

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(withUser(userID, role))
		r.Post("/api/bookings", handler.CreateBooking)
		r.Get("/api/bookings/{id}", handler.GetBooking)
		r.Put("/api/bookings/{id}/cancel", handler.CancelBooking)
		r.Post("/api/bookings/{id}/pay", handler.SimulatePayment)
		r.Get("/api/bookings/{id}/ticket", handler.DownloadTicket)
	})
	r.Post("/api/payments/callback", handler.PaymentCallback)
	return r
}

func validCreateBody() []byte {
	body, _ := json.Marshal(request.CreateBookingRequest{
		DepartureID:   uuid.New().String(),
		OriginID:      uuid.New().String(),
		DestinationID: uuid.New().String(),
		JourneyDate:   "2026-09-05",
		Passengers: []request.PassengerInput{
			{Name: "Budi Santoso", Age: 30, Gender: "male"},
		},
		PaymentMethod: "card",
	})
	return body
}

func TestCreateBookingHandler(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"sold out maps to conflict", usecase.ErrInsufficientSeats, http.StatusConflict},
		{"not bookable maps to bad request", usecase.ErrDepartureNotBookable, http.StatusBadRequest},
		{"unknown departure maps to not found", usecase.ErrDepartureNotFound, http.StatusNotFound},
		{"internal error is opaque", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubBookingService{
				createFn: func(ctx context.Context, uid string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &response.BookingResponse{ID: uuid.New().String(), BookingReference: "TRBK12345678ABCD"}, nil
				},
			}
			router := newBookingRouter(service, &stubTicketService{}, userID, "customer")

			req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(validCreateBody()))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestCreateBookingHandlerValidationError(t *testing.T) {
	service := &stubBookingService{
		createFn: func(ctx context.Context, uid string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
			return nil, &usecase.ValidationError{Fields: map[string]string{"Passengers": "Required"}}
		},
	}
	router := newBookingRouter(service, &stubTicketService{}, uuid.New(), "customer")

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(validCreateBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreateBookingHandlerUnauthenticated(t *testing.T) {
	handler := NewBookingHandler(&stubBookingService{}, &stubTicketService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(validCreateBody()))
	rec := httptest.NewRecorder()
	handler.CreateBooking(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestCancelBookingHandler(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"cancelled", nil, http.StatusOK},
		{"already cancelled maps to conflict", usecase.ErrBookingAlreadyCancelled, http.StatusConflict},
		{"not found", usecase.ErrBookingNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &stubBookingService{
				cancelFn: func(ctx context.Context, bookingID, uid, reason string) error {
					return tt.serviceErr
				},
			}
			router := newBookingRouter(service, &stubTicketService{}, userID, "customer")

			body, _ := json.Marshal(request.CancelBookingRequest{Reason: "change of plans"})
			req := httptest.NewRequest(http.MethodPut, "/api/bookings/"+uuid.New().String()+"/cancel", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestGetBookingHandlerOwnerFilter(t *testing.T) {
	userID := uuid.New()

	t.Run("customer is scoped to own bookings", func(t *testing.T) {
		var gotFilter *string
		service := &stubBookingService{
			getFn: func(ctx context.Context, bookingID string, filter *string) (*response.BookingResponse, error) {
				gotFilter = filter
				return &response.BookingResponse{ID: bookingID}, nil
			},
		}
		router := newBookingRouter(service, &stubTicketService{}, userID, "customer")

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/"+uuid.New().String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if gotFilter == nil || *gotFilter != userID.String() {
			t.Errorf("owner filter = %v, want %s", gotFilter, userID)
		}
	})

	t.Run("admin sees any booking", func(t *testing.T) {
		var gotFilter *string
		service := &stubBookingService{
			getFn: func(ctx context.Context, bookingID string, filter *string) (*response.BookingResponse, error) {
				gotFilter = filter
				return &response.BookingResponse{ID: bookingID}, nil
			},
		}
		router := newBookingRouter(service, &stubTicketService{}, userID, "admin")

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/"+uuid.New().String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if gotFilter != nil {
			t.Errorf("owner filter = %v, want nil for admin", *gotFilter)
		}
	})
}

func TestSimulatePaymentHandlerInvalidState(t *testing.T) {
	service := &stubBookingService{
		simulateFn: func(ctx context.Context, bookingID, uid string, req *request.SimulatePaymentRequest) (*response.BookingResponse, error) {
			return nil, usecase.ErrInvalidPaymentStatus
		},
	}
	router := newBookingRouter(service, &stubTicketService{}, uuid.New(), "customer")

	body, _ := json.Marshal(request.SimulatePaymentRequest{PaymentMethod: "card"})
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/"+uuid.New().String()+"/pay", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestPaymentCallbackHandler(t *testing.T) {
	t.Run("valid callback", func(t *testing.T) {
		var gotStatus string
		service := &stubBookingService{
			updatePayFn: func(ctx context.Context, bookingID, status string, paymentReference *string) error {
				gotStatus = status
				return nil
			},
		}
		router := newBookingRouter(service, &stubTicketService{}, uuid.New(), "customer")

		body, _ := json.Marshal(request.PaymentCallbackRequest{
			BookingID:        uuid.New().String(),
			Status:           "paid",
			PaymentReference: "GW-123",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/payments/callback", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if gotStatus != "paid" {
			t.Errorf("status forwarded = %q, want paid", gotStatus)
		}
	})

	t.Run("unknown status rejected before service call", func(t *testing.T) {
		service := &stubBookingService{
			updatePayFn: func(ctx context.Context, bookingID, status string, paymentReference *string) error {
				t.Fatal("service should not be called")
				return nil
			},
		}
		router := newBookingRouter(service, &stubTicketService{}, uuid.New(), "customer")

		body, _ := json.Marshal(request.PaymentCallbackRequest{
			BookingID: uuid.New().String(),
			Status:    "settled",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/payments/callback", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestDownloadTicketHandler(t *testing.T) {
	t.Run("paid booking returns pdf", func(t *testing.T) {
		tickets := &stubTicketService{
			generateFn: func(ctx context.Context, bookingID, uid string) ([]byte, string, error) {
				return []byte("%PDF-1.3"), "eticket-TRBK12345678ABCD.pdf", nil
			},
		}
		router := newBookingRouter(&stubBookingService{}, tickets, uuid.New(), "customer")

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/"+uuid.New().String()+"/ticket", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
			t.Errorf("Content-Type = %q, want application/pdf", got)
		}
	})

	t.Run("unpaid booking rejected", func(t *testing.T) {
		tickets := &stubTicketService{
			generateFn: func(ctx context.Context, bookingID, uid string) ([]byte, string, error) {
				return nil, "", usecase.ErrTicketNotAvailable
			},
		}
		router := newBookingRouter(&stubBookingService{}, tickets, uuid.New(), "customer")

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/"+uuid.New().String()+"/ticket", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}
