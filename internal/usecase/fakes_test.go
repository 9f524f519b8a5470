package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"transit-booking/internal/data/entity"
	"transit-booking/internal/data/repository"
	"transit-booking/pkg/clock"
	"transit-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// passthroughTx menjalankan fn langsung tanpa transaksi database.
type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stepClock adalah clock yang bisa dimajukan manual di test.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock(t time.Time) *stepClock {
	return &stepClock{now: t.UTC()}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ==================== FAKE DEPARTURE REPO ====================

type fakeDepartureRepo struct {
	mu          sync.Mutex
	departures  map[uuid.UUID]*entity.Departure
	searchCalls int
}

func newFakeDepartureRepo() *fakeDepartureRepo {
	return &fakeDepartureRepo{departures: make(map[uuid.UUID]*entity.Departure)}
}

func (f *fakeDepartureRepo) Create(ctx context.Context, departure *entity.Departure) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *departure
	f.departures[departure.ID] = &cp
	return nil
}

func (f *fakeDepartureRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Departure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	departure, ok := f.departures[id]
	if !ok {
		return nil, nil
	}
	cp := *departure
	return &cp, nil
}

func (f *fakeDepartureRepo) Search(ctx context.Context, originID, destinationID uuid.UUID, date time.Time, after *time.Time) ([]*entity.Departure, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++

	var result []*entity.Departure
	for _, departure := range f.departures {
		if departure.OriginID != originID || departure.DestinationID != destinationID {
			continue
		}
		if departure.DepartureAt.Format("2006-01-02") != date.Format("2006-01-02") {
			continue
		}
		if departure.Status != entity.DepartureStatusActive && departure.Status != entity.DepartureStatusDelayed {
			continue
		}
		if after != nil && departure.DepartureAt.Before(*after) {
			continue
		}
		cp := *departure
		result = append(result, &cp)
	}
	return result, nil
}

func (f *fakeDepartureRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DepartureStatus, delayMinutes int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	departure, ok := f.departures[id]
	if !ok {
		return ErrDepartureNotFound
	}
	departure.Status = status
	departure.DelayMinutes = delayMinutes
	return nil
}

func (f *fakeDepartureRepo) TryReserve(ctx context.Context, id uuid.UUID, count int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	departure, ok := f.departures[id]
	if !ok {
		return false, nil
	}
	if departure.Status != entity.DepartureStatusActive && departure.Status != entity.DepartureStatusDelayed {
		return false, nil
	}
	if departure.AvailableSeats < count {
		return false, nil
	}
	departure.AvailableSeats -= count
	return true, nil
}

func (f *fakeDepartureRepo) Release(ctx context.Context, id uuid.UUID, count int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	departure, ok := f.departures[id]
	if !ok {
		return false, nil
	}
	if departure.AvailableSeats+count > departure.TotalSeats {
		return false, nil
	}
	departure.AvailableSeats += count
	return true, nil
}

func (f *fakeDepartureRepo) available(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.departures[id].AvailableSeats
}

// ==================== FAKE BOOKING REPO ====================

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *booking
	return &cp, nil
}

func (f *fakeBookingRepo) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok || booking.UserID != userID {
		return nil, nil
	}
	cp := *booking
	return &cp, nil
}

func (f *fakeBookingRepo) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, booking := range f.bookings {
		if booking.BookingReference == reference {
			cp := *booking
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			cp := *booking
			result = append(result, &cp)
		}
	}
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) MarkCancelled(ctx context.Context, id uuid.UUID, reason string, refundAmount float64, cancelledAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok || booking.Status == entity.BookingStatusCancelled {
		return false, nil
	}
	booking.Status = entity.BookingStatusCancelled
	booking.CancellationReason = &reason
	booking.RefundAmount = &refundAmount
	booking.CancelledAt = &cancelledAt
	return true, nil
}

func (f *fakeBookingRepo) UpdatePayment(ctx context.Context, id uuid.UUID, status entity.PaymentStatus, paymentRef, paymentMethod, ticketCode *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	booking.PaymentStatus = status
	if paymentRef != nil {
		booking.PaymentReference = paymentRef
	}
	if paymentMethod != nil {
		booking.PaymentMethod = paymentMethod
	}
	if ticketCode != nil {
		booking.TicketCode = ticketCode
	}
	return nil
}

func (f *fakeBookingRepo) Stats(ctx context.Context, userID *uuid.UUID) (*repository.BookingStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &repository.BookingStats{}
	for _, booking := range f.bookings {
		if userID != nil && booking.UserID != *userID {
			continue
		}
		stats.Total++
		switch booking.Status {
		case entity.BookingStatusConfirmed:
			stats.Confirmed++
		case entity.BookingStatusCompleted:
			stats.Completed++
		case entity.BookingStatusCancelled:
			stats.Cancelled++
		}
		if booking.PaymentStatus == entity.PaymentStatusPaid {
			stats.TotalAmountPaid += booking.TotalAmount
		}
	}
	return stats, nil
}

func (f *fakeBookingRepo) get(id uuid.UUID) *entity.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil
	}
	cp := *booking
	return &cp
}

func (f *fakeBookingRepo) put(booking *entity.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *booking
	f.bookings[booking.ID] = &cp
}

// ==================== FAKE STATION REPO ====================

type fakeStationRepo struct {
	mu       sync.Mutex
	stations map[uuid.UUID]*entity.Station
}

func newFakeStationRepo() *fakeStationRepo {
	return &fakeStationRepo{stations: make(map[uuid.UUID]*entity.Station)}
}

func (f *fakeStationRepo) Create(ctx context.Context, station *entity.Station) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *station
	f.stations[station.ID] = &cp
	return nil
}

func (f *fakeStationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Station, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	station, ok := f.stations[id]
	if !ok {
		return nil, nil
	}
	cp := *station
	return &cp, nil
}

func (f *fakeStationRepo) FindByCode(ctx context.Context, code string) (*entity.Station, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, station := range f.stations {
		if strings.EqualFold(station.Code, code) {
			cp := *station
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStationRepo) FindAll(ctx context.Context) ([]*entity.Station, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Station
	for _, station := range f.stations {
		cp := *station
		result = append(result, &cp)
	}
	return result, nil
}

// ==================== TEST FIXTURES ====================

func testConfig() *utils.Config {
	return &utils.Config{
		Booking: utils.BookingConfig{
			MaxPassengers:      6,
			SearchCacheMinutes: 20,
			TicketSecret:       "test-secret",
		},
		Payment: utils.PaymentConfig{SuccessRate: 1.0},
	}
}

func newBookingServiceForTest(repo *repository.Repository, clk clock.Clock, outcome func() bool) *bookingService {
	return &bookingService{
		repo:           repo,
		uow:            passthroughTx{},
		config:         testConfig(),
		clock:          clk,
		log:            zap.NewNop(),
		paymentOutcome: outcome,
	}
}

func seedStation(stations *fakeStationRepo, name, code string) uuid.UUID {
	id := uuid.New()
	stations.stations[id] = &entity.Station{
		Base: entity.Base{ID: id},
		Name: name,
		Code: code,
		City: name,
	}
	return id
}

func seedDeparture(departures *fakeDepartureRepo, originID, destinationID uuid.UUID, departureAt time.Time, seats int, price float64) uuid.UUID {
	id := uuid.New()
	departures.departures[id] = &entity.Departure{
		Base:           entity.Base{ID: id},
		TrainName:      "Argo Test",
		TrainNumber:    "AT-10",
		OriginID:       originID,
		DestinationID:  destinationID,
		DepartureAt:    departureAt,
		ArrivalAt:      departureAt.Add(3 * time.Hour),
		TotalSeats:     seats,
		AvailableSeats: seats,
		Price:          price,
		Status:         entity.DepartureStatusActive,
	}
	return id
}
