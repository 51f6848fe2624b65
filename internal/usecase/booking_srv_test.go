package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==================== mocks ====================

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type mockBookingRepo struct {
	createFn           func(ctx context.Context, b *entity.Booking) error
	updateFn           func(ctx context.Context, b *entity.Booking) error
	findByIDFn         func(ctx context.Context, id int64) (*entity.Booking, error)
	findAllFn          func(ctx context.Context) ([]*entity.Booking, error)
	findOverlappingFn  func(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) ([]*entity.Booking, error)
	findByGuestFn      func(ctx context.Context, guestID int64, statuses []entity.BookingStatus) ([]*entity.Booking, error)
	updateStatusFn     func(ctx context.Context, id int64, status entity.BookingStatus) error
	updateStatusFromFn func(ctx context.Context, id int64, from []entity.BookingStatus, to entity.BookingStatus) (bool, error)
	deleteFn           func(ctx context.Context, id int64) error
}

func (m *mockBookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, b)
	}
	b.ID = 1
	return nil
}

func (m *mockBookingRepo) Update(ctx context.Context, b *entity.Booking) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, b)
	}
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id int64) (*entity.Booking, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) ([]*entity.Booking, error) {
	if m.findOverlappingFn != nil {
		return m.findOverlappingFn(ctx, roomID, checkIn, checkOut, excludeID)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindByGuestAndStatuses(ctx context.Context, guestID int64, statuses []entity.BookingStatus) ([]*entity.Booking, error) {
	if m.findByGuestFn != nil {
		return m.findByGuestFn(ctx, guestID, statuses)
	}
	return nil, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status entity.BookingStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepo) UpdateStatusFrom(ctx context.Context, id int64, from []entity.BookingStatus, to entity.BookingStatus) (bool, error) {
	if m.updateStatusFromFn != nil {
		return m.updateStatusFromFn(ctx, id, from, to)
	}
	return true, nil
}

func (m *mockBookingRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockRoomRepo struct {
	createFn       func(ctx context.Context, room *entity.Room) error
	findByIDFn     func(ctx context.Context, id int64) (*entity.Room, error)
	findAllFn      func(ctx context.Context) ([]*entity.Room, error)
	updateFn       func(ctx context.Context, room *entity.Room) error
	updateStatusFn func(ctx context.Context, id int64, status entity.RoomStatus) error
	deleteFn       func(ctx context.Context, id int64) error
}

func (m *mockRoomRepo) Create(ctx context.Context, room *entity.Room) error {
	if m.createFn != nil {
		return m.createFn(ctx, room)
	}
	room.ID = 1
	return nil
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id int64) (*entity.Room, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockRoomRepo) FindAll(ctx context.Context) ([]*entity.Room, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *mockRoomRepo) Update(ctx context.Context, room *entity.Room) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, room)
	}
	return nil
}

func (m *mockRoomRepo) UpdateStatus(ctx context.Context, id int64, status entity.RoomStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockRoomRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockGuestRepo struct {
	createFn      func(ctx context.Context, guest *entity.Guest) error
	findByIDFn    func(ctx context.Context, id int64) (*entity.Guest, error)
	findByEmailFn func(ctx context.Context, email string) (*entity.Guest, error)
	findAllFn     func(ctx context.Context) ([]*entity.Guest, error)
	updateFn      func(ctx context.Context, guest *entity.Guest) error
	deleteFn      func(ctx context.Context, id int64) error
}

func (m *mockGuestRepo) Create(ctx context.Context, guest *entity.Guest) error {
	if m.createFn != nil {
		return m.createFn(ctx, guest)
	}
	guest.ID = 1
	return nil
}

func (m *mockGuestRepo) FindByID(ctx context.Context, id int64) (*entity.Guest, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockGuestRepo) FindByEmail(ctx context.Context, email string) (*entity.Guest, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockGuestRepo) FindAll(ctx context.Context) ([]*entity.Guest, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *mockGuestRepo) Update(ctx context.Context, guest *entity.Guest) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, guest)
	}
	return nil
}

func (m *mockGuestRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ==================== fixtures ====================

func testDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRoom() *entity.Room {
	return &entity.Room{
		ID:                      1,
		Number:                  "101",
		Type:                    "double",
		Capacity:                2,
		AllowedExtraGuests:      2,
		PricePerNight:           100,
		ExtraGuestPricePerNight: 20,
		Status:                  entity.RoomStatusAvailable,
	}
}

func testGuest() *entity.Guest {
	return &entity.Guest{ID: 1, Name: "Jamie", Email: "jamie@example.com", Phone: "+15550001234"}
}

func newBookingService(booking *mockBookingRepo, room *mockRoomRepo, guest *mockGuestRepo, now time.Time) *bookingService {
	return &bookingService{
		repo: &repository.Repository{
			Booking: booking,
			Room:    room,
			Guest:   guest,
		},
		log:   zap.NewNop(),
		clock: fixedClock{now: now},
	}
}

// ==================== create ====================

func TestCreateBookingComputesPrice(t *testing.T) {
	bookings := &mockBookingRepo{}
	rooms := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Room, error) {
			return testRoom(), nil
		},
	}
	guests := &mockGuestRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Guest, error) {
			return testGuest(), nil
		},
	}

	svc := newBookingService(bookings, rooms, guests, testDate(2025, 11, 1))

	resp, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:    1,
		GuestID:   1,
		CheckIn:   "2025-11-05",
		CheckOut:  "2025-11-07",
		NumGuests: 3,
	})
	require.NoError(t, err)

	// 2 nights, 1 extra guest: 100*2 + 20*2
	assert.Equal(t, 240.0, resp.TotalPrice)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, "2025-11-05", resp.CheckIn)
	assert.Equal(t, "2025-11-07", resp.CheckOut)
	assert.Equal(t, int64(1), resp.ID)
}

func TestCreateBookingNoExtraGuestCharge(t *testing.T) {
	rooms := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Room, error) {
			return testRoom(), nil
		},
	}
	guests := &mockGuestRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Guest, error) {
			return testGuest(), nil
		},
	}

	svc := newBookingService(&mockBookingRepo{}, rooms, guests, testDate(2025, 11, 1))

	resp, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:    1,
		GuestID:   1,
		CheckIn:   "2025-11-05",
		CheckOut:  "2025-11-08",
		NumGuests: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 300.0, resp.TotalPrice)
}

func TestCreateBookingCapacityExceeded(t *testing.T) {
	rooms := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Room, error) {
			return testRoom(), nil
		},
	}
	guests := &mockGuestRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Guest, error) {
			return testGuest(), nil
		},
	}

	svc := newBookingService(&mockBookingRepo{}, rooms, guests, testDate(2025, 11, 1))

	// Capacity 2 plus 2 allowed extras, 5 guests is one too many.
	_, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:    1,
		GuestID:   1,
		CheckIn:   "2025-11-05",
		CheckOut:  "2025-11-07",
		NumGuests: 5,
	})
	assert.ErrorIs(t, err, entity.ErrCapacityExceeded)
}

func TestCreateBookingInvalidDates(t *testing.T) {
	rooms := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Room, error) {
			return testRoom(), nil
		},
	}
	guests := &mockGuestRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Guest, error) {
			return testGuest(), nil
		},
	}

	svc := newBookingService(&mockBookingRepo{}, rooms, guests, testDate(2025, 11, 1))

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{"reversed", "2025-11-07", "2025-11-05"},
		{"equal", "2025-11-05", "2025-11-05"},
		{"past stay", "2025-10-01", "2025-10-03"},
		{"garbage check-in", "not-a-date", "2025-11-07"},
		{"garbage check-out", "2025-11-05", "07/11/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
				RoomID:    1,
				GuestID:   1,
				CheckIn:   tt.checkIn,
				CheckOut:  tt.checkOut,
				NumGuests: 2,
			})
			assert.Error(t, err)
		})
	}
}

func TestCreateBookingGuestNotFound(t *testing.T) {
	svc := newBookingService(&mockBookingRepo{}, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 1))

	_, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:    1,
		GuestID:   42,
		CheckIn:   "2025-11-05",
		CheckOut:  "2025-11-07",
		NumGuests: 2,
	})
	assert.ErrorIs(t, err, entity.ErrGuestNotFound)
}

func TestCreateBookingRoomNotFound(t *testing.T) {
	guests := &mockGuestRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Guest, error) {
			return testGuest(), nil
		},
	}

	svc := newBookingService(&mockBookingRepo{}, &mockRoomRepo{}, guests, testDate(2025, 11, 1))

	_, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:    99,
		GuestID:   1,
		CheckIn:   "2025-11-05",
		CheckOut:  "2025-11-07",
		NumGuests: 2,
	})
	assert.ErrorIs(t, err, entity.ErrRoomNotFound)
}

func TestCreateBookingGuestHasActiveBooking(t *testing.T) {
	bookings := &mockBookingRepo{
		findByGuestFn: func(ctx context.Context, guestID int64, statuses []entity.BookingStatus) ([]*entity.Booking, error) {
			return []*entity.Booking{{ID: 7, GuestID: guestID, Status: entity.BookingStatusConfirmed}}, nil
		},
	}
	guests := &mockGuestRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Guest, error) {
			return testGuest(), nil
		},
	}

	svc := newBookingService(bookings, &mockRoomRepo{}, guests, testDate(2025, 11, 1))

	_, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:    1,
		GuestID:   1,
		CheckIn:   "2025-11-05",
		CheckOut:  "2025-11-07",
		NumGuests: 2,
	})
	assert.ErrorIs(t, err, entity.ErrGuestHasActiveBooking)
}

func TestCreateBookingRoomUnavailable(t *testing.T) {
	bookings := &mockBookingRepo{
		createFn: func(ctx context.Context, b *entity.Booking) error {
			return entity.ErrRoomUnavailable
		},
	}
	rooms := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Room, error) {
			return testRoom(), nil
		},
	}
	guests := &mockGuestRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Guest, error) {
			return testGuest(), nil
		},
	}

	svc := newBookingService(bookings, rooms, guests, testDate(2025, 11, 1))

	_, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:    1,
		GuestID:   1,
		CheckIn:   "2025-11-05",
		CheckOut:  "2025-11-07",
		NumGuests: 2,
	})
	assert.ErrorIs(t, err, entity.ErrRoomUnavailable)
}

func TestCreateBookingRoomUnavailableWrapped(t *testing.T) {
	bookings := &mockBookingRepo{
		createFn: func(ctx context.Context, b *entity.Booking) error {
			return fmt.Errorf("insert booking: %w", entity.ErrRoomUnavailable)
		},
	}
	rooms := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Room, error) {
			return testRoom(), nil
		},
	}
	guests := &mockGuestRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Guest, error) {
			return testGuest(), nil
		},
	}

	svc := newBookingService(bookings, rooms, guests, testDate(2025, 11, 1))

	// A store that wraps the sentinel must still surface it to callers.
	_, err := svc.CreateBooking(context.Background(), &request.CreateBookingRequest{
		RoomID:    1,
		GuestID:   1,
		CheckIn:   "2025-11-05",
		CheckOut:  "2025-11-07",
		NumGuests: 2,
	})
	assert.ErrorIs(t, err, entity.ErrRoomUnavailable)
}

// ==================== update ====================

func TestUpdateBookingSkipsActiveBookingRule(t *testing.T) {
	existing := &entity.Booking{
		ID:       3,
		RoomID:   1,
		GuestID:  1,
		CheckIn:  testDate(2025, 11, 5),
		CheckOut: testDate(2025, 11, 7),
		Status:   entity.BookingStatusConfirmed,
	}

	bookings := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
			return existing, nil
		},
		findByGuestFn: func(ctx context.Context, guestID int64, statuses []entity.BookingStatus) ([]*entity.Booking, error) {
			t.Fatal("active-booking rule must not run on update")
			return nil, nil
		},
	}
	rooms := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Room, error) {
			return testRoom(), nil
		},
	}

	svc := newBookingService(bookings, rooms, &mockGuestRepo{}, testDate(2025, 11, 1))

	resp, err := svc.UpdateBooking(context.Background(), 3, &request.UpdateBookingRequest{
		RoomID:    1,
		GuestID:   1,
		CheckIn:   "2025-11-06",
		CheckOut:  "2025-11-09",
		NumGuests: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 300.0, resp.TotalPrice)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
}

func TestUpdateBookingNotFound(t *testing.T) {
	svc := newBookingService(&mockBookingRepo{}, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 1))

	_, err := svc.UpdateBooking(context.Background(), 404, &request.UpdateBookingRequest{
		RoomID:    1,
		GuestID:   1,
		CheckIn:   "2025-11-05",
		CheckOut:  "2025-11-07",
		NumGuests: 2,
	})
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
}

// ==================== confirm ====================

func TestConfirmBooking(t *testing.T) {
	var roomStatus entity.RoomStatus

	bookings := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
			return &entity.Booking{ID: id, RoomID: 1, Status: entity.BookingStatusPending}, nil
		},
		updateStatusFromFn: func(ctx context.Context, id int64, from []entity.BookingStatus, to entity.BookingStatus) (bool, error) {
			require.Equal(t, []entity.BookingStatus{entity.BookingStatusPending}, from)
			require.Equal(t, entity.BookingStatusConfirmed, to)
			return true, nil
		},
	}
	rooms := &mockRoomRepo{
		updateStatusFn: func(ctx context.Context, id int64, status entity.RoomStatus) error {
			roomStatus = status
			return nil
		},
	}

	svc := newBookingService(bookings, rooms, &mockGuestRepo{}, testDate(2025, 11, 1))

	resp, err := svc.ConfirmBooking(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Status)
	assert.Equal(t, entity.RoomStatusOccupied, roomStatus)
}

func TestConfirmBookingNotPending(t *testing.T) {
	bookings := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
			return &entity.Booking{ID: id, Status: entity.BookingStatusCancelled}, nil
		},
		updateStatusFromFn: func(ctx context.Context, id int64, from []entity.BookingStatus, to entity.BookingStatus) (bool, error) {
			return false, nil
		},
	}

	svc := newBookingService(bookings, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 1))

	_, err := svc.ConfirmBooking(context.Background(), 1)
	assert.ErrorIs(t, err, entity.ErrNotPendingBooking)
}

// ==================== check-in ====================

func TestCheckInBooking(t *testing.T) {
	bookings := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
			return &entity.Booking{
				ID:       id,
				RoomID:   1,
				CheckIn:  testDate(2025, 11, 5),
				CheckOut: testDate(2025, 11, 7),
				Status:   entity.BookingStatusConfirmed,
			}, nil
		},
	}

	svc := newBookingService(bookings, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 5))

	resp, err := svc.CheckInBooking(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCheckedIn, resp.Status)
}

func TestCheckInBookingOnLastDay(t *testing.T) {
	bookings := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
			return &entity.Booking{
				ID:       id,
				RoomID:   1,
				CheckIn:  testDate(2025, 11, 5),
				CheckOut: testDate(2025, 11, 7),
				Status:   entity.BookingStatusConfirmed,
			}, nil
		},
	}

	// Check-out day still allows check-in.
	svc := newBookingService(bookings, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 7))

	_, err := svc.CheckInBooking(context.Background(), 1)
	assert.NoError(t, err)
}

func TestCheckInBookingOutsideDates(t *testing.T) {
	bookings := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
			return &entity.Booking{
				ID:       id,
				RoomID:   1,
				CheckIn:  testDate(2025, 11, 5),
				CheckOut: testDate(2025, 11, 7),
				Status:   entity.BookingStatusConfirmed,
			}, nil
		},
	}

	svc := newBookingService(bookings, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 4))

	_, err := svc.CheckInBooking(context.Background(), 1)
	assert.ErrorIs(t, err, entity.ErrInvalidCheckInDate)
}

func TestCheckInBookingNotConfirmed(t *testing.T) {
	bookings := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
			return &entity.Booking{
				ID:       id,
				CheckIn:  testDate(2025, 11, 5),
				CheckOut: testDate(2025, 11, 7),
				Status:   entity.BookingStatusPending,
			}, nil
		},
	}

	svc := newBookingService(bookings, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 5))

	_, err := svc.CheckInBooking(context.Background(), 1)
	assert.ErrorIs(t, err, entity.ErrNotConfirmedBooking)
}

// ==================== check-out ====================

func TestCheckOutBooking(t *testing.T) {
	var roomStatus entity.RoomStatus

	bookings := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
			return &entity.Booking{ID: id, RoomID: 1, Status: entity.BookingStatusCheckedIn}, nil
		},
	}
	rooms := &mockRoomRepo{
		updateStatusFn: func(ctx context.Context, id int64, status entity.RoomStatus) error {
			roomStatus = status
			return nil
		},
	}

	svc := newBookingService(bookings, rooms, &mockGuestRepo{}, testDate(2025, 11, 7))

	resp, err := svc.CheckOutBooking(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCheckedOut, resp.Status)
	assert.Equal(t, entity.RoomStatusAvailable, roomStatus)
}

func TestCheckOutBookingNotCheckedIn(t *testing.T) {
	bookings := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
			return &entity.Booking{ID: id, Status: entity.BookingStatusConfirmed}, nil
		},
		updateStatusFromFn: func(ctx context.Context, id int64, from []entity.BookingStatus, to entity.BookingStatus) (bool, error) {
			return false, nil
		},
	}

	svc := newBookingService(bookings, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 7))

	_, err := svc.CheckOutBooking(context.Background(), 1)
	assert.ErrorIs(t, err, entity.ErrNotCheckedInBooking)
}

// ==================== cancel ====================

func TestCancelBooking(t *testing.T) {
	var roomStatus entity.RoomStatus

	bookings := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
			return &entity.Booking{
				ID:      id,
				RoomID:  1,
				CheckIn: testDate(2025, 11, 5),
				Status:  entity.BookingStatusConfirmed,
			}, nil
		},
	}
	rooms := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Room, error) {
			room := testRoom()
			room.Status = entity.RoomStatusOccupied
			return room, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status entity.RoomStatus) error {
			roomStatus = status
			return nil
		},
	}

	// 48h before check-in, outside the window.
	svc := newBookingService(bookings, rooms, &mockGuestRepo{}, testDate(2025, 11, 3))

	resp, err := svc.CancelBooking(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, resp.Status)
	assert.Equal(t, entity.RoomStatusAvailable, roomStatus)
}

func TestCancelBookingWithinWindow(t *testing.T) {
	bookings := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
			return &entity.Booking{
				ID:      id,
				CheckIn: testDate(2025, 11, 5),
				Status:  entity.BookingStatusPending,
			}, nil
		},
	}

	// 10h before check-in midnight.
	now := time.Date(2025, 11, 4, 14, 0, 0, 0, time.UTC)
	svc := newBookingService(bookings, &mockRoomRepo{}, &mockGuestRepo{}, now)

	_, err := svc.CancelBooking(context.Background(), 1)
	assert.ErrorIs(t, err, entity.ErrCannotCancelWithinWindow)
}

func TestCancelBookingAfterCheckIn(t *testing.T) {
	for _, status := range []entity.BookingStatus{entity.BookingStatusCheckedIn, entity.BookingStatusCheckedOut} {
		bookings := &mockBookingRepo{
			findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
				return &entity.Booking{ID: id, CheckIn: testDate(2025, 11, 5), Status: status}, nil
			},
		}

		svc := newBookingService(bookings, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 1))

		_, err := svc.CancelBooking(context.Background(), 1)
		assert.ErrorIs(t, err, entity.ErrCannotCancelAfterCheckIn, string(status))
	}
}

func TestCancelBookingLeavesAvailableRoomAlone(t *testing.T) {
	bookings := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
			return &entity.Booking{
				ID:      id,
				RoomID:  1,
				CheckIn: testDate(2025, 11, 5),
				Status:  entity.BookingStatusPending,
			}, nil
		},
	}
	rooms := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Room, error) {
			return testRoom(), nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status entity.RoomStatus) error {
			t.Fatal("room status must not change when it was never occupied")
			return nil
		},
	}

	svc := newBookingService(bookings, rooms, &mockGuestRepo{}, testDate(2025, 11, 1))

	_, err := svc.CancelBooking(context.Background(), 1)
	assert.NoError(t, err)
}

// ==================== admin override ====================

func TestSetBookingStatusInvalidValue(t *testing.T) {
	svc := newBookingService(&mockBookingRepo{}, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 1))

	_, err := svc.SetBookingStatus(context.Background(), 1, "checked-out")
	require.Error(t, err)

	var invalid *entity.InvalidBookingStatusError
	assert.True(t, errors.As(err, &invalid))
}

func TestSetBookingStatusOverride(t *testing.T) {
	var roomStatus entity.RoomStatus

	bookings := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Booking, error) {
			return &entity.Booking{ID: id, RoomID: 1, Status: entity.BookingStatusPending}, nil
		},
	}
	rooms := &mockRoomRepo{
		updateStatusFn: func(ctx context.Context, id int64, status entity.RoomStatus) error {
			roomStatus = status
			return nil
		},
	}

	svc := newBookingService(bookings, rooms, &mockGuestRepo{}, testDate(2025, 11, 1))

	// pending -> checked_out skips the lifecycle; the override allows it.
	resp, err := svc.SetBookingStatus(context.Background(), 1, "CHECKED_OUT")
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCheckedOut, resp.Status)
	assert.Equal(t, entity.RoomStatusAvailable, roomStatus)
}

// ==================== queries ====================

func TestGetGuestBookingsDefaultsToActive(t *testing.T) {
	var gotStatuses []entity.BookingStatus

	bookings := &mockBookingRepo{
		findByGuestFn: func(ctx context.Context, guestID int64, statuses []entity.BookingStatus) ([]*entity.Booking, error) {
			gotStatuses = statuses
			return nil, nil
		},
	}

	svc := newBookingService(bookings, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 1))

	_, err := svc.GetGuestBookings(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.ActiveBookingStatuses, gotStatuses)
}

func TestGetGuestBookingsParsesStatuses(t *testing.T) {
	var gotStatuses []entity.BookingStatus

	bookings := &mockBookingRepo{
		findByGuestFn: func(ctx context.Context, guestID int64, statuses []entity.BookingStatus) ([]*entity.Booking, error) {
			gotStatuses = statuses
			return nil, nil
		},
	}

	svc := newBookingService(bookings, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 1))

	_, err := svc.GetGuestBookings(context.Background(), 1, []string{"CANCELLED", "checked_out"})
	require.NoError(t, err)
	assert.Equal(t, []entity.BookingStatus{entity.BookingStatusCancelled, entity.BookingStatusCheckedOut}, gotStatuses)

	_, err = svc.GetGuestBookings(context.Background(), 1, []string{"bogus"})
	assert.Error(t, err)
}

func TestCheckAvailability(t *testing.T) {
	bookings := &mockBookingRepo{
		findOverlappingFn: func(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeID int64) ([]*entity.Booking, error) {
			assert.Equal(t, int64(0), excludeID)
			return []*entity.Booking{{
				ID:       5,
				RoomID:   roomID,
				CheckIn:  testDate(2025, 11, 6),
				CheckOut: testDate(2025, 11, 8),
				Status:   entity.BookingStatusConfirmed,
			}}, nil
		},
	}
	rooms := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Room, error) {
			return testRoom(), nil
		},
	}

	svc := newBookingService(bookings, rooms, &mockGuestRepo{}, testDate(2025, 11, 1))

	resp, err := svc.CheckAvailability(context.Background(), 1, "2025-11-05", "2025-11-07")
	require.NoError(t, err)
	assert.False(t, resp.Available)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(5), resp.Conflicts[0].ID)
}

func TestCheckAvailabilityFreeRoom(t *testing.T) {
	rooms := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Room, error) {
			return testRoom(), nil
		},
	}

	svc := newBookingService(&mockBookingRepo{}, rooms, &mockGuestRepo{}, testDate(2025, 11, 1))

	resp, err := svc.CheckAvailability(context.Background(), 1, "2025-11-05", "2025-11-07")
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Empty(t, resp.Conflicts)
}

func TestCheckAvailabilityInvalidRange(t *testing.T) {
	svc := newBookingService(&mockBookingRepo{}, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 1))

	_, err := svc.CheckAvailability(context.Background(), 1, "2025-11-07", "2025-11-05")
	assert.ErrorIs(t, err, entity.ErrInvalidDateRange)
}

func TestGetBookingByIDNotFound(t *testing.T) {
	svc := newBookingService(&mockBookingRepo{}, &mockRoomRepo{}, &mockGuestRepo{}, testDate(2025, 11, 1))

	_, err := svc.GetBookingByID(context.Background(), 12)
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
}
