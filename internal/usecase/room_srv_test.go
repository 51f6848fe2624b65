package usecase

import (
	"context"
	"errors"
	"testing"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRoomService(rooms *mockRoomRepo) *roomService {
	return &roomService{
		repo:  &repository.Repository{Room: rooms},
		log:   zap.NewNop(),
		clock: fixedClock{now: testDate(2025, 11, 1)},
	}
}

func TestCreateRoom(t *testing.T) {
	svc := newRoomService(&mockRoomRepo{})

	resp, err := svc.CreateRoom(context.Background(), &request.CreateRoomRequest{
		Number:                  "204",
		Type:                    "suite",
		Capacity:                2,
		AllowedExtraGuests:      1,
		PricePerNight:           180,
		ExtraGuestPricePerNight: 35,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, entity.RoomStatusAvailable, resp.Status)
}

func TestCreateRoomRejectsNonPositivePrice(t *testing.T) {
	svc := newRoomService(&mockRoomRepo{})

	_, err := svc.CreateRoom(context.Background(), &request.CreateRoomRequest{
		Number:        "204",
		Type:          "suite",
		Capacity:      2,
		PricePerNight: -10,
	})
	// Validation tags catch this first; the service guard is the backstop.
	assert.Error(t, err)
}

func TestSetRoomStatus(t *testing.T) {
	rooms := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Room, error) {
			return testRoom(), nil
		},
	}
	svc := newRoomService(rooms)

	resp, err := svc.SetRoomStatus(context.Background(), 1, "MAINTENANCE")
	require.NoError(t, err)
	assert.Equal(t, entity.RoomStatusMaintenance, resp.Status)
}

func TestSetRoomStatusInvalidValue(t *testing.T) {
	rooms := &mockRoomRepo{
		findByIDFn: func(ctx context.Context, id int64) (*entity.Room, error) {
			return testRoom(), nil
		},
	}
	svc := newRoomService(rooms)

	_, err := svc.SetRoomStatus(context.Background(), 1, "broken")
	require.Error(t, err)

	var invalid *entity.InvalidRoomStatusError
	assert.True(t, errors.As(err, &invalid))
}

func TestGetRoomByIDNotFound(t *testing.T) {
	svc := newRoomService(&mockRoomRepo{})

	_, err := svc.GetRoomByID(context.Background(), 9)
	assert.ErrorIs(t, err, entity.ErrRoomNotFound)
}
