package usecase

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type RoomService interface {
	CreateRoom(ctx context.Context, req *request.CreateRoomRequest) (*response.RoomResponse, error)
	GetRoomByID(ctx context.Context, id int64) (*response.RoomResponse, error)
	GetAllRooms(ctx context.Context) ([]response.RoomResponse, error)
	UpdateRoom(ctx context.Context, id int64, req *request.UpdateRoomRequest) (*response.RoomResponse, error)
	SetRoomStatus(ctx context.Context, id int64, status string) (*response.RoomResponse, error)
	DeleteRoom(ctx context.Context, id int64) error
}

type roomService struct {
	repo  *repository.Repository
	log   *zap.Logger
	clock Clock
}

func NewRoomService(repo *repository.Repository, log *zap.Logger) RoomService {
	return &roomService{
		repo:  repo,
		log:   log.With(zap.String("service", "room")),
		clock: systemClock{},
	}
}

func (s *roomService) CreateRoom(ctx context.Context, req *request.CreateRoomRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create room validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	if req.PricePerNight <= 0 {
		return nil, entity.ErrInvalidRoomPrice
	}

	now := s.clock.Now()
	room := &entity.Room{
		Number:                  req.Number,
		Type:                    req.Type,
		Capacity:                req.Capacity,
		AllowedExtraGuests:      req.AllowedExtraGuests,
		PricePerNight:           req.PricePerNight,
		ExtraGuestPricePerNight: req.ExtraGuestPricePerNight,
		Status:                  entity.RoomStatusAvailable,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := s.repo.Room.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.log.Info("Room created",
		zap.Int64("room_id", room.ID),
		zap.String("number", room.Number),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) GetRoomByID(ctx context.Context, id int64) (*response.RoomResponse, error) {
	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find room %d: %w", id, err)
	}
	if room == nil {
		return nil, entity.ErrRoomNotFound
	}

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) GetAllRooms(ctx context.Context) ([]response.RoomResponse, error) {
	rooms, err := s.repo.Room.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all rooms: %w", err)
	}

	return response.RoomsToResponse(rooms), nil
}

func (s *roomService) UpdateRoom(ctx context.Context, id int64, req *request.UpdateRoomRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update room validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	if req.PricePerNight <= 0 {
		return nil, entity.ErrInvalidRoomPrice
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find room %d: %w", id, err)
	}
	if room == nil {
		return nil, entity.ErrRoomNotFound
	}

	room.Number = req.Number
	room.Type = req.Type
	room.Capacity = req.Capacity
	room.AllowedExtraGuests = req.AllowedExtraGuests
	room.PricePerNight = req.PricePerNight
	room.ExtraGuestPricePerNight = req.ExtraGuestPricePerNight
	room.UpdatedAt = s.clock.Now()

	if err := s.repo.Room.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room %d: %w", id, err)
	}

	s.log.Info("Room updated", zap.Int64("room_id", id))

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) SetRoomStatus(ctx context.Context, id int64, status string) (*response.RoomResponse, error) {
	target, err := entity.ParseRoomStatus(status)
	if err != nil {
		s.log.Warn("Invalid room status", zap.String("status", status))
		return nil, err
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find room %d: %w", id, err)
	}
	if room == nil {
		return nil, entity.ErrRoomNotFound
	}

	if err := s.repo.Room.UpdateStatus(ctx, id, target); err != nil {
		return nil, fmt.Errorf("set room %d status: %w", id, err)
	}

	s.log.Info("Room status set",
		zap.Int64("room_id", id),
		zap.String("status", string(target)),
	)

	room.Status = target
	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.repo.Room.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrRoomNotFound) {
			return err
		}
		return fmt.Errorf("delete room %d: %w", id, err)
	}

	return nil
}
