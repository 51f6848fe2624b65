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

type GuestService interface {
	CreateGuest(ctx context.Context, req *request.CreateGuestRequest) (*response.GuestResponse, error)
	GetGuestByID(ctx context.Context, id int64) (*response.GuestResponse, error)
	GetAllGuests(ctx context.Context) ([]response.GuestResponse, error)
	UpdateGuest(ctx context.Context, id int64, req *request.UpdateGuestRequest) (*response.GuestResponse, error)
	DeleteGuest(ctx context.Context, id int64) error
}

type guestService struct {
	repo  *repository.Repository
	log   *zap.Logger
	clock Clock
}

func NewGuestService(repo *repository.Repository, log *zap.Logger) GuestService {
	return &guestService{
		repo:  repo,
		log:   log.With(zap.String("service", "guest")),
		clock: systemClock{},
	}
}

func (s *guestService) CreateGuest(ctx context.Context, req *request.CreateGuestRequest) (*response.GuestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create guest validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Guest.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check guest email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", entity.ErrValidation)
	}

	now := s.clock.Now()
	guest := &entity.Guest{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Guest.Create(ctx, guest); err != nil {
		return nil, fmt.Errorf("create guest: %w", err)
	}

	s.log.Info("Guest created",
		zap.Int64("guest_id", guest.ID),
		zap.String("email", guest.Email),
	)

	resp := response.GuestToResponse(guest)
	return &resp, nil
}

func (s *guestService) GetGuestByID(ctx context.Context, id int64) (*response.GuestResponse, error) {
	guest, err := s.repo.Guest.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find guest %d: %w", id, err)
	}
	if guest == nil {
		return nil, entity.ErrGuestNotFound
	}

	resp := response.GuestToResponse(guest)
	return &resp, nil
}

func (s *guestService) GetAllGuests(ctx context.Context) ([]response.GuestResponse, error) {
	guests, err := s.repo.Guest.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all guests: %w", err)
	}

	return response.GuestsToResponse(guests), nil
}

func (s *guestService) UpdateGuest(ctx context.Context, id int64, req *request.UpdateGuestRequest) (*response.GuestResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update guest validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", entity.ErrValidation, utils.FormatValidationErrors(errs))
	}

	guest, err := s.repo.Guest.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find guest %d: %w", id, err)
	}
	if guest == nil {
		return nil, entity.ErrGuestNotFound
	}

	guest.Name = req.Name
	guest.Email = req.Email
	guest.Phone = req.Phone
	guest.UpdatedAt = s.clock.Now()

	if err := s.repo.Guest.Update(ctx, guest); err != nil {
		return nil, fmt.Errorf("update guest %d: %w", id, err)
	}

	s.log.Info("Guest updated", zap.Int64("guest_id", id))

	resp := response.GuestToResponse(guest)
	return &resp, nil
}

func (s *guestService) DeleteGuest(ctx context.Context, id int64) error {
	if err := s.repo.Guest.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrGuestNotFound) {
			return err
		}
		return fmt.Errorf("delete guest %d: %w", id, err)
	}

	return nil
}
