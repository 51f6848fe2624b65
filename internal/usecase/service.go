package usecase

import (
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Room    RoomService
	Guest   GuestService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo.User, log),
		Room:    NewRoomService(repo, log),
		Guest:   NewGuestService(repo, log),
		Booking: NewBookingService(repo, log),
	}
}
