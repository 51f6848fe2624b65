package adaptor

import (
	"hotel-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Room    *RoomHandler
	Guest   *GuestHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Room:    NewRoomHandler(service.Room, log),
		Guest:   NewGuestHandler(service.Guest, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}
