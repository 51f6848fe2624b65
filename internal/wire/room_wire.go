package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRoom(
	r chi.Router,
	roomHandler *adaptor.RoomHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/rooms - list rooms (public)
	r.Get("/api/rooms", roomHandler.GetAllRooms)

	// GET /api/rooms/{id} - room details (public)
	r.Get("/api/rooms/{id}", roomHandler.GetRoomByID)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// POST /api/rooms - create room (admin)
		r.Post("/api/rooms", roomHandler.CreateRoom)

		// PUT /api/rooms/{id} - update room (admin)
		r.Put("/api/rooms/{id}", roomHandler.UpdateRoom)

		// PUT /api/rooms/{id}/status - set room status (admin)
		r.Put("/api/rooms/{id}/status", roomHandler.SetRoomStatus)

		// DELETE /api/rooms/{id} - delete room (admin)
		r.Delete("/api/rooms/{id}", roomHandler.DeleteRoom)
	})
}
