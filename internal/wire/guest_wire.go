package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGuest(
	r chi.Router,
	guestHandler *adaptor.GuestHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (staff) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/guests - register guest
		r.Post("/api/guests", guestHandler.CreateGuest)

		// GET /api/guests - list guests
		r.Get("/api/guests", guestHandler.GetAllGuests)

		// GET /api/guests/{id} - guest details
		r.Get("/api/guests/{id}", guestHandler.GetGuestByID)

		// PUT /api/guests/{id} - update guest
		r.Put("/api/guests/{id}", guestHandler.UpdateGuest)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// DELETE /api/guests/{id} - delete guest (admin)
		r.Delete("/api/guests/{id}", guestHandler.DeleteGuest)
	})
}
