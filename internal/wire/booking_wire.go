package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/middleware"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/rooms/{id}/availability?check_in=&check_out= - conflict probe
	r.Get("/api/rooms/{id}/availability", bookingHandler.GetRoomAvailability)

	// ==================== PROTECTED ROUTES (staff) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - create reservation
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings - list reservations
		r.Get("/api/bookings", bookingHandler.GetAllBookings)

		// GET /api/bookings/{id} - reservation details
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		// PUT /api/bookings/{id} - reschedule dates/room/guests
		r.Put("/api/bookings/{id}", bookingHandler.UpdateBooking)

		// Lifecycle transitions
		r.Post("/api/bookings/{id}/confirm", bookingHandler.ConfirmBooking)
		r.Post("/api/bookings/{id}/checkin", bookingHandler.CheckInBooking)
		r.Post("/api/bookings/{id}/checkout", bookingHandler.CheckOutBooking)

		// DELETE /api/bookings/{id} - cancel (policy applies, not a hard delete)
		r.Delete("/api/bookings/{id}", bookingHandler.CancelBooking)

		// GET /api/guests/{id}/bookings - per-guest history, ?status= filter
		r.Get("/api/guests/{id}/bookings", bookingHandler.GetGuestBookings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// PUT /api/admin/bookings/{id}/status - status override
		r.Put("/{id}/status", bookingHandler.SetBookingStatus)

		// DELETE /api/admin/bookings/{id} - hard delete for data correction
		r.Delete("/{id}", bookingHandler.DeleteBooking)
	})
}
