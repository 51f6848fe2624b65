package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetAllBookings handles GET /api/bookings
func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetAllBookings(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get all bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByID handles GET /api/bookings/{id}
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// UpdateBooking handles PUT /api/bookings/{id}
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	var req request.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ConfirmBooking handles POST /api/bookings/{id}/confirm
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "confirm booking", h.service.ConfirmBooking)
}

// CheckInBooking handles POST /api/bookings/{id}/checkin
func (h *BookingHandler) CheckInBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "check in booking", h.service.CheckInBooking)
}

// CheckOutBooking handles POST /api/bookings/{id}/checkout
func (h *BookingHandler) CheckOutBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "check out booking", h.service.CheckOutBooking)
}

// CancelBooking handles DELETE /api/bookings/{id}
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "cancel booking", h.service.CancelBooking)
}

// GetRoomAvailability handles GET /api/rooms/{id}/availability
func (h *BookingHandler) GetRoomAvailability(w http.ResponseWriter, r *http.Request) {
	roomID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid room ID", nil)
		return
	}

	query := r.URL.Query()
	checkIn := query.Get("check_in")
	checkOut := query.Get("check_out")
	if checkIn == "" || checkOut == "" {
		utils.ResponseBadRequest(w, "check_in and check_out query parameters are required", nil)
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), roomID, checkIn, checkOut)
	if err != nil {
		h.handleServiceError(w, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// GetGuestBookings handles GET /api/guests/{id}/bookings
func (h *BookingHandler) GetGuestBookings(w http.ResponseWriter, r *http.Request) {
	guestID, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid guest ID", nil)
		return
	}

	// ?status=pending,confirmed filters, defaults to active statuses
	var statuses []string
	if raw := r.URL.Query().Get("status"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	bookings, err := h.service.GetGuestBookings(r.Context(), guestID, statuses)
	if err != nil {
		h.handleServiceError(w, err, "get guest bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ==================== ADMIN METHODS ====================

// SetBookingStatus handles PUT /api/admin/bookings/{id}/status (admin only)
func (h *BookingHandler) SetBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	var req request.SetBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.SetBookingStatus(r.Context(), id, req.Status)
	if err != nil {
		h.handleServiceError(w, err, "set booking status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// DeleteBooking handles DELETE /api/admin/bookings/{id} (admin only, hard delete)
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	if err := h.service.DeleteBooking(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// transition runs one of the lifecycle operations that only need an ID.
func (h *BookingHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	fn func(ctx context.Context, id int64) (*response.BookingResponse, error),
) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	booking, err := fn(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// handleServiceError maps domain errors to response codes
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var invalidStatus *entity.InvalidBookingStatusError

	switch {
	case errors.Is(err, entity.ErrBookingNotFound),
		errors.Is(err, entity.ErrRoomNotFound),
		errors.Is(err, entity.ErrGuestNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrValidation),
		errors.Is(err, entity.ErrInvalidDateRange),
		errors.Is(err, entity.ErrCapacityExceeded),
		errors.Is(err, entity.ErrInvalidCheckInDate),
		errors.As(err, &invalidStatus):
		h.log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, entity.ErrRoomUnavailable),
		errors.Is(err, entity.ErrGuestHasActiveBooking),
		errors.Is(err, entity.ErrNotPendingBooking),
		errors.Is(err, entity.ErrNotConfirmedBooking),
		errors.Is(err, entity.ErrNotCheckedInBooking),
		errors.Is(err, entity.ErrCannotCancelAfterCheckIn),
		errors.Is(err, entity.ErrCannotCancelWithinWindow):
		h.log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
