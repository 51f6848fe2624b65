package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type GuestHandler struct {
	service usecase.GuestService
	log     *zap.Logger
}

func NewGuestHandler(service usecase.GuestService, log *zap.Logger) *GuestHandler {
	return &GuestHandler{
		service: service,
		log:     log.With(zap.String("handler", "guest")),
	}
}

// CreateGuest handles POST /api/guests
func (h *GuestHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	guest, err := h.service.CreateGuest(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create guest")
		return
	}

	utils.ResponseCreated(w, "success", guest)
}

// GetAllGuests handles GET /api/guests
func (h *GuestHandler) GetAllGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.service.GetAllGuests(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get all guests")
		return
	}

	utils.ResponseSuccess(w, "success", guests)
}

// GetGuestByID handles GET /api/guests/{id}
func (h *GuestHandler) GetGuestByID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid guest ID", nil)
		return
	}

	guest, err := h.service.GetGuestByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get guest by ID")
		return
	}

	utils.ResponseSuccess(w, "success", guest)
}

// UpdateGuest handles PUT /api/guests/{id}
func (h *GuestHandler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid guest ID", nil)
		return
	}

	var req request.UpdateGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	guest, err := h.service.UpdateGuest(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update guest")
		return
	}

	utils.ResponseSuccess(w, "success", guest)
}

// DeleteGuest handles DELETE /api/guests/{id} (admin only)
func (h *GuestHandler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid guest ID", nil)
		return
	}

	if err := h.service.DeleteGuest(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete guest")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError maps domain errors to response codes
func (h *GuestHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrGuestNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrValidation):
		h.log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
