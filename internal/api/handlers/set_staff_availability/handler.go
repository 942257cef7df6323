package set_staff_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/service/staff"
	"github.com/m04kA/SMC-SalonService/internal/service/staff/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMissingFlag        = "поле isAvailable обязательно"
	msgStaffNotFound      = "профиль мастера не найден"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/staff/me/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /staff/me/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /staff/me/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetAvailability(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("PATCH /staff/me/availability - Invalid input: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgMissingFlag)

		case errors.Is(err, staff.ErrStaffNotFound):
			h.logger.Warn("PATCH /staff/me/availability - Staff not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("PATCH /staff/me/availability - Failed to update: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /staff/me/availability - Availability updated: staff_id=%d, is_available=%t",
		result.ID, result.IsAvailable)
	handlers.RespondJSON(w, http.StatusOK, result)
}
