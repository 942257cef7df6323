package list_staff

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/service/staff"
	"github.com/m04kA/SMC-SalonService/internal/service/staff/models"
)

const (
	msgInvalidServiceIDs = "некорректный список услуг"
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

// Handle GET /api/v1/staff
// Query params: serviceIds (опционально, через запятую)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListStaffRequest{}

	if raw := r.URL.Query().Get("serviceIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				h.logger.Warn("GET /staff - Invalid service IDs: %v", err)
				handlers.RespondBadRequest(w, msgInvalidServiceIDs)
				return
			}
			req.ServiceIDs = append(req.ServiceIDs, id)
		}
	}

	result, err := h.service.ListAvailable(r.Context(), req)
	if err != nil {
		if errors.Is(err, staff.ErrInvalidInput) {
			h.logger.Warn("GET /staff - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceIDs)
			return
		}
		h.logger.Error("GET /staff - Failed to list staff: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /staff - Staff retrieved successfully: count=%d", len(result.Staff))
	handlers.RespondJSON(w, http.StatusOK, result)
}
