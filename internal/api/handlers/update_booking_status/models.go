package update_booking_status

import (
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(actor models.Actor) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		Actor:  actor,
		Status: strings.ToUpper(strings.TrimSpace(r.Status)),
		Reason: r.Reason,
	}
}

// TransitionDetails тело 409 при недопустимом переходе
type TransitionDetails struct {
	RequestedStatus string `json:"requestedStatus"`
}
