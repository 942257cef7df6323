package cancel_booking

import (
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model, тело необязательно
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(actor models.Actor) *models.CancelBookingRequest {
	req := &models.CancelBookingRequest{Actor: actor}

	if r.CancellationReason != nil {
		if reason := strings.TrimSpace(*r.CancellationReason); reason != "" {
			req.Reason = &reason
		}
	}

	return req
}
