package set_staff_availability

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/staff/models"
)

type StaffService interface {
	SetAvailability(ctx context.Context, userID int64, req *models.SetAvailabilityRequest) (*models.StaffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
