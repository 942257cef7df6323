package list_staff

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/staff/models"
)

type StaffService interface {
	ListAvailable(ctx context.Context, req *models.ListStaffRequest) (*models.StaffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
