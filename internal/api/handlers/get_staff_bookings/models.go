package get_staff_bookings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// День разбирается в часовом поясе салона.
func ToServiceRequest(
	staffID int64,
	actor models.Actor,
	dateStr string,
	statusStr string,
	includeCancelledStr string,
	loc *time.Location,
) (*models.GetStaffBookingsRequest, error) {
	req := &models.GetStaffBookingsRequest{
		Actor:   actor,
		StaffID: staffID,
	}

	if dateStr != "" {
		date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.Date = &date
	}

	if statusStr != "" {
		status := strings.ToUpper(statusStr)
		req.Status = &status
	}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
