package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.BookingDate.IsZero() {
		return fmt.Errorf("%w: bookingDate is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateStartTime проверяет, что начало приходится на дату записи в локации салона и не в прошлом
func validateStartTime(bookingDate, start, now time.Time) error {
	if !domain.IsSameDay(bookingDate, start) {
		return fmt.Errorf("%w: %s is not on %s", ErrInvalidDate,
			start.Format(time.RFC3339), bookingDate.Format(domain.DateFormat))
	}

	if start.Before(now) {
		return ErrBookingInPast
	}

	return nil
}

// isRejection true для ошибок, вызванных содержимым запроса, а не отказом инфраструктуры
func isRejection(err error) bool {
	for _, target := range []error{
		ErrInvalidInput,
		ErrInvalidDate,
		ErrBookingInPast,
		ErrOutsideBusinessHours,
		ErrCustomerNotFound,
		ErrStaffNotFound,
		ErrServiceNotFound,
		ErrStaffUnavailable,
		ErrStaffCannotPerform,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
