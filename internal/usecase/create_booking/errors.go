package create_booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCustomerNotFound возвращается, когда у пользователя нет профиля клиента
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("create_booking: staff not found")

	// ErrServiceNotFound возвращается, когда хотя бы одна услуга не найдена среди активных
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrStaffUnavailable возвращается, когда мастер не принимает записи
	ErrStaffUnavailable = errors.New("create_booking: staff is not available")

	// ErrStaffCannotPerform возвращается, когда мастер не выполняет одну из выбранных услуг
	ErrStaffCannotPerform = errors.New("create_booking: staff cannot perform selected services")

	// ErrInvalidDate возвращается, когда время начала не относится к дате бронирования
	ErrInvalidDate = errors.New("create_booking: start time does not match booking date")

	// ErrBookingInPast возвращается при попытке записаться на прошедшее время
	ErrBookingInPast = errors.New("create_booking: start time is in the past")

	// ErrOutsideBusinessHours возвращается, когда запись не помещается в часы работы салона
	ErrOutsideBusinessHours = errors.New("create_booking: appointment is outside business hours")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с другой записью мастера
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ConflictError отказ из-за пересечения с другой записью.
// Содержит все, что нужно клиенту для повторного запроса свободных слотов.
type ConflictError struct {
	StaffID    int64
	ServiceIDs []int64
	StartTime  time.Time
	EndTime    time.Time

	// ConflictingBookingID 0, если пересечение обнаружила база, а не проверка в транзакции
	ConflictingBookingID int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: staff=%d, interval=[%s, %s)",
		ErrSlotNotAvailable, e.StaffID, e.StartTime.Format(time.RFC3339), e.EndTime.Format(time.RFC3339))
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrSlotNotAvailable)
func (e *ConflictError) Unwrap() error {
	return ErrSlotNotAvailable
}
