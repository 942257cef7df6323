package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrCustomerNotFound возвращается, когда у пользователя нет профиля клиента
	ErrCustomerNotFound = errors.New("bookings: customer profile not found")

	// ErrStaffNotFound возвращается, когда у пользователя нет профиля мастера
	ErrStaffNotFound = errors.New("bookings: staff profile not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrCannotCancel возвращается, когда клиент пытается отменить неподтвержденную запись
	ErrCannotCancel = errors.New("bookings: only confirmed booking can be cancelled")

	// ErrInvalidTransition возвращается, когда переход статуса запрещен
	ErrInvalidTransition = errors.New("bookings: status transition is not allowed")

	// ErrStatusConflict возвращается, когда статус изменили параллельно
	ErrStatusConflict = errors.New("bookings: booking status was changed concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
