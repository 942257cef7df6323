package staff

import "errors"

var (
	// ErrStaffNotFound возвращается, когда пользователь не является мастером
	ErrStaffNotFound = errors.New("staff: staff not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("staff: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("staff: internal error")
)
