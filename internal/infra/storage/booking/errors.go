package booking

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrOverlap возвращается, когда у мастера уже есть активное бронирование на пересекающийся интервал
	ErrOverlap = errors.New("booking.repository: overlapping booking exists")

	// ErrStatusChanged возвращается, когда статус изменился между чтением и обновлением
	ErrStatusChanged = errors.New("booking.repository: booking status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// Коды ошибок PostgreSQL, означающие конкурентную запись в календарь мастера
const (
	pgExclusionViolation   = "23P01" // EXCLUDE constraint bookings_no_overlap
	pgSerializationFailure = "40001" // SERIALIZABLE транзакция проиграла гонку
)

// IsConflict определяет, что ошибка вызвана пересечением бронирований
// (проверка в транзакции, exclusion constraint или конфликт сериализации)
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrOverlap) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgExclusionViolation || pqErr.Code == pgSerializationFailure
	}
	return false
}
