package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidStatus значение статуса вне допустимого набора
	ErrInvalidStatus = errors.New("domain: invalid booking status")

	// ErrInvalidTransition переход между статусами запрещен таблицей переходов
	ErrInvalidTransition = errors.New("domain: booking status transition is not allowed")
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusConfirmed  BookingStatus = "CONFIRMED"
	StatusInProgress BookingStatus = "IN_PROGRESS"
	StatusCompleted  BookingStatus = "COMPLETED"
	StatusCancelled  BookingStatus = "CANCELLED"
	StatusNoShow     BookingStatus = "NO_SHOW"
)

// AllStatuses допустимые статусы в порядке жизненного цикла
var AllStatuses = []BookingStatus{
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// transitions таблица допустимых переходов
// COMPLETED, CANCELLED и NO_SHOW терминальные
var transitions = map[BookingStatus][]BookingStatus{
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// ParseBookingStatus проверяет, что строка входит в набор статусов
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	for _, valid := range AllStatuses {
		if status == valid {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// CanTransitionTo сообщает, разрешен ли переход в target
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTransitions возвращает статусы, в которые можно перейти из s
func (s BookingStatus) AllowedTransitions() []BookingStatus {
	allowed := transitions[s]
	out := make([]BookingStatus, len(allowed))
	copy(out, allowed)
	return out
}

// IsTerminal true для статусов без исходящих переходов
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// OccupiesCalendar true, если бронирование с таким статусом занимает время мастера
func (s BookingStatus) OccupiesCalendar() bool {
	return s != StatusCancelled
}

// Booking бронирование услуг салона у конкретного мастера
type Booking struct {
	ID          int64
	CustomerID  int64
	StaffID     int64
	BookingDate time.Time // календарный день в локации салона
	StartTime   time.Time
	EndTime     time.Time // StartTime + сумма длительностей услуг
	Status      BookingStatus

	// Снимок услуг на момент создания, слайсы выровнены по индексу
	ServiceIDs       []int64
	ServiceNames     []string
	ServicePrices    []int64
	ServiceDurations []int
	TotalAmount      int64

	Notes              *string
	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval возвращает занимаемый бронированием интервал [StartTime, EndTime)
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// IsActive true, если бронирование занимает время мастера
func (b *Booking) IsActive() bool {
	return b.Status.OccupiesCalendar()
}

// CanBeCancelled true, если из текущего статуса можно перейти в CANCELLED
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// DurationMinutes длительность бронирования в минутах
func (b *Booking) DurationMinutes() int {
	return int(b.EndTime.Sub(b.StartTime) / time.Minute)
}

// TransitionTo переводит бронирование в target по таблице переходов
func (b *Booking) TransitionTo(target BookingStatus) error {
	if !b.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, target)
	}
	b.Status = target
	return nil
}

// StaffBookingsFilter фильтр бронирований мастера
type StaffBookingsFilter struct {
	StaffID          int64          // Обязательный параметр
	Date             *time.Time     // Конкретный день (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отмененные
}
