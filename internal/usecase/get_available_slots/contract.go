package get_available_slots

import (
	"context"
	"iter"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetActiveByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	List(ctx context.Context, filter domain.StaffFilter) ([]*domain.Staff, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByStaffInRange получает неотмененные бронирования мастеров, пересекающие [from, to)
	GetActiveByStaffInRange(ctx context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Booking, error)
}

// SlotGenerator генератор кандидатов на запись
type SlotGenerator interface {
	Hours() domain.BusinessHours
	Candidates(day time.Time, duration time.Duration) iter.Seq[domain.Interval]
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
