package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByStaffInRange(ctx context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetActiveByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	// LockForBooking читает мастера с блокировкой строки до конца транзакции
	LockForBooking(ctx context.Context, id int64) (*domain.Staff, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Schedule часы работы салона
type Schedule interface {
	Fits(candidate domain.Interval) bool
}

// StaffLocker сериализует запись в календарь одного мастера внутри процесса
type StaffLocker interface {
	Lock(staffID int64) (unlock func())
}

// Notifier очередь уведомлений о подтвержденных записях
type Notifier interface {
	BookingConfirmed(n notifications.BookingNotice)
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	IncBooking(result string)
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
