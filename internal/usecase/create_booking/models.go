package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID      int64     // ID пользователя из заголовка авторизации
	StaffID     int64     // ID мастера
	ServiceIDs  []int64   // Выбранные услуги в порядке выполнения
	BookingDate time.Time // Календарный день записи
	StartTime   time.Time // Абсолютное время начала
	Notes       *string   // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	CustomerID  int64
	StaffID     int64
	StaffName   string
	BookingDate time.Time
	StartTime   time.Time
	EndTime     time.Time
	Status      string

	// Снимок услуг на момент записи
	Services             []ServiceItem
	TotalDurationMinutes int
	TotalAmount          int64

	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceItem услуга в составе записи
type ServiceItem struct {
	ID              int64
	Name            string
	Price           int64
	DurationMinutes int
}

// Исходы создания записи для метрик
const (
	resultCreated  = "created"
	resultConflict = "conflict"
	resultRejected = "rejected"
	resultFailed   = "failed"
)
