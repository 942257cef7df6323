package notifications

import (
	"context"
	"time"
)

// Каналы доставки
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelAlert = "alert"
)

// Результаты доставки для метрик
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
)

// ServiceLine строка услуги в уведомлении
type ServiceLine struct {
	Name            string
	Price           int64
	DurationMinutes int
}

// BookingNotice данные подтвержденной записи для уведомлений.
// Имена уже разрешены, диспетчер не ходит в БД.
type BookingNotice struct {
	BookingID     int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	StaffName     string
	Services      []ServiceLine
	StartTime     time.Time
	EndTime       time.Time
	TotalAmount   int64
}

// ServiceNames названия услуг в порядке записи
func (n BookingNotice) ServiceNames() []string {
	names := make([]string, len(n.Services))
	for i, s := range n.Services {
		names[i] = s.Name
	}
	return names
}

type task struct {
	id        string
	channel   string
	bookingID int64
	send      func(ctx context.Context, taskID string) error
}
