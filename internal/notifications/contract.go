package notifications

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/integrations/alerts"
	"github.com/m04kA/SMC-SalonService/internal/integrations/smsgateway"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// EmailSender отправка писем
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMSSender отправка SMS
type SMSSender interface {
	Send(ctx context.Context, to, text, reference string) (*smsgateway.SendResponse, error)
}

// AlertPublisher оповещение администратора
type AlertPublisher interface {
	Publish(ctx context.Context, alert alerts.BookingAlert) error
}

// Metrics счетчики доставки
type Metrics interface {
	IncNotification(channel, result string)
	SetQueueDepth(depth int)
}
