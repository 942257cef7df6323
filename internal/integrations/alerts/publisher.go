package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// ErrPublish возвращается, когда событие не удалось отправить
var ErrPublish = errors.New("alerts: failed to publish")

// KafkaPublisher публикует события о записях в топик администратора
type KafkaPublisher struct {
	writer MessageWriter
	log    Logger
}

// NewKafkaPublisher создает публикатор поверх kafka.Writer
func NewKafkaPublisher(brokers []string, topic string, log Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return NewKafkaPublisherWithWriter(writer, log)
}

// NewKafkaPublisherWithWriter создает публикатор с готовым writer
func NewKafkaPublisherWithWriter(writer MessageWriter, log Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, log: log}
}

// Publish отправляет событие. Ключ сообщения ID записи, чтобы события одной записи шли в одну партицию.
func (p *KafkaPublisher) Publish(ctx context.Context, alert BookingAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("%w: Publish - marshal: %v", ErrPublish, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(alert.BookingID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(alert.EventID)},
			{Key: "event_type", Value: []byte(alert.EventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: Publish - write: %v", ErrPublish, err)
	}

	p.log.Info("Alert published: event_id=%s, booking_id=%d", alert.EventID, alert.BookingID)
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher пишет события в лог, когда брокеры не настроены
type LogPublisher struct {
	log Logger
}

// NewLogPublisher создает публикатор-заглушку
func NewLogPublisher(log Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish пишет событие в лог
func (p *LogPublisher) Publish(_ context.Context, alert BookingAlert) error {
	p.log.Info("New booking alert: booking_id=%d, staff=%s, customer=%s, start=%s, total=%d, admin=%s",
		alert.BookingID, alert.StaffName, alert.CustomerName,
		alert.StartTime.Format("2006-01-02 15:04"), alert.TotalAmount, alert.AdminContact)
	return nil
}

// Close ничего не делает
func (p *LogPublisher) Close() error {
	return nil
}
