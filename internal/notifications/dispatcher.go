package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SalonService/internal/integrations/alerts"
)

// Config параметры диспетчера
type Config struct {
	Workers       int
	QueueSize     int
	RatePerSecond float64 // 0 = без ограничения
	Burst         int
	SendTimeout   time.Duration
	MaxAttempts   int
	RetryDelay    time.Duration
	SalonName     string
	AdminContact  string
	Location      *time.Location
}

func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 64
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = 10 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 1
	}
	if c.Location == nil {
		c.Location = time.UTC
	}
	if c.SalonName == "" {
		c.SalonName = "Salon"
	}
}

// Dispatcher очередь исходящих уведомлений.
// Постановка в очередь никогда не блокирует вызывающего: при переполнении задача отбрасывается.
// Ошибки доставки логируются и считаются в метриках, наружу не возвращаются.
type Dispatcher struct {
	cfg     Config
	email   EmailSender
	sms     SMSSender
	alerts  AlertPublisher
	limiter *rate.Limiter
	log     Logger
	metrics Metrics
	now     func() time.Time

	queue chan task

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// NewDispatcher создает диспетчер. Любой из каналов может быть nil, тогда он пропускается.
func NewDispatcher(
	cfg Config,
	email EmailSender,
	sms SMSSender,
	alertPublisher AlertPublisher,
	log Logger,
	metrics Metrics,
) *Dispatcher {
	cfg.applyDefaults()

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		cfg:     cfg,
		email:   email,
		sms:     sms,
		alerts:  alertPublisher,
		limiter: rate.NewLimiter(limit, cfg.Burst),
		log:     log,
		metrics: metrics,
		now:     time.Now,
		queue:   make(chan task, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start запускает воркеры
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.closed {
		return
	}
	d.started = true

	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	d.log.Info("Notification dispatcher started: workers=%d, queue_size=%d", d.cfg.Workers, d.cfg.QueueSize)
}

// Stop перестает принимать задачи и дожидается, пока воркеры доставят очередь.
// Если ctx истек раньше, незавершенные отправки отменяются.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		d.cancel()
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.log.Info("Notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		d.log.Warn("Notification dispatcher stopped before queue was drained: %v", ctx.Err())
		return ctx.Err()
	}
}

// BookingConfirmed ставит в очередь подтверждение клиенту (email, SMS) и оповещение администратору
func (d *Dispatcher) BookingConfirmed(n BookingNotice) {
	if d.email != nil && n.CustomerEmail != "" {
		subject, body := confirmationEmail(d.cfg.SalonName, n, d.cfg.Location)
		to := n.CustomerEmail
		d.enqueue(ChannelEmail, n.BookingID, func(ctx context.Context, _ string) error {
			return d.email.Send(ctx, to, subject, body)
		})
	}

	if d.sms != nil && n.CustomerPhone != "" {
		text := confirmationSMS(d.cfg.SalonName, n, d.cfg.Location)
		to := n.CustomerPhone
		d.enqueue(ChannelSMS, n.BookingID, func(ctx context.Context, taskID string) error {
			_, err := d.sms.Send(ctx, to, text, taskID)
			return err
		})
	}

	if d.alerts != nil {
		alert := alerts.BookingAlert{
			EventID:       uuid.NewString(),
			EventType:     alerts.EventBookingConfirmed,
			BookingID:     n.BookingID,
			CustomerName:  n.CustomerName,
			CustomerPhone: n.CustomerPhone,
			StaffName:     n.StaffName,
			Services:      n.ServiceNames(),
			StartTime:     n.StartTime,
			EndTime:       n.EndTime,
			TotalAmount:   n.TotalAmount,
			AdminContact:  d.cfg.AdminContact,
			OccurredAt:    d.now(),
		}
		d.enqueue(ChannelAlert, n.BookingID, func(ctx context.Context, _ string) error {
			return d.alerts.Publish(ctx, alert)
		})
	}
}

// enqueue кладет задачу в очередь без ожидания. Возвращает false, если задача отброшена.
func (d *Dispatcher) enqueue(channel string, bookingID int64, send func(ctx context.Context, taskID string) error) bool {
	t := task{
		id:        uuid.NewString(),
		channel:   channel,
		bookingID: bookingID,
		send:      send,
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(t, "dispatcher stopped")
		return false
	}

	select {
	case d.queue <- t:
		d.metrics.SetQueueDepth(len(d.queue))
		return true
	default:
		d.drop(t, "queue is full")
		return false
	}
}

func (d *Dispatcher) drop(t task, reason string) {
	d.metrics.IncNotification(t.channel, ResultDropped)
	d.log.Warn("Notification dropped: task_id=%s, channel=%s, booking_id=%d, reason=%s",
		t.id, t.channel, t.bookingID, reason)
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for t := range d.queue {
		d.metrics.SetQueueDepth(len(d.queue))
		d.process(t)
	}
}

func (d *Dispatcher) process(t task) {
	if err := d.limiter.Wait(d.ctx); err != nil {
		d.drop(t, err.Error())
		return
	}

	var lastErr error
	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		sendCtx, cancel := context.WithTimeout(d.ctx, d.cfg.SendTimeout)
		lastErr = t.send(sendCtx, t.id)
		cancel()

		if lastErr == nil {
			d.metrics.IncNotification(t.channel, ResultSent)
			d.log.Info("Notification sent: task_id=%s, channel=%s, booking_id=%d, attempt=%d",
				t.id, t.channel, t.bookingID, attempt)
			return
		}

		if attempt == d.cfg.MaxAttempts {
			break
		}

		d.log.Warn("Notification attempt failed: task_id=%s, channel=%s, attempt=%d, error=%v",
			t.id, t.channel, attempt, lastErr)

		select {
		case <-time.After(d.cfg.RetryDelay):
		case <-d.ctx.Done():
			d.fail(t, lastErr)
			return
		}
	}

	d.fail(t, lastErr)
}

func (d *Dispatcher) fail(t task, err error) {
	d.metrics.IncNotification(t.channel, ResultFailed)
	d.log.Error("Notification failed: task_id=%s, channel=%s, booking_id=%d, error=%v",
		t.id, t.channel, t.bookingID, err)
}
