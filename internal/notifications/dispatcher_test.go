package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/integrations/alerts"
	"github.com/m04kA/SMC-SalonService/internal/integrations/smsgateway"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{counts: make(map[string]int)}
}

func (m *recordingMetrics) IncNotification(channel, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[channel+"/"+result]++
}

func (m *recordingMetrics) SetQueueDepth(int) {}

func (m *recordingMetrics) get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

type fakeEmail struct {
	mu       sync.Mutex
	subjects []string
	bodies   []string
	err      error
	calls    int
	block    chan struct{}
}

func (f *fakeEmail) Send(ctx context.Context, _, subject, body string) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}

type fakeSMS struct {
	mu    sync.Mutex
	texts []string
	refs  []string
}

func (f *fakeSMS) Send(_ context.Context, _, text, reference string) (*smsgateway.SendResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	f.refs = append(f.refs, reference)
	return &smsgateway.SendResponse{MessageID: "m"}, nil
}

type fakeAlerts struct {
	mu     sync.Mutex
	alerts []alerts.BookingAlert
}

func (f *fakeAlerts) Publish(_ context.Context, alert alerts.BookingAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, alert)
	return nil
}

func testNotice() BookingNotice {
	loc := time.FixedZone("IST", 5*3600+1800)
	start := time.Date(2025, 6, 12, 14, 0, 0, 0, loc)
	return BookingNotice{
		BookingID:     42,
		CustomerName:  "Priya",
		CustomerEmail: "priya@example.com",
		CustomerPhone: "+919800000000",
		StaffName:     "Anita",
		Services: []ServiceLine{
			{Name: "Hair Cut (Female)", Price: 350, DurationMinutes: 30},
			{Name: "Silver Facial", Price: 1200, DurationMinutes: 45},
		},
		StartTime:   start,
		EndTime:     start.Add(75 * time.Minute),
		TotalAmount: 1550,
	}
}

func testConfig() Config {
	return Config{
		Workers:      2,
		QueueSize:    16,
		SendTimeout:  time.Second,
		MaxAttempts:  2,
		RetryDelay:   time.Millisecond,
		SalonName:    "Looks",
		AdminContact: "admin@looks.example",
		Location:     time.FixedZone("IST", 5*3600+1800),
	}
}

func TestDispatcher_BookingConfirmed_FansOut(t *testing.T) {
	email, sms, alertSink := &fakeEmail{}, &fakeSMS{}, &fakeAlerts{}
	metrics := newRecordingMetrics()

	d := NewDispatcher(testConfig(), email, sms, alertSink, nopLogger{}, metrics)
	d.Start()
	d.BookingConfirmed(testNotice())
	require.NoError(t, d.Stop(context.Background()))

	require.Len(t, email.subjects, 1)
	assert.Equal(t, "Booking Confirmation - Looks", email.subjects[0])
	assert.Contains(t, email.bodies[0], "14:00 - 15:15")
	assert.Contains(t, email.bodies[0], "₹1,550")

	require.Len(t, sms.texts, 1)
	assert.Contains(t, sms.texts[0], "Hair Cut (Female), Silver Facial")
	assert.NotEmpty(t, sms.refs[0])

	require.Len(t, alertSink.alerts, 1)
	alert := alertSink.alerts[0]
	assert.Equal(t, alerts.EventBookingConfirmed, alert.EventType)
	assert.Equal(t, int64(42), alert.BookingID)
	assert.Equal(t, "admin@looks.example", alert.AdminContact)

	assert.Equal(t, 1, metrics.get("email/sent"))
	assert.Equal(t, 1, metrics.get("sms/sent"))
	assert.Equal(t, 1, metrics.get("alert/sent"))
}

func TestDispatcher_SkipsMissingContactsAndChannels(t *testing.T) {
	email := &fakeEmail{}
	metrics := newRecordingMetrics()

	d := NewDispatcher(testConfig(), email, nil, nil, nopLogger{}, metrics)
	d.Start()

	notice := testNotice()
	notice.CustomerEmail = ""
	d.BookingConfirmed(notice)
	require.NoError(t, d.Stop(context.Background()))

	assert.Equal(t, 0, email.calls)
	assert.Equal(t, 0, metrics.get("email/sent"))
}

func TestDispatcher_FailureIsCountedNotPropagated(t *testing.T) {
	email := &fakeEmail{err: errors.New("smtp down")}
	metrics := newRecordingMetrics()

	d := NewDispatcher(testConfig(), email, nil, nil, nopLogger{}, metrics)
	d.Start()
	d.BookingConfirmed(testNotice())
	require.NoError(t, d.Stop(context.Background()))

	assert.Equal(t, 2, email.calls, "one retry")
	assert.Equal(t, 1, metrics.get("email/failed"))
}

func TestDispatcher_FullQueueDropsWithoutBlocking(t *testing.T) {
	cfg := testConfig()
	cfg.QueueSize = 1
	email := &fakeEmail{}
	metrics := newRecordingMetrics()

	// воркеры не запущены: первая задача занимает буфер, остальные отбрасываются
	d := NewDispatcher(cfg, email, nil, nil, nopLogger{}, metrics)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			d.BookingConfirmed(testNotice())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("BookingConfirmed blocked on a full queue")
	}

	assert.Equal(t, 4, metrics.get("email/dropped"))
	require.NoError(t, d.Stop(context.Background()))
}

func TestDispatcher_EnqueueAfterStop(t *testing.T) {
	metrics := newRecordingMetrics()
	d := NewDispatcher(testConfig(), &fakeEmail{}, nil, nil, nopLogger{}, metrics)
	d.Start()
	require.NoError(t, d.Stop(context.Background()))

	d.BookingConfirmed(testNotice())
	assert.Equal(t, 1, metrics.get("email/dropped"))

	// повторный Stop безопасен
	require.NoError(t, d.Stop(context.Background()))
}

func TestDispatcher_StopDeadlineCancelsInFlight(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 1
	cfg.SendTimeout = time.Minute
	cfg.MaxAttempts = 1
	email := &fakeEmail{block: make(chan struct{})}
	metrics := newRecordingMetrics()

	d := NewDispatcher(cfg, email, nil, nil, nopLogger{}, metrics)
	d.Start()
	d.BookingConfirmed(testNotice())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := d.Stop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, metrics.get("email/failed"))
}
