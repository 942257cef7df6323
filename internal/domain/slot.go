package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps проверяет пересечение полуоткрытых интервалов.
// Касание границами (11:00-12:00 и 12:00-13:00) пересечением не считается.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Contains true, если other целиком лежит внутри i
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// BusinessHours часы работы салона, общие для всех мастеров
type BusinessHours struct {
	Open  types.TimeString
	Close types.TimeString
}

// Validate проверяет формат и порядок времени открытия и закрытия
func (h BusinessHours) Validate() error {
	if err := h.Open.Validate(); err != nil {
		return fmt.Errorf("open: %w", err)
	}
	if err := h.Close.Validate(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if !h.Open.IsBefore(h.Close) {
		return fmt.Errorf("open %s must be before close %s", h.Open, h.Close)
	}
	return nil
}

// Window возвращает рабочее окно салона в день day (в локации day)
func (h BusinessHours) Window(day time.Time) (Interval, error) {
	open, err := h.Open.OnDate(day)
	if err != nil {
		return Interval{}, err
	}
	closeAt, err := h.Close.OnDate(day)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: open, End: closeAt}, nil
}

// StartOfDay возвращает полночь дня t в его локации
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayRange возвращает интервал [00:00, 00:00 следующего дня) для дня t
func DayRange(t time.Time) Interval {
	start := StartOfDay(t)
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// IsSameDay проверяет, что два момента относятся к одному календарному дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
