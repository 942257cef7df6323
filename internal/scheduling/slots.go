package scheduling

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// ErrInvalidStep возвращается при неположительном шаге сетки слотов
var ErrInvalidStep = errors.New("scheduling: slot step must be positive")

// Generator перечисляет кандидатов на запись в пределах часов работы салона.
// Занятость мастеров генератор не учитывает, этим занимается проверка конфликтов.
type Generator struct {
	hours domain.BusinessHours
	step  time.Duration
}

// NewGenerator создает генератор слотов
func NewGenerator(hours domain.BusinessHours, step time.Duration) (*Generator, error) {
	if err := hours.Validate(); err != nil {
		return nil, fmt.Errorf("scheduling: invalid business hours: %w", err)
	}
	if step <= 0 {
		return nil, ErrInvalidStep
	}
	return &Generator{hours: hours, step: step}, nil
}

// Hours возвращает часы работы
func (g *Generator) Hours() domain.BusinessHours {
	return g.hours
}

// Step возвращает шаг сетки
func (g *Generator) Step() time.Duration {
	return g.step
}

// Candidates лениво перечисляет интервалы [open + k*step, +duration) на день day,
// которые заканчиваются не позже закрытия. Последовательность можно обходить повторно,
// каждый обход начинается с открытия. При duration <= 0 или duration длиннее
// рабочего дня последовательность пуста.
func (g *Generator) Candidates(day time.Time, duration time.Duration) iter.Seq[domain.Interval] {
	return func(yield func(domain.Interval) bool) {
		if duration <= 0 {
			return
		}

		window, err := g.hours.Window(day)
		if err != nil {
			return
		}

		for start := window.Start; ; start = start.Add(g.step) {
			end := start.Add(duration)
			if end.After(window.End) {
				return
			}
			if !yield(domain.Interval{Start: start, End: end}) {
				return
			}
		}
	}
}

// Fits проверяет, что интервал целиком помещается в часы работы дня его начала
func (g *Generator) Fits(candidate domain.Interval) bool {
	window, err := g.hours.Window(candidate.Start)
	if err != nil {
		return false
	}
	return candidate.Start.Before(candidate.End) && window.Contains(candidate)
}
