package scheduling

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrEmptySelection возвращается, когда не выбрано ни одной услуги
	ErrEmptySelection = errors.New("scheduling: service selection is empty")

	// ErrNoServices возвращается, когда ни один идентификатор не нашелся среди активных услуг
	ErrNoServices = errors.New("scheduling: no active services matched")
)

// Quote суммарная длительность и стоимость выбранных услуг
type Quote struct {
	Services             []domain.Service // в порядке запроса, повторы сохраняются
	Missing              []int64          // идентификаторы, не найденные среди активных услуг
	TotalDurationMinutes int
	TotalPrice           int64
}

// Duration суммарная длительность как time.Duration
func (q *Quote) Duration() time.Duration {
	return time.Duration(q.TotalDurationMinutes) * time.Minute
}

// ServiceIDs идентификаторы услуг снимка
func (q *Quote) ServiceIDs() []int64 {
	ids := make([]int64, len(q.Services))
	for i, s := range q.Services {
		ids[i] = s.ID
	}
	return ids
}

// Aggregate сопоставляет идентификаторы с активными услугами каталога и суммирует
// длительность и цену. Повторяющийся идентификатор учитывается каждый раз.
// Неактивные и неизвестные идентификаторы попадают в Missing.
func Aggregate(ids []int64, catalog []*domain.Service) (*Quote, error) {
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}

	active := make(map[int64]*domain.Service, len(catalog))
	for _, s := range catalog {
		if s != nil && s.IsActive {
			active[s.ID] = s
		}
	}

	quote := &Quote{Services: make([]domain.Service, 0, len(ids))}
	for _, id := range ids {
		s, ok := active[id]
		if !ok {
			quote.Missing = append(quote.Missing, id)
			continue
		}
		quote.Services = append(quote.Services, *s)
		quote.TotalDurationMinutes += s.DurationMinutes
		quote.TotalPrice += s.Price
	}

	if len(quote.Services) == 0 {
		return nil, ErrNoServices
	}

	return quote, nil
}

// UniqueIDs возвращает идентификаторы без повторов, сохраняя порядок
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
