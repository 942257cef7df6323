package scheduling

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// FirstConflict возвращает первое активное бронирование, пересекающееся с candidate.
// Отмененные бронирования пропускаются.
func FirstConflict(candidate domain.Interval, bookings []*domain.Booking) *domain.Booking {
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		if candidate.Overlaps(b.Interval()) {
			return b
		}
	}
	return nil
}

// HasConflict проверяет, пересекается ли candidate хотя бы с одним активным бронированием
func HasConflict(candidate domain.Interval, bookings []*domain.Booking) bool {
	return FirstConflict(candidate, bookings) != nil
}

// Available true, если candidate можно занять
func Available(candidate domain.Interval, bookings []*domain.Booking) bool {
	return !HasConflict(candidate, bookings)
}

// FreeSlots фильтрует кандидатов, оставляя свободные и начинающиеся не раньше notBefore.
// Нулевой notBefore отключает фильтр по времени.
func FreeSlots(candidates iter.Seq[domain.Interval], bookings []*domain.Booking, notBefore time.Time) iter.Seq[domain.Interval] {
	return func(yield func(domain.Interval) bool) {
		for c := range candidates {
			if !notBefore.IsZero() && c.Start.Before(notBefore) {
				continue
			}
			if HasConflict(c, bookings) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}
