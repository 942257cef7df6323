package domain

// Staff мастер салона
type Staff struct {
	ID          int64
	UserID      int64
	Name        string // имя из профиля пользователя
	Position    string
	IsAvailable bool
	ServiceIDs  []int64 // услуги, которые мастер выполняет
}

// CanPerform true, если мастер выполняет услугу
func (s *Staff) CanPerform(serviceID int64) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// CanPerformAny true, если мастер выполняет хотя бы одну из услуг
func (s *Staff) CanPerformAny(serviceIDs []int64) bool {
	for _, id := range serviceIDs {
		if s.CanPerform(id) {
			return true
		}
	}
	return false
}

// CanPerformAll true, если мастер выполняет все услуги
func (s *Staff) CanPerformAll(serviceIDs []int64) bool {
	for _, id := range serviceIDs {
		if !s.CanPerform(id) {
			return false
		}
	}
	return len(serviceIDs) > 0
}

// StaffFilter фильтр мастеров для подбора под набор услуг
type StaffFilter struct {
	ServiceIDs    []int64 // пусто = любые услуги
	StaffID       *int64  // конкретный мастер (опционально)
	MatchAll      bool    // мастер должен выполнять все услуги, а не хотя бы одну
	OnlyAvailable bool
}
