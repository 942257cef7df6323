package get_available_slots

import "time"

// Request модель запроса свободных слотов
type Request struct {
	Date       time.Time // Календарный день (время игнорируется)
	ServiceIDs []int64   // Выбранные услуги, повторы учитываются в длительности
	StaffID    *int64    // Конкретный мастер (опционально)
	MatchAll   bool      // Мастер должен выполнять все услуги, а не хотя бы одну
}

// Response модель ответа со свободными слотами по мастерам
type Response struct {
	Date                 time.Time
	ServiceIDs           []int64 // Услуги, вошедшие в расчет
	MissingServiceIDs    []int64 // Неизвестные или неактивные услуги
	TotalDurationMinutes int
	TotalPrice           int64
	Staff                []StaffSlots // Все подходящие мастера, у занятых Slots пустой
}

// StaffSlots свободные слоты одного мастера
type StaffSlots struct {
	StaffID   int64
	StaffName string
	Position  string
	Slots     []Slot
}

// Slot свободный интервал [StartTime, EndTime)
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
}
