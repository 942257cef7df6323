package domain

// Значения по умолчанию для расписания салона
const (
	DefaultOpenTime           = "10:00"
	DefaultCloseTime          = "22:00"
	DefaultSlotStepMinutes    = 30
	DefaultTimezone           = "Asia/Kolkata"
	MinServiceDurationMinutes = 15
)

// Ограничения бизнес-валидации
const (
	MaxServicesPerBooking       = 10
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxServiceNameLength        = 100
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
