package alerts

import "time"

// EventBookingConfirmed тип события о новой записи
const EventBookingConfirmed = "booking.confirmed"

// BookingAlert событие для администратора салона
type BookingAlert struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	BookingID     int64     `json:"booking_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	StaffName     string    `json:"staff_name"`
	Services      []string  `json:"services"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	TotalAmount   int64     `json:"total_amount"`
	AdminContact  string    `json:"admin_contact,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
