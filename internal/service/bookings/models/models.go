package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Actor аутентифицированный пользователь, выполняющий операцию
type Actor struct {
	UserID int64
	Role   domain.UserRole
}

// IsAdmin true для администратора и управляющего салона
func (a Actor) IsAdmin() bool {
	return a.Role.ManagesSalon()
}

// Request модели

// GetMyBookingsRequest запрос бронирований текущего клиента
type GetMyBookingsRequest struct {
	Actor  Actor
	Status *string
}

// GetStaffBookingsRequest запрос бронирований мастера
type GetStaffBookingsRequest struct {
	Actor            Actor
	StaffID          int64
	Date             *time.Time // День в локации салона (опционально)
	Status           *string
	IncludeCancelled bool
}

// CancelBookingRequest запрос клиента на отмену своей записи
type CancelBookingRequest struct {
	Actor  Actor
	Reason *string
}

// UpdateStatusRequest запрос мастера или администратора на смену статуса
type UpdateStatusRequest struct {
	Actor  Actor
	Status string
	Reason *string // Учитывается только при переходе в CANCELLED
}

// Response модели

// ServiceResponse услуга из снимка записи
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64             `json:"id"`
	CustomerID      int64             `json:"customerId"`
	StaffID         int64             `json:"staffId"`
	BookingDate     string            `json:"bookingDate"` // "2025-10-15"
	StartTime       time.Time         `json:"startTime"`
	EndTime         time.Time         `json:"endTime"`
	DurationMinutes int               `json:"durationMinutes"`
	Status          string            `json:"status"`
	Services        []ServiceResponse `json:"services"`
	TotalAmount     int64             `json:"totalAmount"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`

	// AllowedTransitions статусы, в которые запись можно перевести
	AllowedTransitions []string `json:"allowedTransitions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	services := make([]ServiceResponse, len(b.ServiceIDs))
	for i := range b.ServiceIDs {
		services[i] = ServiceResponse{ID: b.ServiceIDs[i]}
		if i < len(b.ServiceNames) {
			services[i].Name = b.ServiceNames[i]
		}
		if i < len(b.ServicePrices) {
			services[i].Price = b.ServicePrices[i]
		}
		if i < len(b.ServiceDurations) {
			services[i].DurationMinutes = b.ServiceDurations[i]
		}
	}

	allowed := b.Status.AllowedTransitions()
	transitions := make([]string, len(allowed))
	for i, s := range allowed {
		transitions[i] = string(s)
	}

	return &BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		StaffID:            b.StaffID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		DurationMinutes:    b.DurationMinutes(),
		Status:             string(b.Status),
		Services:           services,
		TotalAmount:        b.TotalAmount,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		AllowedTransitions: transitions,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
