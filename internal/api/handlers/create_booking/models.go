package create_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StaffID     int64   `json:"staffId"`
	ServiceIDs  []int64 `json:"serviceIds"`
	BookingDate string  `json:"bookingDate"` // "2025-06-12"
	StartTime   string  `json:"startTime"`   // "14:00" или RFC3339
	Notes       *string `json:"notes,omitempty"`
}

// ServiceItem услуга в составе записи
type ServiceItem struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Price           int64  `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                   int64         `json:"id"`
	CustomerID           int64         `json:"customerId"`
	StaffID              int64         `json:"staffId"`
	StaffName            string        `json:"staffName"`
	BookingDate          string        `json:"bookingDate"`
	StartTime            time.Time     `json:"startTime"`
	EndTime              time.Time     `json:"endTime"`
	Status               string        `json:"status"`
	Services             []ServiceItem `json:"services"`
	TotalDurationMinutes int           `json:"totalDurationMinutes"`
	TotalAmount          int64         `json:"totalAmount"`
	Notes                *string       `json:"notes,omitempty"`
	CreatedAt            time.Time     `json:"createdAt"`
	UpdatedAt            time.Time     `json:"updatedAt"`
}

// ConflictDetails тело 409: что именно было занято, чтобы клиент мог перезапросить слоты
type ConflictDetails struct {
	StaffID              int64     `json:"staffId"`
	ServiceIDs           []int64   `json:"serviceIds"`
	StartTime            time.Time `json:"startTime"`
	EndTime              time.Time `json:"endTime"`
	ConflictingBookingID int64     `json:"conflictingBookingId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Дата и время "HH:MM" трактуются в часовом поясе салона.
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64, loc *time.Location) (*createBooking.Request, error) {
	bookingDate, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(r.BookingDate), loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := parseStartTime(strings.TrimSpace(r.StartTime), bookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		UserID:      userID,
		StaffID:     r.StaffID,
		ServiceIDs:  r.ServiceIDs,
		BookingDate: bookingDate,
		StartTime:   startTime,
		Notes:       r.Notes,
	}, nil
}

func parseStartTime(s string, day time.Time) (time.Time, error) {
	if strings.Contains(s, "T") {
		return time.Parse(time.RFC3339, s)
	}

	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return time.Time{}, err
	}
	return ts.OnDate(day)
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	services := make([]ServiceItem, len(resp.Services))
	for i, s := range resp.Services {
		services[i] = ServiceItem{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		}
	}

	return &BookingResponse{
		ID:                   resp.ID,
		CustomerID:           resp.CustomerID,
		StaffID:              resp.StaffID,
		StaffName:            resp.StaffName,
		BookingDate:          resp.BookingDate.Format(domain.DateFormat),
		StartTime:            resp.StartTime,
		EndTime:              resp.EndTime,
		Status:               resp.Status,
		Services:             services,
		TotalDurationMinutes: resp.TotalDurationMinutes,
		TotalAmount:          resp.TotalAmount,
		Notes:                resp.Notes,
		CreatedAt:            resp.CreatedAt,
		UpdatedAt:            resp.UpdatedAt,
	}
}

// FromConflictError детали конфликта для ответа 409
func FromConflictError(err *createBooking.ConflictError) *ConflictDetails {
	return &ConflictDetails{
		StaffID:              err.StaffID,
		ServiceIDs:           err.ServiceIDs,
		StartTime:            err.StartTime,
		EndTime:              err.EndTime,
		ConflictingBookingID: err.ConflictingBookingID,
	}
}
