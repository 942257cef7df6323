package get_available_slots

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
)

var (
	errMissingDate     = errors.New("date is required")
	errInvalidDate     = errors.New("invalid date")
	errMissingServices = errors.New("serviceIds is required")
	errInvalidParams   = errors.New("invalid query parameters")
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date                 string       `json:"date"`
	ServiceIDs           []int64      `json:"serviceIds"`
	MissingServiceIDs    []int64      `json:"missingServiceIds,omitempty"`
	TotalDurationMinutes int          `json:"totalDurationMinutes"`
	TotalPrice           int64        `json:"totalPrice"`
	Staff                []StaffSlots `json:"staff"`
}

// StaffSlots свободные слоты мастера
type StaffSlots struct {
	StaffID   int64  `json:"staffId"`
	StaffName string `json:"staffName"`
	Position  string `json:"position,omitempty"`
	Slots     []Slot `json:"slots"`
}

// Slot свободный интервал. StartTime/EndTime в часах салона, StartAt/EndAt абсолютные.
type Slot struct {
	StartTime string    `json:"startTime"` // "14:00"
	EndTime   string    `json:"endTime"`   // "15:15"
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
}

// ToUseCaseRequest разбирает query параметры:
// date (YYYY-MM-DD), serviceIds (1,2 или повтор параметра), staffId, matchAll
func ToUseCaseRequest(query map[string][]string) (*getAvailableSlots.Request, error) {
	dateStr := first(query["date"])
	if dateStr == "" {
		return nil, errMissingDate
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	serviceIDs, err := parseIDList(query["serviceIds"])
	if err != nil {
		return nil, err
	}
	if len(serviceIDs) == 0 {
		return nil, errMissingServices
	}

	req := &getAvailableSlots.Request{
		Date:       date,
		ServiceIDs: serviceIDs,
	}

	if s := first(query["staffId"]); s != "" {
		staffID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: staffId: %v", errInvalidParams, err)
		}
		req.StaffID = &staffID
	}

	if s := first(query["matchAll"]); s != "" {
		matchAll, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%w: matchAll: %v", errInvalidParams, err)
		}
		req.MatchAll = matchAll
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	staff := make([]StaffSlots, len(resp.Staff))
	for i, s := range resp.Staff {
		slots := make([]Slot, len(s.Slots))
		for j, slot := range s.Slots {
			slots[j] = Slot{
				StartTime: slot.StartTime.Format(domain.TimeFormat),
				EndTime:   slot.EndTime.Format(domain.TimeFormat),
				StartAt:   slot.StartTime,
				EndAt:     slot.EndTime,
			}
		}
		staff[i] = StaffSlots{
			StaffID:   s.StaffID,
			StaffName: s.StaffName,
			Position:  s.Position,
			Slots:     slots,
		}
	}

	return &AvailabilityResponse{
		Date:                 resp.Date.Format(domain.DateFormat),
		ServiceIDs:           resp.ServiceIDs,
		MissingServiceIDs:    resp.MissingServiceIDs,
		TotalDurationMinutes: resp.TotalDurationMinutes,
		TotalPrice:           resp.TotalPrice,
		Staff:                staff,
	}
}

func parseIDList(values []string) ([]int64, error) {
	var ids []int64
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: serviceIds: %v", errInvalidParams, err)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
