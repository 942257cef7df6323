package models

import "github.com/m04kA/SMC-SalonService/internal/domain"

// ListStaffRequest фильтр списка мастеров
type ListStaffRequest struct {
	ServiceIDs []int64
}

// SetAvailabilityRequest запрос мастера на включение/выключение приема записей
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable"`
}

// StaffResponse мастер в ответе API
type StaffResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	IsAvailable bool    `json:"isAvailable"`
	ServiceIDs  []int64 `json:"serviceIds"`
}

// StaffListResponse список мастеров
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// FromDomainStaff конвертирует доменную модель в ответ API
func FromDomainStaff(s *domain.Staff) *StaffResponse {
	serviceIDs := s.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []int64{}
	}

	return &StaffResponse{
		ID:          s.ID,
		Name:        s.Name,
		Position:    s.Position,
		IsAvailable: s.IsAvailable,
		ServiceIDs:  serviceIDs,
	}
}

// FromDomainStaffList конвертирует список мастеров
func FromDomainStaffList(list []*domain.Staff) *StaffListResponse {
	result := make([]StaffResponse, 0, len(list))
	for _, s := range list {
		result = append(result, *FromDomainStaff(s))
	}
	return &StaffListResponse{Staff: result}
}
