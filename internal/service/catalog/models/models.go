package models

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на добавление услуги в каталог
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Category        string  `json:"category"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           int64   `json:"price"`
}

// UpdateServiceRequest запрос на изменение услуги
// Все поля опциональны - обновляются только переданные значения
type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	Category        *string `json:"category,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Price           *int64  `json:"price,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

// ListServicesRequest фильтр каталога
type ListServicesRequest struct {
	Category        *string
	IncludeInactive bool
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Category        string    `json:"category"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           int64     `json:"price"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CategoryGroup услуги одной категории
type CategoryGroup struct {
	Category string            `json:"category"`
	Services []ServiceResponse `json:"services"`
}

// ServiceListResponse ответ со списком услуг, сгруппированным по категориям
type ServiceListResponse struct {
	Services   []ServiceResponse `json:"services"`
	Categories []CategoryGroup   `json:"categories"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Category:        string(s.Category),
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует каталог в DTO с группировкой по категориям
// в порядке domain.AllCategories
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services:   make([]ServiceResponse, 0, len(services)),
		Categories: []CategoryGroup{},
	}

	grouped := make(map[domain.ServiceCategory][]ServiceResponse)
	for _, s := range services {
		if dto := FromDomainService(s); dto != nil {
			resp.Services = append(resp.Services, *dto)
			grouped[s.Category] = append(grouped[s.Category], *dto)
		}
	}

	for _, c := range domain.AllCategories {
		if items, ok := grouped[c]; ok {
			resp.Categories = append(resp.Categories, CategoryGroup{Category: string(c), Services: items})
		}
	}

	return resp
}
