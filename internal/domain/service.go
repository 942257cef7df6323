package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCategory категория услуги вне допустимого набора
var ErrInvalidCategory = errors.New("domain: invalid service category")

// ServiceCategory категория услуги
type ServiceCategory string

const (
	CategoryHair     ServiceCategory = "HAIR"
	CategorySkin     ServiceCategory = "SKIN"
	CategoryGrooming ServiceCategory = "GROOMING"
	CategoryBridal   ServiceCategory = "BRIDAL"
	CategoryMassage  ServiceCategory = "MASSAGE"
	CategoryNails    ServiceCategory = "NAILS"
	CategoryOther    ServiceCategory = "OTHER"
)

// AllCategories категории в порядке отображения каталога
var AllCategories = []ServiceCategory{
	CategoryHair,
	CategorySkin,
	CategoryGrooming,
	CategoryBridal,
	CategoryMassage,
	CategoryNails,
	CategoryOther,
}

// ParseServiceCategory проверяет, что строка входит в набор категорий
func ParseServiceCategory(s string) (ServiceCategory, error) {
	c := ServiceCategory(s)
	for _, valid := range AllCategories {
		if c == valid {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Service услуга каталога салона
type Service struct {
	ID              int64
	Name            string
	Description     *string
	Category        ServiceCategory
	DurationMinutes int
	Price           int64 // в рупиях, без дробной части
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration длительность услуги
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// ServiceFilter фильтр каталога услуг
type ServiceFilter struct {
	Category        *ServiceCategory
	IncludeInactive bool
}
