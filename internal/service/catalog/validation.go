package catalog

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// validateService проверяет бизнес-ограничения услуги
func validateService(svc *domain.Service) error {
	name := strings.TrimSpace(svc.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}

	if _, err := domain.ParseServiceCategory(string(svc.Category)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if svc.DurationMinutes < domain.MinServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be at least %d minutes", ErrInvalidInput, domain.MinServiceDurationMinutes)
	}

	if svc.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	return nil
}
