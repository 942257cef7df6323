package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

// Service сервис каталога услуг салона
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List возвращает активные услуги, опционально одной категории
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error) {
	filter := domain.ServiceFilter{IncludeInactive: req.IncludeInactive}

	if req.Category != nil {
		category, err := domain.ParseServiceCategory(strings.ToUpper(*req.Category))
		if err != nil {
			s.logger.Warn("List: invalid category=%s", *req.Category)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Category = &category
	}

	services, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// GetByID получает услугу по ID
// Неактивные услуги видны только при includeInactive (администратору)
func (s *Service) GetByID(ctx context.Context, id int64, includeInactive bool) (*models.ServiceResponse, error) {
	svc, err := s.getService(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !svc.IsActive && !includeInactive {
		s.logger.Warn("GetByID: service id=%d is inactive", id)
		return nil, ErrServiceNotFound
	}

	return models.FromDomainService(svc), nil
}

// Create добавляет услугу в каталог
// Доступно только администратору
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q, category=%s", req.Name, req.Category)

	svc := &domain.Service{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Category:        domain.ServiceCategory(strings.ToUpper(req.Category)),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}

	if err := validateService(svc); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrDuplicateName) {
			s.logger.Warn("Create: service name=%q already exists", svc.Name)
			return nil, ErrServiceAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// Update частично обновляет услугу
// Существующие бронирования хранят снимок и не затрагиваются
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d", id)

	svc, err := s.getService(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = req.Description
	}
	if req.Category != nil {
		svc.Category = domain.ServiceCategory(strings.ToUpper(*req.Category))
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := validateService(svc); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.serviceRepo.Update(ctx, id, svc)
	if err != nil {
		switch {
		case errors.Is(err, serviceRepo.ErrServiceNotFound):
			return nil, ErrServiceNotFound
		case errors.Is(err, serviceRepo.ErrDuplicateName):
			return nil, ErrServiceAlreadyExists
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// Deactivate скрывает услугу из каталога
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	s.logger.Info("Deactivate: deactivating service id=%d", id)

	if err := s.serviceRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Deactivate: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("Deactivate: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated service id=%d", id)
	return nil
}

func (s *Service) getService(ctx context.Context, op string, id int64) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return svc, nil
}
