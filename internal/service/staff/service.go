package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	"github.com/m04kA/SMC-SalonService/internal/service/staff/models"
)

// Service сервис мастеров салона
type Service struct {
	staffRepo StaffRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(staffRepo StaffRepository, logger Logger) *Service {
	return &Service{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// ListAvailable возвращает мастеров, принимающих записи.
// Если указаны услуги, мастер должен выполнять хотя бы одну из них.
func (s *Service) ListAvailable(ctx context.Context, req *models.ListStaffRequest) (*models.StaffListResponse, error) {
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
		}
	}

	list, err := s.staffRepo.List(ctx, domain.StaffFilter{
		ServiceIDs:    scheduling.UniqueIDs(req.ServiceIDs),
		OnlyAvailable: true,
	})
	if err != nil {
		s.logger.Error("ListAvailable: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAvailable: fetched %d staff", len(list))
	return models.FromDomainStaffList(list), nil
}

// SetAvailability включает или выключает прием записей мастером.
// Мастер меняет только свою доступность, существующие записи не затрагиваются.
func (s *Service) SetAvailability(ctx context.Context, userID int64, req *models.SetAvailabilityRequest) (*models.StaffResponse, error) {
	if req.IsAvailable == nil {
		return nil, fmt.Errorf("%w: isAvailable is required", ErrInvalidInput)
	}

	staff, err := s.staffRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("SetAvailability: user_id=%d is not a staff member", userID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("SetAvailability: failed to get staff: user_id=%d, error=%v", userID, err)
		return nil, fmt.Errorf("%w: SetAvailability - get staff: %v", ErrInternal, err)
	}

	if err := s.staffRepo.SetAvailability(ctx, staff.ID, *req.IsAvailable); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("SetAvailability: failed to update staff_id=%d: %v", staff.ID, err)
		return nil, fmt.Errorf("%w: SetAvailability - update: %v", ErrInternal, err)
	}

	staff.IsAvailable = *req.IsAvailable
	s.logger.Info("SetAvailability: staff_id=%d, is_available=%t", staff.ID, staff.IsAvailable)

	return models.FromDomainStaff(staff), nil
}
