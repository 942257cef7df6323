package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonService/pkg/ptr"
)

// Service сервис для работы с существующими бронированиями
type Service struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	staffRepo    StaffRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		staffRepo:    staffRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно клиенту-владельцу, назначенному мастеру и администратору
func (s *Service) GetByID(ctx context.Context, id int64, actor models.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d, role=%s", id, actor.UserID, actor.Role)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetMyBookings получает историю бронирований текущего клиента
// Опционально фильтрует по статусу
func (s *Service) GetMyBookings(ctx context.Context, req *models.GetMyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetMyBookings: fetching bookings for user=%d, status=%s", req.Actor.UserID, ptr.ValueOr(req.Status, "any"))

	status, err := parseOptionalStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetMyBookings: invalid status=%s for user=%d", *req.Status, req.Actor.UserID)
		return nil, err
	}

	customer, err := s.customerRepo.GetByUserID(ctx, req.Actor.UserID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetMyBookings: customer for user=%d not found", req.Actor.UserID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetMyBookings: failed to get customer for user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: GetMyBookings - get customer: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, customer.ID, status)
	if err != nil {
		s.logger.Error("GetMyBookings: repository error for customer=%d: %v", customer.ID, err)
		return nil, fmt.Errorf("%w: GetMyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMyBookings: successfully fetched %d bookings for customer=%d", len(bookings), customer.ID)
	return models.FromDomainBookingList(bookings), nil
}

// GetStaffBookings получает бронирования мастера по дню и статусу
// Мастер видит только свое расписание, администратор любое
func (s *Service) GetStaffBookings(ctx context.Context, req *models.GetStaffBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetStaffBookings: fetching bookings for staff=%d, user=%d", req.StaffID, req.Actor.UserID)
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info("%s", logMsg)

	if req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	status, err := parseOptionalStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetStaffBookings: invalid status=%s", *req.Status)
		return nil, err
	}

	if !req.Actor.IsAdmin() {
		staff, err := s.actorStaff(ctx, "GetStaffBookings", req.Actor)
		if err != nil {
			return nil, err
		}
		if staff.ID != req.StaffID {
			s.logger.Warn("GetStaffBookings: staff=%d tried to read bookings of staff=%d", staff.ID, req.StaffID)
			return nil, ErrAccessDenied
		}
	}

	bookings, err := s.bookingRepo.GetByStaffWithFilter(ctx, domain.StaffBookingsFilter{
		StaffID:          req.StaffID,
		Date:             req.Date,
		Status:           status,
		IncludeCancelled: req.IncludeCancelled,
	})
	if err != nil {
		s.logger.Error("GetStaffBookings: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStaffBookings: successfully fetched %d bookings for staff=%d", len(bookings), req.StaffID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование по запросу клиента
// Клиент может отменить только свою подтвержденную запись
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.Actor.UserID)

	if req.Reason != nil && len([]rune(*req.Reason)) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	customer, err := s.customerRepo.GetByUserID(ctx, req.Actor.UserID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Cancel: customer for user=%d not found", req.Actor.UserID)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("Cancel: failed to get customer for user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: Cancel - get customer: %v", ErrInternal, err)
	}

	var result *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Внутри транзакции запись читается с блокировкой
		booking, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if booking.CustomerID != customer.ID {
			s.logger.Warn("Cancel: customer=%d is not the owner of booking id=%d", customer.ID, bookingID)
			return ErrAccessDenied
		}

		if booking.Status != domain.StatusConfirmed {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.transition(txCtx, "Cancel", booking, domain.StatusCancelled, req.Reason); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(result), nil
}

// UpdateStatus переводит бронирование в новый статус по таблице переходов
// Мастер может менять статус только своих записей, администратор любых
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d, role=%s",
		bookingID, req.Status, req.Actor.UserID, req.Actor.Role)

	target, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Reason != nil && len([]rune(*req.Reason)) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var staffID int64
	if !req.Actor.IsAdmin() {
		staff, err := s.actorStaff(ctx, "UpdateStatus", req.Actor)
		if err != nil {
			return nil, err
		}
		staffID = staff.ID
	}

	var result *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if !req.Actor.IsAdmin() && booking.StaffID != staffID {
			s.logger.Warn("UpdateStatus: staff=%d is not assigned to booking id=%d", staffID, bookingID)
			return ErrAccessDenied
		}

		reason := req.Reason
		if target != domain.StatusCancelled {
			reason = nil
		}

		if err := s.transition(txCtx, "UpdateStatus", booking, target, reason); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, target)
	return models.FromDomainBooking(result), nil
}

// Вспомогательные методы

// transition проверяет переход по таблице и применяет его условным UPDATE
func (s *Service) transition(
	ctx context.Context,
	op string,
	booking *domain.Booking,
	target domain.BookingStatus,
	reason *string,
) error {
	from := booking.Status

	if err := booking.TransitionTo(target); err != nil {
		s.logger.Warn("%s: booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, target)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, from, target, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			s.logger.Warn("%s: booking id=%d status changed concurrently, expected=%s", op, booking.ID, from)
			return ErrStatusConflict
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - update status: %v", ErrInternal, op, err)
	}

	if reason != nil {
		booking.CancellationReason = reason
	}

	return nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// actorStaff находит профиль мастера текущего пользователя
func (s *Service) actorStaff(ctx context.Context, op string, actor models.Actor) (*domain.Staff, error) {
	if actor.Role != domain.RoleStaff {
		s.logger.Warn("%s: role=%s is not allowed", op, actor.Role)
		return nil, ErrAccessDenied
	}

	staff, err := s.staffRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("%s: staff profile for user=%d not found", op, actor.UserID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("%s: failed to get staff for user=%d: %v", op, actor.UserID, err)
		return nil, fmt.Errorf("%w: %s - get staff: %v", ErrInternal, op, err)
	}
	return staff, nil
}

// checkAccess проверяет, что пользователь имеет доступ к бронированию
func (s *Service) checkAccess(ctx context.Context, booking *domain.Booking, actor models.Actor) error {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleManager:
		return nil

	case domain.RoleStaff:
		staff, err := s.actorStaff(ctx, "checkAccess", actor)
		if err != nil {
			return err
		}
		if staff.ID == booking.StaffID {
			return nil
		}

	case domain.RoleCustomer:
		customer, err := s.customerRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				return ErrAccessDenied
			}
			return fmt.Errorf("%w: checkAccess - get customer: %v", ErrInternal, err)
		}
		if customer.ID == booking.CustomerID {
			return nil
		}
	}

	return ErrAccessDenied
}

func parseOptionalStatus(raw *string) (*domain.BookingStatus, error) {
	if raw == nil {
		return nil, nil
	}
	status, err := domain.ParseBookingStatus(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &status, nil
}
