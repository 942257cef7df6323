package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/internal/notifications"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	staffRepo    StaffRepository
	customerRepo CustomerRepository
	txManager    TransactionManager
	schedule     Schedule
	locker       StaffLocker
	notifier     Notifier
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	customerRepo CustomerRepository,
	txManager TransactionManager,
	schedule Schedule,
	locker StaffLocker,
	notifier Notifier,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		staffRepo:    staffRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		schedule:     schedule,
		locker:       locker,
		notifier:     notifier,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции
// под блокировкой мастера, уведомления ставятся в очередь только после коммита.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (_ *Response, err error) {
	defer func() { uc.metrics.IncBooking(bookingResult(err)) }()

	uc.logger.Info("CreateBooking: user=%d, staff=%d, services=%v, start=%s",
		req.UserID, req.StaffID, req.ServiceIDs, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Приводим дату и время к локации салона
	now := uc.timeProvider.Now()
	start := req.StartTime.In(uc.location)
	bookingDate := time.Date(req.BookingDate.Year(), req.BookingDate.Month(), req.BookingDate.Day(), 0, 0, 0, 0, uc.location)

	if err := validateStartTime(bookingDate, start, now); err != nil {
		uc.logger.Warn("CreateBooking: start time validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем клиента
	customer, err := uc.customerRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer for user=%d not found", req.UserID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 4. Получаем мастера
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if !staff.IsAvailable {
		uc.logger.Warn("CreateBooking: staff id=%d is not available", staff.ID)
		return nil, ErrStaffUnavailable
	}

	// 5. Суммируем услуги, все выбранные услуги должны быть активны
	catalog, err := uc.serviceRepo.GetActiveByIDs(ctx, scheduling.UniqueIDs(req.ServiceIDs))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	quote, err := scheduling.Aggregate(req.ServiceIDs, catalog)
	if err != nil {
		uc.logger.Warn("CreateBooking: services %v not resolved: %v", req.ServiceIDs, err)
		return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, req.ServiceIDs)
	}
	if len(quote.Missing) > 0 {
		uc.logger.Warn("CreateBooking: services %v not found", quote.Missing)
		return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, quote.Missing)
	}

	if !staff.CanPerformAll(scheduling.UniqueIDs(req.ServiceIDs)) {
		uc.logger.Warn("CreateBooking: staff id=%d cannot perform services %v", staff.ID, req.ServiceIDs)
		return nil, ErrStaffCannotPerform
	}

	// 6. Интервал записи должен целиком помещаться в часы работы
	interval := domain.Interval{Start: start, End: start.Add(quote.Duration())}
	if !uc.schedule.Fits(interval) {
		uc.logger.Warn("CreateBooking: interval %s-%s is outside business hours",
			interval.Start.Format(domain.TimeFormat), interval.End.Format(domain.TimeFormat))
		return nil, ErrOutsideBusinessHours
	}

	conflict := &ConflictError{
		StaffID:    staff.ID,
		ServiceIDs: quote.ServiceIDs(),
		StartTime:  interval.Start,
		EndTime:    interval.End,
	}

	// 7. Проверка и вставка под блокировкой мастера
	unlock := uc.locker.Lock(staff.ID)
	defer unlock()

	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Блокируем строку мастера: конкурирующие транзакции по нему ждут коммита
		locked, err := uc.staffRepo.LockForBooking(txCtx, staff.ID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				return ErrStaffNotFound
			}
			return fmt.Errorf("%w: failed to lock staff: %v", ErrInternal, err)
		}
		if !locked.IsAvailable {
			return ErrStaffUnavailable
		}

		// 7.2. Перечитываем занятость мастера на пересекающемся интервале
		existing, err := uc.bookingRepo.GetActiveByStaffInRange(txCtx, []int64{staff.ID}, interval.Start, interval.End)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if b := scheduling.FirstConflict(interval, existing); b != nil {
			conflict.ConflictingBookingID = b.ID
			return conflict
		}

		// 7.3. Сохраняем запись со снимком услуг
		created, err := uc.bookingRepo.Create(txCtx, newBooking(customer.ID, staff.ID, bookingDate, interval, quote, req.Notes))
		if err != nil {
			if bookingRepo.IsConflict(err) {
				return conflict
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// конфликт сериализации может проявиться только на коммите
		if bookingRepo.IsConflict(err) {
			err = conflict
		}

		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			uc.logger.Warn("CreateBooking: %v, conflicting_booking=%d", err, conflict.ConflictingBookingID)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
		default:
			uc.logger.Warn("CreateBooking: rejected in transaction: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, staff=%d, %s-%s",
		result.ID, result.StaffID, result.StartTime.Format(domain.TimeFormat), result.EndTime.Format(domain.TimeFormat))

	// 8. Уведомления не блокируют и не влияют на результат
	uc.notifier.BookingConfirmed(buildNotice(result, customer, staff))

	return toResponse(result, staff), nil
}

// newBooking собирает запись со снимком названий, цен и длительностей услуг
func newBooking(
	customerID, staffID int64,
	bookingDate time.Time,
	interval domain.Interval,
	quote *scheduling.Quote,
	notes *string,
) *domain.Booking {
	b := &domain.Booking{
		CustomerID:       customerID,
		StaffID:          staffID,
		BookingDate:      bookingDate,
		StartTime:        interval.Start,
		EndTime:          interval.End,
		Status:           domain.StatusConfirmed,
		ServiceIDs:       make([]int64, len(quote.Services)),
		ServiceNames:     make([]string, len(quote.Services)),
		ServicePrices:    make([]int64, len(quote.Services)),
		ServiceDurations: make([]int, len(quote.Services)),
		TotalAmount:      quote.TotalPrice,
		Notes:            notes,
	}
	for i, s := range quote.Services {
		b.ServiceIDs[i] = s.ID
		b.ServiceNames[i] = s.Name
		b.ServicePrices[i] = s.Price
		b.ServiceDurations[i] = s.DurationMinutes
	}
	return b
}

func buildNotice(b *domain.Booking, customer *domain.Customer, staff *domain.Staff) notifications.BookingNotice {
	lines := make([]notifications.ServiceLine, len(b.ServiceIDs))
	for i := range b.ServiceIDs {
		lines[i] = notifications.ServiceLine{
			Name:            b.ServiceNames[i],
			Price:           b.ServicePrices[i],
			DurationMinutes: b.ServiceDurations[i],
		}
	}
	return notifications.BookingNotice{
		BookingID:     b.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
		StaffName:     staff.Name,
		Services:      lines,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		TotalAmount:   b.TotalAmount,
	}
}

func toResponse(b *domain.Booking, staff *domain.Staff) *Response {
	items := make([]ServiceItem, len(b.ServiceIDs))
	for i := range b.ServiceIDs {
		items[i] = ServiceItem{
			ID:              b.ServiceIDs[i],
			Name:            b.ServiceNames[i],
			Price:           b.ServicePrices[i],
			DurationMinutes: b.ServiceDurations[i],
		}
	}
	return &Response{
		ID:                   b.ID,
		CustomerID:           b.CustomerID,
		StaffID:              b.StaffID,
		StaffName:            staff.Name,
		BookingDate:          b.BookingDate,
		StartTime:            b.StartTime,
		EndTime:              b.EndTime,
		Status:               string(b.Status),
		Services:             items,
		TotalDurationMinutes: b.DurationMinutes(),
		TotalAmount:          b.TotalAmount,
		Notes:                b.Notes,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

func bookingResult(err error) string {
	switch {
	case err == nil:
		return resultCreated
	case errors.Is(err, ErrSlotNotAvailable):
		return resultConflict
	case isRejection(err):
		return resultRejected
	default:
		return resultFailed
	}
}
