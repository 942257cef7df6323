package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
)

// UseCase use case для получения свободных слотов по мастерам
type UseCase struct {
	serviceRepo  ServiceRepository
	staffRepo    StaffRepository
	bookingRepo  BookingRepository
	generator    SlotGenerator
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location задает часовой пояс салона, в котором трактуется календарный день запроса.
func NewUseCase(
	serviceRepo ServiceRepository,
	staffRepo StaffRepository,
	bookingRepo BookingRepository,
	generator SlotGenerator,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		serviceRepo:  serviceRepo,
		staffRepo:    staffRepo,
		bookingRepo:  bookingRepo,
		generator:    generator,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Блокировки не берутся: результат является снимком на момент чтения,
// окончательная проверка выполняется при создании записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)
	uc.logger.Info("GetAvailableSlots: date=%s, services=%v, match_all=%t",
		day.Format(domain.DateFormat), req.ServiceIDs, req.MatchAll)

	// 2. Суммируем длительность и стоимость выбранных услуг
	catalog, err := uc.serviceRepo.GetActiveByIDs(ctx, scheduling.UniqueIDs(req.ServiceIDs))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	quote, err := scheduling.Aggregate(req.ServiceIDs, catalog)
	if err != nil {
		if errors.Is(err, scheduling.ErrNoServices) {
			uc.logger.Warn("GetAvailableSlots: none of services %v is active", req.ServiceIDs)
			return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, req.ServiceIDs)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if len(quote.Missing) > 0 {
		uc.logger.Warn("GetAvailableSlots: services %v not found, continuing without them", quote.Missing)
	}

	resp := &Response{
		Date:                 day,
		ServiceIDs:           quote.ServiceIDs(),
		MissingServiceIDs:    quote.Missing,
		TotalDurationMinutes: quote.TotalDurationMinutes,
		TotalPrice:           quote.TotalPrice,
		Staff:                []StaffSlots{},
	}

	// 3. Подбираем мастеров
	serviceIDs := scheduling.UniqueIDs(quote.ServiceIDs())
	staff, err := uc.staffRepo.List(ctx, domain.StaffFilter{
		ServiceIDs:    serviceIDs,
		StaffID:       req.StaffID,
		MatchAll:      req.MatchAll,
		OnlyAvailable: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	eligible := make([]*domain.Staff, 0, len(staff))
	staffIDs := make([]int64, 0, len(staff))
	for _, s := range staff {
		if isEligible(s, serviceIDs, req) {
			eligible = append(eligible, s)
			staffIDs = append(staffIDs, s.ID)
		}
	}

	if len(eligible) == 0 {
		uc.logger.Info("GetAvailableSlots: no eligible staff for services %v", serviceIDs)
		return resp, nil
	}

	// 4. Одним запросом читаем занятость всех мастеров в рабочем окне дня
	window, err := uc.generator.Hours().Window(day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build business window: %v", err)
		return nil, fmt.Errorf("%w: failed to build business window: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetActiveByStaffInRange(ctx, staffIDs, window.Start, window.End)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	byStaff := make(map[int64][]*domain.Booking, len(eligible))
	for _, b := range bookings {
		byStaff[b.StaffID] = append(byStaff[b.StaffID], b)
	}

	// 5. Для каждого мастера прогоняем сетку через проверку конфликтов
	now := uc.timeProvider.Now()
	candidates := uc.generator.Candidates(day, quote.Duration())

	total, free := 0, 0
	for _, s := range eligible {
		// Полностью занятый мастер остается в ответе с пустым списком
		slots := []Slot{}
		for c := range scheduling.FreeSlots(candidates, byStaff[s.ID], now) {
			slots = append(slots, Slot{StartTime: c.Start, EndTime: c.End})
		}
		if len(slots) > 0 {
			free++
		}

		total += len(slots)
		resp.Staff = append(resp.Staff, StaffSlots{
			StaffID:   s.ID,
			StaffName: s.Name,
			Position:  s.Position,
			Slots:     slots,
		})
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for %d of %d staff, date=%s, duration=%dm",
		total, free, len(eligible), day.Format(domain.DateFormat), quote.TotalDurationMinutes)

	return resp, nil
}
