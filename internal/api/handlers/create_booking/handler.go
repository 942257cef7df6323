package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-SalonService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidDate          = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime          = "некорректный формат времени начала, ожидается HH:MM или RFC3339"
	msgInvalidInput         = "некорректные данные бронирования"
	msgSlotNotAvailable     = "выбранное время уже занято"
	msgCustomerNotFound     = "профиль клиента не найден"
	msgStaffNotFound        = "мастер не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgStaffUnavailable     = "мастер не принимает записи"
	msgStaffCannotPerform   = "мастер не выполняет выбранные услуги"
	msgStartNotOnDate       = "время начала не совпадает с датой бронирования"
	msgBookingInPast        = "нельзя записаться на прошедшее время"
	msgOutsideBusinessHours = "запись выходит за часы работы салона"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, &req, userID, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, staff_id=%d",
		result.ID, userID, req.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, req *CreateBookingRequest, userID int64, err error) {
	var conflict *createBooking.ConflictError

	switch {
	case errors.As(err, &conflict):
		h.logger.Warn("POST /bookings - Slot not available: user_id=%d, staff_id=%d, conflicting_booking_id=%d",
			userID, req.StaffID, conflict.ConflictingBookingID)
		handlers.RespondConflict(w, msgSlotNotAvailable, FromConflictError(conflict))

	case errors.Is(err, createBooking.ErrSlotNotAvailable):
		h.logger.Warn("POST /bookings - Slot not available: user_id=%d, staff_id=%d", userID, req.StaffID)
		handlers.RespondConflict(w, msgSlotNotAvailable, nil)

	case errors.Is(err, createBooking.ErrCustomerNotFound):
		h.logger.Warn("POST /bookings - Customer not found: user_id=%d", userID)
		handlers.RespondNotFound(w, msgCustomerNotFound)

	case errors.Is(err, createBooking.ErrStaffNotFound):
		h.logger.Warn("POST /bookings - Staff not found: staff_id=%d", req.StaffID)
		handlers.RespondNotFound(w, msgStaffNotFound)

	case errors.Is(err, createBooking.ErrServiceNotFound):
		h.logger.Warn("POST /bookings - Service not found: service_ids=%v", req.ServiceIDs)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createBooking.ErrStaffUnavailable):
		h.logger.Warn("POST /bookings - Staff unavailable: staff_id=%d", req.StaffID)
		handlers.RespondBadRequest(w, msgStaffUnavailable)

	case errors.Is(err, createBooking.ErrStaffCannotPerform):
		h.logger.Warn("POST /bookings - Staff cannot perform services: staff_id=%d, service_ids=%v",
			req.StaffID, req.ServiceIDs)
		handlers.RespondBadRequest(w, msgStaffCannotPerform)

	case errors.Is(err, createBooking.ErrInvalidDate):
		h.logger.Warn("POST /bookings - Start time does not match date: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgStartNotOnDate)

	case errors.Is(err, createBooking.ErrBookingInPast):
		h.logger.Warn("POST /bookings - Booking in the past: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgBookingInPast)

	case errors.Is(err, createBooking.ErrOutsideBusinessHours):
		h.logger.Warn("POST /bookings - Outside business hours: user_id=%d, staff_id=%d", userID, req.StaffID)
		handlers.RespondBadRequest(w, msgOutsideBusinessHours)

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, staff_id=%d, error=%v",
			userID, req.StaffID, err)
		handlers.RespondInternalError(w)
	}
}
