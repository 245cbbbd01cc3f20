package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/availability"
	"github.com/haderrenteria13/ronald-barber/internal/domain"
	catalogRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/catalog"
	scheduleRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/schedule"
)

// UseCase use case для получения свободных слотов на день
type UseCase struct {
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	engine          *availability.Engine
	location        *time.Location
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	engine *availability.Engine,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:     serviceRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		engine:          engine,
		location:        location,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и приводим дату к часовому поясу барбершопа
	now := uc.timeProvider.Now()
	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, uc.location)

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	input := availability.Input{
		TargetDate:             date,
		ServiceDurationMinutes: service.DurationMinutes,
		Now:                    now,
	}

	// 4. Проверяем горизонт бронирования до обращения к расписанию
	if err := uc.engine.ValidateInput(input); err != nil {
		uc.logger.Warn("GetAvailableSlots: input rejected: %v", err)
		return nil, mapEngineError(err)
	}

	// 5. Получаем правило дня недели и блокировку даты
	input.Rule, input.IsBlocked, err = uc.loadDay(ctx, date)
	if err != nil {
		return nil, err
	}

	response := &Response{
		Date:            date,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Morning:         []time.Time{},
		Afternoon:       []time.Time{},
	}

	// 6. Закрытый день: записи не нужны
	if availability.IsDayClosed(input.Rule, input.IsBlocked) {
		uc.logger.Info("GetAvailableSlots: day %s is closed (blocked=%t)", date.Format(domain.DateFormat), input.IsBlocked)
		response.DayClosed = true
		uc.metrics.ObserveAvailableSlots(0, true)
		return response, nil
	}

	// 7. Получаем подтвержденные записи дня
	appointments, err := uc.appointmentRepo.GetByFilter(ctx, domain.DayFilter(date))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}
	input.Appointments = derefAppointments(appointments)

	// 8. Считаем свободные слоты
	slots, err := uc.engine.Compute(input)
	if err != nil {
		if errors.Is(err, availability.ErrConfig) {
			uc.logger.Error("GetAvailableSlots: schedule for %s is misconfigured: %v", date.Weekday(), err)
		} else {
			uc.logger.Warn("GetAvailableSlots: engine rejected input: %v", err)
		}
		return nil, mapEngineError(err)
	}

	response.Morning = slots.Morning
	response.Afternoon = slots.Afternoon
	uc.metrics.ObserveAvailableSlots(slots.Total(), false)

	uc.logger.Info("GetAvailableSlots: %d slots (%d morning, %d afternoon) for service=%d, date=%s",
		slots.Total(), len(slots.Morning), len(slots.Afternoon), service.ID, date.Format(domain.DateFormat))

	return response, nil
}

// loadDay возвращает правило дня недели (nil, если день не рабочий) и флаг блокировки даты
func (uc *UseCase) loadDay(ctx context.Context, date time.Time) (*domain.WeeklyHourRule, bool, error) {
	rule, err := uc.scheduleRepo.GetRuleByWeekday(ctx, date.Weekday())
	if err != nil && !errors.Is(err, scheduleRepo.ErrRuleNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get rule for %s: %v", date.Weekday(), err)
		return nil, false, fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
	}

	blocked, err := uc.scheduleRepo.IsDateBlocked(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check blocked date: %v", err)
		return nil, false, fmt.Errorf("%w: failed to check blocked date: %v", ErrInternal, err)
	}

	return rule, blocked, nil
}

func derefAppointments(appointments []*domain.Appointment) []domain.Appointment {
	result := make([]domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, *a)
	}
	return result
}
