package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/availability"
	"github.com/haderrenteria13/ronald-barber/internal/domain"
	appointmentRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/appointment"
	catalogRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/catalog"
	scheduleRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/schedule"
	"github.com/haderrenteria13/ronald-barber/internal/integrations/whatsappbot"
	"github.com/haderrenteria13/ronald-barber/pkg/metrics"
)

// UseCase use case для создания записи
type UseCase struct {
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	engine          *availability.Engine
	location        *time.Location
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// notifier может быть nil: тогда подтверждение в WhatsApp не отправляется.
func NewUseCase(
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	engine *availability.Engine,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:     serviceRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		notifier:        notifier,
		engine:          engine,
		location:        location,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Свободные слоты пересчитываются внутри сериализуемой транзакции с блокировкой записей дня,
// а пересечение, пропущенное гонкой, отклоняет ограничение appointments_no_overlap.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.IncBooking(outcome(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, start=%s", req.ServiceID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	normalizeRequest(req)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и день записи в часовом поясе барбершопа
	now := uc.timeProvider.Now()
	start := req.StartTime.In(uc.location)
	date := domain.StartOfDay(start)

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	input := availability.Input{
		TargetDate:             date,
		ServiceDurationMinutes: service.DurationMinutes,
		Now:                    now,
	}

	// 4. Проверяем горизонт бронирования
	if err := uc.engine.ValidateInput(input); err != nil {
		uc.logger.Warn("CreateBooking: input rejected: %v", err)
		return nil, mapEngineError(err)
	}

	var created *domain.Appointment

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем правило дня недели и блокировку даты
		rule, err := uc.scheduleRepo.GetRuleByWeekday(txCtx, date.Weekday())
		if err != nil && !errors.Is(err, scheduleRepo.ErrRuleNotFound) {
			uc.logger.Error("CreateBooking: failed to get rule for %s: %v", date.Weekday(), err)
			return fmt.Errorf("%w: failed to get business hours: %w", ErrInternal, err)
		}

		blocked, err := uc.scheduleRepo.IsDateBlocked(txCtx, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check blocked date: %v", err)
			return fmt.Errorf("%w: failed to check blocked date: %w", ErrInternal, err)
		}

		if availability.IsDayClosed(rule, blocked) {
			uc.logger.Warn("CreateBooking: shop is closed on %s (blocked=%t)", date.Format(domain.DateFormat), blocked)
			return ErrDayClosed
		}

		// 5.2. Получаем подтвержденные записи дня с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetByFilter(txCtx, domain.DayFilter(date))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		// 5.3. Пересчитываем свободные слоты и проверяем выбранное время
		input.Rule = rule
		input.IsBlocked = blocked
		input.Appointments = make([]domain.Appointment, 0, len(appointments))
		for _, a := range appointments {
			input.Appointments = append(input.Appointments, *a)
		}

		slots, err := uc.engine.Compute(input)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to compute slots: %v", err)
			return mapEngineError(err)
		}

		if !slots.Contains(start) {
			uc.logger.Warn("CreateBooking: start %s is not among %d free slots", start.Format(time.RFC3339), slots.Total())
			return ErrSlotNotAvailable
		}

		// 5.4. Сохраняем запись
		appt, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ServiceID:   service.ID,
			ServiceName: service.Name,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			Notes:       req.Notes,
			StartTime:   start,
			EndTime:     start.Add(service.Duration()),
			Status:      domain.StatusConfirmed,
		})
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrSlotNotAvailable):
				uc.logger.Warn("CreateBooking: overlap rejected by database for start=%s", start.Format(time.RFC3339))
				return ErrSlotNotAvailable
			case errors.Is(err, appointmentRepo.ErrServiceNotFound):
				return ErrServiceNotFound
			default:
				uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
				return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
			}
		}

		created = appt
		return nil
	})
	if err != nil {
		if !isUseCaseError(err) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created appointment id=%d", created.ID)

	// 6. Отправляем подтверждение. Ошибка доставки не отменяет запись.
	notified := uc.notify(ctx, created)

	return &Response{
		ID:               created.ID,
		ServiceID:        created.ServiceID,
		ServiceName:      service.Name,
		ServicePrice:     service.Price,
		ClientName:       created.ClientName,
		ClientPhone:      created.ClientPhone,
		Notes:            created.Notes,
		StartTime:        created.StartTime,
		EndTime:          created.EndTime,
		Status:           string(created.Status),
		NotificationSent: notified,
		CreatedAt:        created.CreatedAt,
	}, nil
}

func (uc *UseCase) notify(ctx context.Context, appt *domain.Appointment) bool {
	if uc.notifier == nil {
		return false
	}

	err := uc.notifier.SendConfirmation(ctx, whatsappbot.Confirmation{
		ClientName:  appt.ClientName,
		ClientPhone: appt.ClientPhone,
		ServiceName: appt.ServiceName,
		StartTime:   appt.StartTime.In(uc.location),
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: confirmation for appointment id=%d not delivered: %v", appt.ID, err)
		uc.metrics.IncBooking(metrics.BookingNotifyFailed)
		return false
	}

	return true
}

func isUseCaseError(err error) bool {
	for _, target := range []error{
		ErrServiceNotFound,
		ErrInvalidDate,
		ErrDateTooFarInFuture,
		ErrDayClosed,
		ErrSlotNotAvailable,
		ErrScheduleMisconfigured,
		ErrInvalidInput,
		ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// outcome метка результата для метрики bookings_total
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.BookingCreated
	case errors.Is(err, ErrSlotNotAvailable):
		return metrics.BookingConflict
	case errors.Is(err, ErrInternal):
		return metrics.BookingFailed
	default:
		return metrics.BookingRejected
	}
}
