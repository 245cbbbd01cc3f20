package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
	appointmentRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/appointment"
	"github.com/haderrenteria13/ronald-barber/internal/service/appointments/models"
)

// Service сервис записей для панели администратора
type Service struct {
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		timeProvider:    RealTimeProvider{},
		logger:          logger,
	}
}

// List возвращает записи за период, отсортированные по времени начала.
// Upcoming оставляет только будущие подтвержденные записи.
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments by admin=%s, from=%v, to=%v, status=%v, upcoming=%t",
		req.AdminID, req.From, req.To, req.Status, req.Upcoming)

	// 1. Собираем фильтр
	filter, err := s.buildFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	// 2. Получаем записи
	appts, err := s.appointmentRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(appts))
	return models.FromDomainAppointmentList(appts), nil
}

// Cancel отменяет подтвержденную запись
func (s *Service) Cancel(ctx context.Context, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by admin=%s", req.AppointmentID, req.AdminID)

	// 1. Получаем запись
	appt, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// 2. Проверяем, можно ли отменить запись
	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", req.AppointmentID, appt.Status)
		return nil, ErrCannotCancel
	}

	// 3. Отменяем запись (репозиторий повторно проверяет статус в WHERE)
	if err := s.appointmentRepo.Cancel(ctx, req.AppointmentID); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrCannotCancel):
			s.logger.Warn("Cancel: appointment id=%d was cancelled concurrently", req.AppointmentID)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelledAt := s.timeProvider.Now()
	appt.Status = domain.StatusCancelled
	appt.CancelledAt = &cancelledAt

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", req.AppointmentID)
	return models.FromDomainAppointment(appt), nil
}

// buildFilter конвертирует запрос в domain фильтр
func (s *Service) buildFilter(req *models.ListAppointmentsRequest) (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		From: req.From,
		To:   req.To,
	}

	if req.Status != nil {
		status := domain.AppointmentStatus(*req.Status)
		if !status.IsValid() {
			return filter, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
		}
		filter.Status = &status
	}

	if req.Upcoming {
		now := s.timeProvider.Now()
		if filter.From == nil || filter.From.Before(now) {
			filter.From = &now
		}
		confirmed := domain.StatusConfirmed
		filter.Status = &confirmed
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return filter, fmt.Errorf("%w: from must be before to", ErrInvalidTimeRange)
	}

	return filter, nil
}
