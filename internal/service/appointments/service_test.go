package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
	appointmentRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/appointment"
	"github.com/haderrenteria13/ronald-barber/internal/service/appointments/models"
	"github.com/haderrenteria13/ronald-barber/pkg/logger"
	"github.com/haderrenteria13/ronald-barber/pkg/ptr"
)

var cot = time.FixedZone("COT", -5*60*60)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	appt, _ := args.Get(0).(*domain.Appointment)
	return appt, args.Error(1)
}

func (m *MockAppointmentRepository) GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	appts, _ := args.Get(0).([]*domain.Appointment)
	return appts, args.Error(1)
}

func (m *MockAppointmentRepository) Cancel(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var now = time.Date(2026, 3, 10, 15, 0, 0, 0, cot)

func newService(repo *MockAppointmentRepository) *Service {
	svc := NewService(repo, logger.NewNop())
	svc.timeProvider = fixedClock{now: now}
	return svc
}

func confirmed(id int64, start time.Time) *domain.Appointment {
	return &domain.Appointment{
		ID:          id,
		ServiceID:   1,
		ServiceName: "Corte Clásico",
		ClientName:  "Juan Pérez",
		ClientPhone: "3001234567",
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		Status:      domain.StatusConfirmed,
	}
}

func TestList(t *testing.T) {
	t.Run("passes period and status", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		from := time.Date(2026, 3, 1, 0, 0, 0, 0, cot)
		to := time.Date(2026, 4, 1, 0, 0, 0, 0, cot)

		repo.On("GetByFilter", mock.Anything, mock.MatchedBy(func(f domain.AppointmentsFilter) bool {
			return f.From.Equal(from) && f.To.Equal(to) && *f.Status == domain.StatusCancelled
		})).Return([]*domain.Appointment{confirmed(1, from.Add(10*time.Hour))}, nil)

		resp, err := newService(repo).List(context.Background(), &models.ListAppointmentsRequest{
			From:   &from,
			To:     &to,
			Status: ptr.Ptr("cancelled"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, "Corte Clásico", resp.Appointments[0].ServiceName)
	})

	t.Run("upcoming forces confirmed from now", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		repo.On("GetByFilter", mock.Anything, mock.MatchedBy(func(f domain.AppointmentsFilter) bool {
			return f.From.Equal(now) && f.To == nil && *f.Status == domain.StatusConfirmed
		})).Return(nil, nil)

		resp, err := newService(repo).List(context.Background(), &models.ListAppointmentsRequest{Upcoming: true})
		require.NoError(t, err)
		assert.NotNil(t, resp.Appointments)
		assert.Zero(t, resp.Total)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		_, err := newService(repo).List(context.Background(), &models.ListAppointmentsRequest{Status: ptr.Ptr("done")})
		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "GetByFilter", mock.Anything, mock.Anything)
	})

	t.Run("inverted range", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		from := time.Date(2026, 3, 2, 0, 0, 0, 0, cot)
		to := time.Date(2026, 3, 1, 0, 0, 0, 0, cot)
		_, err := newService(repo).List(context.Background(), &models.ListAppointmentsRequest{From: &from, To: &to})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		repo.On("GetByFilter", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
		_, err := newService(repo).List(context.Background(), &models.ListAppointmentsRequest{})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestCancel(t *testing.T) {
	start := time.Date(2026, 3, 11, 10, 0, 0, 0, cot)

	t.Run("success", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		repo.On("GetByID", mock.Anything, int64(7)).Return(confirmed(7, start), nil)
		repo.On("Cancel", mock.Anything, int64(7)).Return(nil)

		resp, err := newService(repo).Cancel(context.Background(), &models.CancelAppointmentRequest{AppointmentID: 7})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		require.NotNil(t, resp.CancelledAt)
		assert.Equal(t, now, *resp.CancelledAt)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		repo.On("GetByID", mock.Anything, int64(8)).Return(nil, appointmentRepo.ErrAppointmentNotFound)

		_, err := newService(repo).Cancel(context.Background(), &models.CancelAppointmentRequest{AppointmentID: 8})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		appt := confirmed(9, start)
		appt.Status = domain.StatusCancelled
		repo.On("GetByID", mock.Anything, int64(9)).Return(appt, nil)

		_, err := newService(repo).Cancel(context.Background(), &models.CancelAppointmentRequest{AppointmentID: 9})
		assert.ErrorIs(t, err, ErrCannotCancel)
		repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	})

	t.Run("cancelled concurrently", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		repo.On("GetByID", mock.Anything, int64(10)).Return(confirmed(10, start), nil)
		repo.On("Cancel", mock.Anything, int64(10)).Return(appointmentRepo.ErrCannotCancel)

		_, err := newService(repo).Cancel(context.Background(), &models.CancelAppointmentRequest{AppointmentID: 10})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}
