package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haderrenteria13/ronald-barber/internal/availability"
	"github.com/haderrenteria13/ronald-barber/internal/domain"
	appointmentRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/appointment"
	catalogRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/catalog"
	scheduleRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/schedule"
	"github.com/haderrenteria13/ronald-barber/internal/integrations/whatsappbot"
	"github.com/haderrenteria13/ronald-barber/pkg/logger"
	"github.com/haderrenteria13/ronald-barber/pkg/metrics"
	"github.com/haderrenteria13/ronald-barber/pkg/ptr"
	"github.com/haderrenteria13/ronald-barber/pkg/types"
)

var cot = time.FixedZone("COT", -5*60*60)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, cot)
}

type fakeServices struct{}

func (fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if id != 1 {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return &domain.Service{ID: 1, Name: "Corte + Barba", Price: 35000, DurationMinutes: 45}, nil
}

type fakeSchedule struct {
	blocked bool
}

func (f *fakeSchedule) GetRuleByWeekday(_ context.Context, day time.Weekday) (*domain.WeeklyHourRule, error) {
	if day != time.Tuesday {
		return nil, scheduleRepo.ErrRuleNotFound
	}
	return &domain.WeeklyHourRule{
		DayOfWeek:  time.Tuesday,
		StartTime:  "09:00",
		EndTime:    "14:00",
		BreakStart: ptr.Ptr[types.TimeString]("12:00"),
		BreakEnd:   ptr.Ptr[types.TimeString]("13:00"),
		IsActive:   true,
	}, nil
}

func (f *fakeSchedule) IsDateBlocked(context.Context, time.Time) (bool, error) {
	return f.blocked, nil
}

type fakeAppointments struct {
	existing  []*domain.Appointment
	createErr error
	created   []*domain.Appointment
	inTx      []bool
}

func (f *fakeAppointments) GetByFilter(ctx context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.inTx = append(f.inTx, ctx.Value(txMarker{}) != nil)
	return f.existing, nil
}

func (f *fakeAppointments) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	appt.ID = int64(len(f.created) + 1)
	appt.CreatedAt = at(9, 8, 0)
	f.created = append(f.created, appt)
	return appt, nil
}

type txMarker struct{}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(context.WithValue(ctx, txMarker{}, true))
}

type fakeNotifier struct {
	err  error
	sent []whatsappbot.Confirmation
}

func (n *fakeNotifier) SendConfirmation(_ context.Context, c whatsappbot.Confirmation) error {
	n.sent = append(n.sent, c)
	return n.err
}

type fakeMetrics struct {
	outcomes []string
}

func (m *fakeMetrics) IncBooking(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	uc           *UseCase
	schedule     *fakeSchedule
	appointments *fakeAppointments
	tx           *fakeTxManager
	notifier     *fakeNotifier
	metrics      *fakeMetrics
}

func newFixture() *fixture {
	f := &fixture{
		schedule:     &fakeSchedule{},
		appointments: &fakeAppointments{},
		tx:           &fakeTxManager{},
		notifier:     &fakeNotifier{},
		metrics:      &fakeMetrics{},
	}
	f.uc = NewUseCase(fakeServices{}, f.schedule, f.appointments, f.tx, f.notifier,
		availability.New(), cot, f.metrics, logger.NewNop())
	f.uc.timeProvider = fixedClock{now: at(9, 8, 0)}
	return f
}

func validRequest() *Request {
	return &Request{
		ServiceID:   1,
		StartTime:   at(10, 10, 0),
		ClientName:  "  Ana María ",
		ClientPhone: "(300) 123-4567",
		Notes:       ptr.Ptr("  "),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	f.appointments.existing = []*domain.Appointment{{
		StartTime: at(10, 9, 0),
		EndTime:   at(10, 9, 45),
		Status:    domain.StatusConfirmed,
	}}
	req := validRequest()
	req.StartTime = at(10, 9, 45)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Ana María", resp.ClientName)
	assert.Equal(t, "3001234567", resp.ClientPhone)
	assert.Nil(t, resp.Notes)
	assert.True(t, resp.StartTime.Equal(at(10, 9, 45)))
	assert.True(t, resp.EndTime.Equal(at(10, 10, 30)))
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 35000.0, resp.ServicePrice)
	assert.True(t, resp.NotificationSent)

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []bool{true}, f.appointments.inTx)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "Corte + Barba", f.notifier.sent[0].ServiceName)
	assert.Equal(t, "3001234567", f.notifier.sent[0].ClientPhone)

	assert.Equal(t, []string{metrics.BookingCreated}, f.metrics.outcomes)
}

func TestExecute_StartTimeInAnotherZone(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.StartTime = at(10, 11, 0).UTC()

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, cot, resp.StartTime.Location())
}

func TestExecute_NotificationFailureKeepsBooking(t *testing.T) {
	f := newFixture()
	f.notifier.err = whatsappbot.ErrServiceDegraded

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, resp.NotificationSent)
	assert.True(t, resp.StartTime.Equal(at(10, 10, 0)))
	require.Len(t, f.appointments.created, 1)
	assert.Len(t, f.notifier.sent, 1)
	assert.Equal(t, []string{metrics.BookingNotifyFailed, metrics.BookingCreated}, f.metrics.outcomes)
}

func TestExecute_WithoutNotifier(t *testing.T) {
	f := newFixture()
	f.uc.notifier = nil

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.False(t, resp.NotificationSent)
	assert.Len(t, f.appointments.created, 1)
	assert.Equal(t, []string{metrics.BookingCreated}, f.metrics.outcomes)
}

func TestExecute_SlotConflicts(t *testing.T) {
	t.Run("start overlaps a confirmed appointment", func(t *testing.T) {
		f := newFixture()
		f.appointments.existing = []*domain.Appointment{{
			StartTime: at(10, 9, 30),
			EndTime:   at(10, 10, 15),
			Status:    domain.StatusConfirmed,
		}}

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.Empty(t, f.appointments.created)
		assert.Empty(t, f.notifier.sent)
		assert.Equal(t, []string{metrics.BookingConflict}, f.metrics.outcomes)
	})

	t.Run("start is not a candidate", func(t *testing.T) {
		f := newFixture()
		req := validRequest()
		req.StartTime = at(10, 9, 10)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("service would run into the break", func(t *testing.T) {
		f := newFixture()
		req := validRequest()
		req.StartTime = at(10, 11, 30)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("database exclusion constraint", func(t *testing.T) {
		f := newFixture()
		f.appointments.createErr = appointmentRepo.ErrSlotNotAvailable

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.Empty(t, f.notifier.sent)
	})
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *Request, f *fixture)
		wantErr error
		outcome string
	}{
		{
			name:    "missing name",
			mutate:  func(req *Request, _ *fixture) { req.ClientName = "   " },
			wantErr: ErrInvalidInput,
			outcome: metrics.BookingRejected,
		},
		{
			name:    "phone with nine digits",
			mutate:  func(req *Request, _ *fixture) { req.ClientPhone = "300 123 456" },
			wantErr: ErrInvalidInput,
			outcome: metrics.BookingRejected,
		},
		{
			name:    "phone with country code",
			mutate:  func(req *Request, _ *fixture) { req.ClientPhone = "+57 300 123 4567" },
			wantErr: ErrInvalidInput,
			outcome: metrics.BookingRejected,
		},
		{
			name:    "missing start",
			mutate:  func(req *Request, _ *fixture) { req.StartTime = time.Time{} },
			wantErr: ErrInvalidInput,
			outcome: metrics.BookingRejected,
		},
		{
			name:    "unknown service",
			mutate:  func(req *Request, _ *fixture) { req.ServiceID = 7 },
			wantErr: ErrServiceNotFound,
			outcome: metrics.BookingRejected,
		},
		{
			name:    "past day",
			mutate:  func(req *Request, _ *fixture) { req.StartTime = at(8, 10, 0) },
			wantErr: ErrInvalidDate,
			outcome: metrics.BookingRejected,
		},
		{
			name:    "beyond horizon",
			mutate:  func(req *Request, _ *fixture) { req.StartTime = at(9, 10, 0).AddDate(0, 0, 61) },
			wantErr: ErrDateTooFarInFuture,
			outcome: metrics.BookingRejected,
		},
		{
			name:    "closed weekday",
			mutate:  func(req *Request, _ *fixture) { req.StartTime = at(11, 10, 0) },
			wantErr: ErrDayClosed,
			outcome: metrics.BookingRejected,
		},
		{
			name:    "blocked date",
			mutate:  func(_ *Request, f *fixture) { f.schedule.blocked = true },
			wantErr: ErrDayClosed,
			outcome: metrics.BookingRejected,
		},
		{
			name: "storage failure",
			mutate: func(_ *Request, f *fixture) {
				f.appointments.createErr = errors.New("connection reset")
			},
			wantErr: ErrInternal,
			outcome: metrics.BookingFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req, f)

			resp, err := f.uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, resp)
			assert.Equal(t, []string{tt.outcome}, f.metrics.outcomes)
		})
	}
}

func TestExecute_SerializationFailureStaysVisible(t *testing.T) {
	f := newFixture()
	f.appointments.createErr = &pq.Error{Code: "40001"}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.NotErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, []string{metrics.BookingFailed}, f.metrics.outcomes)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
	assert.ErrorIs(t, err, ErrInternal)
}
