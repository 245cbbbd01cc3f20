package delete_blocked_date

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/haderrenteria13/ronald-barber/internal/api/middleware"
	"github.com/haderrenteria13/ronald-barber/internal/service/schedule"
	"github.com/haderrenteria13/ronald-barber/pkg/logger"
)

var cot = time.FixedZone("COT", -5*60*60)

type fakeSchedule struct {
	gotDate time.Time
	err     error
}

func (f *fakeSchedule) UnblockDate(_ context.Context, date time.Time, _ string) error {
	f.gotDate = date
	return f.err
}

func serve(svc ScheduleService, date string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/blocked-dates/"+date, nil)
	req.Header.Set(middleware.AdminIDHeader, "ronald")
	req = mux.SetURLVars(req, map[string]string{"date": date})

	rec := httptest.NewRecorder()
	h := NewHandler(svc, cot, logger.NewNop())
	middleware.AdminAuth(logger.NewNop())(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeSchedule{}
	rec := serve(svc, "2026-03-24")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, svc.gotDate.Equal(time.Date(2026, 3, 24, 0, 0, 0, 0, cot)))

	assert.Equal(t, http.StatusBadRequest, serve(&fakeSchedule{}, "tomorrow").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeSchedule{err: schedule.ErrBlockedDateNotFound}, "2026-03-24").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeSchedule{err: errors.New("db down")}, "2026-03-24").Code)
}
