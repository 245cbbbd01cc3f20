package list_blocked_dates

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haderrenteria13/ronald-barber/internal/service/schedule/models"
	"github.com/haderrenteria13/ronald-barber/pkg/logger"
)

var cot = time.FixedZone("COT", -5*60*60)

type fakeSchedule struct {
	gotFrom *time.Time
	err     error
}

func (f *fakeSchedule) ListBlockedDates(_ context.Context, from *time.Time) (*models.BlockedDateListResponse, error) {
	f.gotFrom = from
	if f.err != nil {
		return nil, f.err
	}
	return &models.BlockedDateListResponse{BlockedDates: []models.BlockedDateResponse{{ID: 1, Date: "2026-03-24"}}}, nil
}

func TestHandle(t *testing.T) {
	t.Run("without from", func(t *testing.T) {
		svc := &fakeSchedule{}
		rec := httptest.NewRecorder()
		NewHandler(svc, cot, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/blocked-dates", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, svc.gotFrom)

		var body models.BlockedDateListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "2026-03-24", body.BlockedDates[0].Date)
	})

	t.Run("with from", func(t *testing.T) {
		svc := &fakeSchedule{}
		rec := httptest.NewRecorder()
		NewHandler(svc, cot, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/blocked-dates?from=2026-03-01", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.gotFrom)
		assert.True(t, svc.gotFrom.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, cot)))
	})

	t.Run("malformed from", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(&fakeSchedule{}, cot, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/blocked-dates?from=03/01", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("internal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(&fakeSchedule{err: errors.New("db down")}, cot, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/blocked-dates", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
