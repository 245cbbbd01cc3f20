package get_business_hours

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haderrenteria13/ronald-barber/internal/service/schedule/models"
	"github.com/haderrenteria13/ronald-barber/pkg/logger"
)

type fakeSchedule struct {
	week *models.WeekResponse
	err  error
}

func (f *fakeSchedule) GetWeek(context.Context) (*models.WeekResponse, error) {
	return f.week, f.err
}

func TestHandle(t *testing.T) {
	week := &models.WeekResponse{Rules: make([]models.RuleResponse, 7)}
	for i := range week.Rules {
		week.Rules[i] = models.RuleResponse{DayOfWeek: i, StartTime: "09:00", EndTime: "19:00"}
	}

	rec := httptest.NewRecorder()
	NewHandler(&fakeSchedule{week: week}, logger.NewNop()).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/business-hours", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.WeekResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Rules, 7)
}

func TestHandle_Error(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeSchedule{err: errors.New("db down")}, logger.NewNop()).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/business-hours", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
