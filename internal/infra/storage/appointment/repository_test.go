package appointment

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
)

func TestBuildFilterQuery(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("single day inside transaction locks rows", func(t *testing.T) {
		query, args, err := buildFilterQuery(domain.DayFilter(day), true)
		require.NoError(t, err)

		assert.Contains(t, query, "a.end_time > $1")
		assert.Contains(t, query, "a.start_time < $2")
		assert.NotContains(t, query, "a.start_time >=")
		assert.Contains(t, query, "a.status = $3")
		assert.True(t, strings.HasSuffix(query, "FOR UPDATE OF a"))
		assert.Equal(t, []interface{}{day, day.AddDate(0, 0, 1), domain.StatusConfirmed}, args)
	})

	t.Run("single day outside transaction", func(t *testing.T) {
		query, _, err := buildFilterQuery(domain.DayFilter(day), false)
		require.NoError(t, err)
		assert.NotContains(t, query, "FOR UPDATE")
	})

	t.Run("period is never locked", func(t *testing.T) {
		to := day.AddDate(0, 0, 7)
		query, args, err := buildFilterQuery(domain.AppointmentsFilter{From: &day, To: &to}, true)
		require.NoError(t, err)

		assert.NotContains(t, query, "FOR UPDATE")
		assert.NotContains(t, query, "a.status =")
		assert.Contains(t, query, "a.start_time >= $1")
		assert.NotContains(t, query, "a.end_time >")
		assert.Len(t, args, 2)
	})

	t.Run("no filter", func(t *testing.T) {
		query, args, err := buildFilterQuery(domain.AppointmentsFilter{}, false)
		require.NoError(t, err)

		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, "ORDER BY a.start_time ASC, a.id ASC")
		assert.Empty(t, args)
	})
}
