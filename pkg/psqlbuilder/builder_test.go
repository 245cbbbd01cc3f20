package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "name").
		From("services").
		Where(squirrel.Eq{"id": 7}).
		Where(squirrel.Gt{"price": 10}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM services WHERE id = $1 AND price > $2", query)
	assert.Equal(t, []interface{}{7, 10}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("appointments").
		Set("status", "cancelled").
		Where(squirrel.Eq{"id": int64(3)}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE appointments SET status = $1 WHERE id = $2", query)
	assert.Equal(t, []interface{}{"cancelled", int64(3)}, args)
}
