package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCodes(t *testing.T) {
	exclusion := fmt.Errorf("insert: %w", &pq.Error{Code: "23P01"})
	unique := &pq.Error{Code: "23505"}
	fk := &pq.Error{Code: "23503"}

	assert.True(t, IsExclusionViolation(exclusion))
	assert.False(t, IsUniqueViolation(exclusion))

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsForeignKeyViolation(fk))

	assert.False(t, IsExclusionViolation(errors.New("23P01")))
	assert.False(t, IsExclusionViolation(nil))
}
