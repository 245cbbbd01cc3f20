package create_booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator_RegistersPhoneRule(t *testing.T) {
	require.NotPanics(t, func() { newValidator() })

	v := newValidator()
	type phoneOnly struct {
		Phone string `validate:"phone10"`
	}

	assert.NoError(t, v.Struct(phoneOnly{Phone: "(300) 123-4567"}))
	assert.Error(t, v.Struct(phoneOnly{Phone: "300 123 456"}))
}

func TestValidateRequest_ReportsFields(t *testing.T) {
	req := validRequest()
	req.ClientPhone = "12345"
	normalizeRequest(req)

	err := validateRequest(req)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "ClientPhone (phone10)")
}
