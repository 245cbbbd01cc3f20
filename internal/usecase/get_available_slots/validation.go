package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/haderrenteria13/ronald-barber/internal/availability"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// mapEngineError переводит ошибки движка в ошибки usecase
func mapEngineError(err error) error {
	switch {
	case errors.Is(err, availability.ErrDateInPast):
		return ErrInvalidDate
	case errors.Is(err, availability.ErrDateTooFarInFuture):
		return fmt.Errorf("%w: %v", ErrDateTooFarInFuture, err)
	case errors.Is(err, availability.ErrConfig):
		return fmt.Errorf("%w: %v", ErrScheduleMisconfigured, err)
	case errors.Is(err, availability.ErrInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
