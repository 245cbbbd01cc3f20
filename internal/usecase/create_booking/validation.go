package create_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/haderrenteria13/ronald-barber/internal/availability"
	"github.com/haderrenteria13/ronald-barber/internal/domain"
	"github.com/haderrenteria13/ronald-barber/internal/integrations/whatsappbot"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("phone10", validatePhone); err != nil {
		panic(fmt.Sprintf("create_booking: register phone10 validation: %v", err))
	}
	return v
}

// validatePhone номер должен содержать ровно 10 цифр (пробелы, скобки и дефисы игнорируются)
func validatePhone(fl validator.FieldLevel) bool {
	return len(whatsappbot.DigitsOnly(fl.Field().String())) == domain.ClientPhoneDigits
}

// normalizeRequest убирает лишние пробелы и нецифровые символы из телефона
func normalizeRequest(req *Request) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.ClientPhone = whatsappbot.DigitsOnly(req.ClientPhone)
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if notes == "" {
			req.Notes = nil
		} else {
			req.Notes = &notes
		}
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: invalid fields: %s", ErrInvalidInput, strings.Join(fields, ", "))
	}

	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
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
