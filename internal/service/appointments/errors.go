package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrCannotCancel возвращается, когда запись не может быть отменена
	ErrCannotCancel = errors.New("appointments: appointment cannot be cancelled")

	// ErrInvalidStatus возвращается при неизвестном статусе в фильтре
	ErrInvalidStatus = errors.New("appointments: invalid appointment status")

	// ErrInvalidTimeRange возвращается, когда начало периода не раньше конца
	ErrInvalidTimeRange = errors.New("appointments: invalid time range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
