package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("get_available_slots: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата дальше горизонта бронирования
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrScheduleMisconfigured возвращается, когда правило рабочего дня нельзя интерпретировать.
	// День не показывается открытым, пока администратор не исправит расписание.
	ErrScheduleMisconfigured = errors.New("get_available_slots: schedule is misconfigured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
