package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается, когда дата записи в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата дальше горизонта бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrDayClosed возвращается, когда барбершоп закрыт в этот день
	ErrDayClosed = errors.New("create_booking: shop is closed on this date")

	// ErrSlotNotAvailable возвращается, когда выбранное время больше не свободно
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrScheduleMisconfigured возвращается, когда правило рабочего дня нельзя интерпретировать
	ErrScheduleMisconfigured = errors.New("create_booking: schedule is misconfigured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
