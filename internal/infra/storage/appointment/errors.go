package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с подтвержденной записью
	// (нарушение ограничения appointments_no_overlap)
	ErrSlotNotAvailable = errors.New("appointment.repository: slot not available")

	// ErrServiceNotFound возвращается, когда запись ссылается на несуществующую услугу
	ErrServiceNotFound = errors.New("appointment.repository: service not found")

	// ErrCannotCancel возвращается, когда запись уже не в статусе confirmed
	ErrCannotCancel = errors.New("appointment.repository: appointment cannot be cancelled")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
