package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
