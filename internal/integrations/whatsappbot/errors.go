package whatsappbot

import "errors"

var (
	// ErrInvalidPhone возвращается, когда в номере нет ни одной цифры
	ErrInvalidPhone = errors.New("whatsappbot client: phone has no digits")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("whatsappbot client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе бота
	ErrInvalidResponse = errors.New("whatsappbot client: invalid response")

	// ErrServiceDegraded возвращается, когда бот недоступен.
	// Запись при этом остается подтвержденной, теряется только уведомление.
	ErrServiceDegraded = errors.New("whatsappbot unavailable: confirmation not delivered")
)
