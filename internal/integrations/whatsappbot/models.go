package whatsappbot

import "time"

// SendMessageRequest тело запроса POST /enviar-mensaje
type SendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ErrorResponse модель ошибки от бота
type ErrorResponse struct {
	Error string `json:"error"`
}

// Confirmation данные для сообщения о подтвержденной записи
type Confirmation struct {
	ClientName  string
	ClientPhone string
	ServiceName string
	StartTime   time.Time // в часовом поясе барбершопа
}
