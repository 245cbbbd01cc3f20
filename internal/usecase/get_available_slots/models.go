package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата (время суток игнорируется)
}

// Response модель ответа со свободными слотами дня
type Response struct {
	Date            time.Time   // День в часовом поясе барбершопа
	ServiceID       int64       // ID услуги
	ServiceName     string      // Название услуги
	DurationMinutes int         // Длительность услуги
	DayClosed       bool        // День закрыт (выходной или заблокированная дата)
	Morning         []time.Time // Слоты до 12:00
	Afternoon       []time.Time // Слоты с 12:00
}
