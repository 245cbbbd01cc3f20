package get_available_slots

import (
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
	getAvailableSlots "github.com/haderrenteria13/ronald-barber/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	ServiceID       int64           `json:"serviceId"`
	ServiceName     string          `json:"serviceName"`
	DurationMinutes int             `json:"durationMinutes"`
	DayClosed       bool            `json:"dayClosed"`
	Morning         []AvailableSlot `json:"morning"`
	Afternoon       []AvailableSlot `json:"afternoon"`
}

// AvailableSlot свободное время начала
type AvailableSlot struct {
	StartTime string `json:"startTime"` // RFC3339 со смещением часового пояса барбершопа
	Time      string `json:"time"`      // HH:MM для отображения
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		DayClosed:       resp.DayClosed,
		Morning:         toSlots(resp.Morning),
		Afternoon:       toSlots(resp.Afternoon),
	}
}

func toSlots(starts []time.Time) []AvailableSlot {
	slots := make([]AvailableSlot, len(starts))
	for i, start := range starts {
		slots[i] = AvailableSlot{
			StartTime: start.Format(time.RFC3339),
			Time:      start.Format(domain.TimeFormat),
		}
	}
	return slots
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
