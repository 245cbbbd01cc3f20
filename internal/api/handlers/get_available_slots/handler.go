package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/haderrenteria13/ronald-barber/internal/api/handlers"
	getAvailableSlots "github.com/haderrenteria13/ronald-barber/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID      = "ID de servicio inválido"
	msgMissingDate           = "la fecha es obligatoria"
	msgInvalidDate           = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgServiceNotFound       = "servicio no encontrado"
	msgDateInPast            = "la fecha ya pasó"
	msgDateTooFar            = "la fecha está demasiado lejos en el futuro"
	msgScheduleMisconfigured = "el horario de atención de este día está mal configurado"
	msgInvalidInput          = "datos de la solicitud inválidos"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем serviceId из URL
	serviceIDStr := mux.Vars(r)["serviceId"]
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid service ID: %q", serviceIDStr)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /services/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /services/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /services/{id}/available-slots - Date in the past: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /services/{id}/available-slots - Date too far in future: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrScheduleMisconfigured):
			h.logger.Error("GET /services/{id}/available-slots - Schedule misconfigured: date=%s, error=%v", dateStr, err)
			handlers.RespondUnprocessable(w, msgScheduleMisconfigured)

		default:
			h.logger.Error("GET /services/{id}/available-slots - Failed to get slots: service_id=%d, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /services/{id}/available-slots - Slots retrieved successfully: service_id=%d, date=%s, morning=%d, afternoon=%d",
		serviceID, dateStr, len(result.Morning), len(result.Afternoon))
	handlers.RespondJSON(w, http.StatusOK, response)
}
