package create_booking

import (
	"errors"
	"net/http"

	"github.com/haderrenteria13/ronald-barber/internal/api/handlers"
	"github.com/haderrenteria13/ronald-barber/internal/api/middleware"
	createBooking "github.com/haderrenteria13/ronald-barber/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "cuerpo de la solicitud inválido"
	msgInvalidStartTime      = "formato de hora inválido, se espera RFC3339"
	msgInvalidInput          = "revisa los datos: nombre obligatorio y teléfono de 10 dígitos"
	msgServiceNotFound       = "servicio no encontrado"
	msgInvalidBookingDate    = "la hora seleccionada ya pasó"
	msgDateTooFar            = "la fecha está demasiado lejos en el futuro"
	msgDayClosed             = "la barbería está cerrada en la fecha seleccionada"
	msgSlotNotAvailable      = "el horario seleccionado ya no está disponible"
	msgScheduleMisconfigured = "el horario de atención de este día está mal configurado"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: request_id=%s, error=%v", requestID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid start time: request_id=%s, error=%v", requestID, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: request_id=%s, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: request_id=%s, service_id=%d", requestID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Start time in the past: request_id=%s, start=%s", requestID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: request_id=%s, start=%s", requestID, req.StartTime)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrDayClosed):
			h.logger.Warn("POST /bookings - Shop closed: request_id=%s, start=%s", requestID, req.StartTime)
			handlers.RespondConflict(w, msgDayClosed)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: request_id=%s, service_id=%d, start=%s",
				requestID, req.ServiceID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrScheduleMisconfigured):
			h.logger.Error("POST /bookings - Schedule misconfigured: request_id=%s, error=%v", requestID, err)
			handlers.RespondUnprocessable(w, msgScheduleMisconfigured)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: request_id=%s, service_id=%d, error=%v",
				requestID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: request_id=%s, appointment_id=%d, start=%s, notification_sent=%t",
		requestID, result.ID, response.StartTime, result.NotificationSent)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
