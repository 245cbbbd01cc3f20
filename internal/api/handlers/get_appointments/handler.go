package get_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/api/handlers"
	"github.com/haderrenteria13/ronald-barber/internal/api/middleware"
	"github.com/haderrenteria13/ronald-barber/internal/service/appointments"
)

const (
	msgMissingAdminID = "se requiere autenticación de administrador"
	msgInvalidParams  = "parámetros de consulta inválidos"
	msgInvalidStatus  = "estado inválido, se espera confirmed o cancelled"
	msgInvalidRange   = "el inicio del periodo debe ser anterior al final"
)

type Handler struct {
	service  AppointmentService
	location *time.Location
	logger   Logger
}

func NewHandler(service AppointmentService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/appointments
// Query params: from, to, status, upcoming (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем adminID из контекста (через middleware AdminAuth)
	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/appointments - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		adminID,
		query.Get("from"),
		query.Get("to"),
		query.Get("status"),
		query.Get("upcoming"),
		h.location,
	)
	if err != nil {
		h.logger.Warn("GET /admin/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("GET /admin/appointments - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrInvalidTimeRange):
			h.logger.Warn("GET /admin/appointments - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /admin/appointments - Failed to list appointments: admin=%s, error=%v", adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/appointments - Appointments retrieved successfully: admin=%s, count=%d",
		adminID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
