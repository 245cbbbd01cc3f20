package create_blocked_date

import (
	"errors"
	"net/http"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/api/handlers"
	"github.com/haderrenteria13/ronald-barber/internal/api/middleware"
	"github.com/haderrenteria13/ronald-barber/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgMissingAdminID     = "se requiere autenticación de administrador"
	msgInvalidDate        = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgInvalidData        = "datos inválidos: el motivo admite hasta 200 caracteres"
	msgDateInPast         = "no se puede bloquear una fecha pasada"
	msgAlreadyBlocked     = "la fecha ya está bloqueada"
)

type Handler struct {
	service  ScheduleService
	location *time.Location
	logger   Logger
}

func NewHandler(service ScheduleService, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/admin/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/blocked-dates - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	var req CreateBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(adminID, h.location)
	if err != nil {
		h.logger.Warn("POST /admin/blocked-dates - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.BlockDate(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrDateAlreadyBlocked):
			h.logger.Warn("POST /admin/blocked-dates - Date already blocked: date=%s", req.Date)
			handlers.RespondConflict(w, msgAlreadyBlocked)

		case errors.Is(err, schedule.ErrDateInPast):
			h.logger.Warn("POST /admin/blocked-dates - Date in the past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/blocked-dates - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /admin/blocked-dates - Failed to block date: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blocked-dates - Date blocked successfully: date=%s, admin=%s", result.Date, adminID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
