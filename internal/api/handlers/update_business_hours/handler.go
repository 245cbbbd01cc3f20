package update_business_hours

import (
	"errors"
	"net/http"

	"github.com/haderrenteria13/ronald-barber/internal/api/handlers"
	"github.com/haderrenteria13/ronald-barber/internal/api/middleware"
	"github.com/haderrenteria13/ronald-barber/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgMissingAdminID     = "se requiere autenticación de administrador"
	msgInvalidData        = "horario inválido: revisa horas de apertura, cierre y descanso"
	msgDuplicateWeekday   = "hay más de un horario para el mismo día"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/business-hours
// Заменяет расписание недели целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("PUT /admin/business-hours - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	var req UpdateBusinessHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/business-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateWeek(r.Context(), req.ToServiceRequest(adminID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrDuplicateWeekday):
			h.logger.Warn("PUT /admin/business-hours - Duplicate weekday: %v", err)
			handlers.RespondBadRequest(w, msgDuplicateWeekday)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /admin/business-hours - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /admin/business-hours - Failed to update business hours: admin=%s, error=%v", adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/business-hours - Business hours updated successfully: admin=%s", adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
