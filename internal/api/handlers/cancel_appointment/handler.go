package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/haderrenteria13/ronald-barber/internal/api/handlers"
	"github.com/haderrenteria13/ronald-barber/internal/api/middleware"
	"github.com/haderrenteria13/ronald-barber/internal/service/appointments"
	"github.com/haderrenteria13/ronald-barber/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "ID de cita inválido"
	msgMissingAdminID       = "se requiere autenticación de administrador"
	msgNotFound             = "cita no encontrada"
	msgCannotCancel         = "la cita ya fue cancelada"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем appointmentId из URL
	appointmentIDStr := mux.Vars(r)["appointmentId"]
	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil || appointmentID <= 0 {
		h.logger.Warn("PATCH /admin/appointments/{id}/cancel - Invalid appointment ID: %q", appointmentIDStr)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/appointments/{id}/cancel - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	result, err := h.service.Cancel(r.Context(), &models.CancelAppointmentRequest{
		AdminID:       adminID,
		AppointmentID: appointmentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /admin/appointments/{id}/cancel - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrCannotCancel):
			h.logger.Warn("PATCH /admin/appointments/{id}/cancel - Cannot cancel: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /admin/appointments/{id}/cancel - Failed to cancel appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/{id}/cancel - Appointment cancelled successfully: appointment_id=%d, admin=%s",
		appointmentID, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
