package delete_blocked_date

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/haderrenteria13/ronald-barber/internal/api/handlers"
	"github.com/haderrenteria13/ronald-barber/internal/api/middleware"
	"github.com/haderrenteria13/ronald-barber/internal/domain"
	"github.com/haderrenteria13/ronald-barber/internal/service/schedule"
)

const (
	msgMissingAdminID = "se requiere autenticación de administrador"
	msgInvalidDate    = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgNotFound       = "la fecha no está bloqueada"
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

// Handle DELETE /api/v1/admin/blocked-dates/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /admin/blocked-dates/{date} - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	dateStr := mux.Vars(r)["date"]
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, h.location)
	if err != nil {
		h.logger.Warn("DELETE /admin/blocked-dates/{date} - Invalid date: %q", dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.UnblockDate(r.Context(), date, adminID); err != nil {
		if errors.Is(err, schedule.ErrBlockedDateNotFound) {
			h.logger.Warn("DELETE /admin/blocked-dates/{date} - Date not blocked: date=%s", dateStr)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("DELETE /admin/blocked-dates/{date} - Failed to unblock date: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/blocked-dates/{date} - Date unblocked successfully: date=%s, admin=%s", dateStr, adminID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
