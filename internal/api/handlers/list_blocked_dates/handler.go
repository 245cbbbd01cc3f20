package list_blocked_dates

import (
	"net/http"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/api/handlers"
	"github.com/haderrenteria13/ronald-barber/internal/domain"
)

const msgInvalidFrom = "formato de fecha inválido, se espera YYYY-MM-DD"

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

// Handle GET /api/v1/admin/blocked-dates
// Query params: from (опционально, YYYY-MM-DD; по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var from *time.Time
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, fromStr, h.location)
		if err != nil {
			h.logger.Warn("GET /admin/blocked-dates - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = &parsed
	}

	result, err := h.service.ListBlockedDates(r.Context(), from)
	if err != nil {
		h.logger.Error("GET /admin/blocked-dates - Failed to list blocked dates: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/blocked-dates - Blocked dates retrieved successfully: count=%d", len(result.BlockedDates))
	handlers.RespondJSON(w, http.StatusOK, result)
}
