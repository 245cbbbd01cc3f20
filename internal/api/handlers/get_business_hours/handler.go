package get_business_hours

import (
	"net/http"

	"github.com/haderrenteria13/ronald-barber/internal/api/handlers"
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

// Handle GET /api/v1/admin/business-hours
// Всегда возвращает семь дней; дни без настроек отдаются нерабочими
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetWeek(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/business-hours - Failed to get business hours: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/business-hours - Business hours retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}
