package list_services

import (
	"net/http"

	"github.com/haderrenteria13/ronald-barber/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services retrieved successfully: count=%d", len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}
