package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

// Response ответ проверки состояния
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type Handler struct {
	checks map[string]Check
	logger Logger
}

// NewHandler создает handler проверок. checks может быть пустым
func NewHandler(checks map[string]Check, logger Logger) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Live GET /healthz
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{Status: "ok"})
}

// Ready GET /readyz
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := Response{Status: "ok", Checks: make(map[string]string, len(names))}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.Warn("GET /readyz - %s is not ready: %v", name, err)
			resp.Status = "unavailable"
			resp.Checks[name] = err.Error()
			continue
		}
		resp.Checks[name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	handlers.RespondJSON(w, status, resp)
}
