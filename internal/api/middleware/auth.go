package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/haderrenteria13/ronald-barber/internal/api/handlers"
)

// AdminIDHeader заголовок, который проставляет API gateway после аутентификации администратора
const AdminIDHeader = "X-Admin-ID"

const msgMissingAdminID = "se requiere autenticación de administrador"

// AdminAuth пропускает только запросы с заголовком X-Admin-ID.
// Сама аутентификация выполняется gateway, сервис доверяет заголовку.
func AdminAuth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminID := strings.TrimSpace(r.Header.Get(AdminIDHeader))
			if adminID == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, AdminIDHeader)
				handlers.RespondUnauthorized(w, msgMissingAdminID)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdminID, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
