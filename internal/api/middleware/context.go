package middleware

import "context"

type ctxKey int

const (
	ctxKeyAdminID ctxKey = iota
	ctxKeyRequestID
)

// GetAdminID возвращает ID администратора, проставленный AdminAuth
func GetAdminID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyAdminID).(string)
	return id, ok && id != ""
}

// GetRequestID возвращает ID запроса, проставленный RequestID
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}
