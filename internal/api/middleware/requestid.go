package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader заголовок сквозного идентификатора запроса
const requestIDHeader = "X-Request-ID"

const requestIDKey contextKey = "requestID"

// RequestID проставляет сквозной идентификатор запроса.
// Входящий X-Request-ID сохраняется, при отсутствии генерируется новый.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID извлекает идентификатор запроса из контекста
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}
