package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/velikhov/CSP-BookingService/internal/api/handlers"
)

// userIDHeader заголовок с идентификатором пользователя, проставляется gateway
const userIDHeader = "X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

// Auth проверяет наличие X-User-ID и кладёт его в контекст запроса.
// Без заголовка запрос отклоняется с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает идентификатор пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
