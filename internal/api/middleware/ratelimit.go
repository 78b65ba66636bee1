package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/velikhov/CSP-BookingService/internal/api/handlers"
)

// limiterTTL время жизни неиспользуемого лимитера до удаления из карты
const limiterTTL = 10 * time.Minute

// userLimiter лимитер одного пользователя с отметкой последнего обращения
type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов отдельно по каждому пользователю.
// Карта лимитеров процесс-локальная: при нескольких инстансах сервиса
// совокупный лимит масштабируется вместе с числом инстансов.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*userLimiter
	rps      rate.Limit
	burst    int
	stopCh   chan struct{}
}

// NewRateLimiter создает rate limiter и запускает фоновую очистку
// лимитеров неактивных пользователей
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[int64]*userLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Middleware отклоняет запросы сверх лимита с 429.
// Должен стоять после Auth: лимит считается по userID из контекста.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, "отсутствует ID пользователя")
			return
		}

		if !rl.allow(userID) {
			handlers.RespondError(w, http.StatusTooManyRequests, "слишком много запросов, попробуйте позже")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Stop останавливает фоновую очистку
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *RateLimiter) allow(userID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	ul, ok := rl.limiters[userID]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.limiters[userID] = ul
	}
	ul.lastSeen = time.Now()

	return ul.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(limiterTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-limiterTTL)
	for userID, ul := range rl.limiters {
		if ul.lastSeen.Before(cutoff) {
			delete(rl.limiters, userID)
		}
	}
}
