package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Raiyyanpatel/PrepVerse/internal/common"

	"github.com/redis/go-redis/v9"
)

// JudgeRateLimiter caps judge-endpoint calls per identity in a fixed
// one-minute window. Every allowed call costs a real engine run, so the cap
// sits in front of the evaluators; the judging core itself stays stateless.
func JudgeRateLimiter(rdb *redis.Client, perMinute int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if perMinute <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			identity, ok := GetUserIDFromContext(r.Context())
			if !ok {
				identity = r.RemoteAddr
			}

			window := time.Now().Unix() / 60
			key := fmt.Sprintf("judge_rate:%s:%d", identity, window)

			count, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				// Fail open: an unreachable limiter must not take the
				// judge down with it.
				slog.Warn("rate limiter unavailable, allowing request", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(r.Context(), key, 2*time.Minute)
			}
			if count > int64(perMinute) {
				common.RespondWithError(w, http.StatusTooManyRequests, common.ErrRateLimited.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
