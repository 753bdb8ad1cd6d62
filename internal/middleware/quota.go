package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Quota limits assistant calls with a fixed-window counter in Redis, keyed
// by user id when the caller is signed in and by IP otherwise.
type Quota struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func NewQuota(redisClient *redis.Client, limit int, window time.Duration) *Quota {
	return &Quota{redis: redisClient, limit: limit, window: window}
}

func (q *Quota) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if id := GetUserID(r.Context()); id != uuid.Nil {
			key = id.String()
		}
		rkey := fmt.Sprintf("quota:assistant:%s", key)

		count, err := q.redis.Incr(r.Context(), rkey).Result()
		if err != nil {
			// Fail open when Redis is unreachable.
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			q.redis.Expire(r.Context(), rkey, q.window)
		}

		if count > int64(q.limit) {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
