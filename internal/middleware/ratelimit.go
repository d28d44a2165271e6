package middleware

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
)

const CodeRateLimited = "RateLimited"

// Limiter decides whether one more request for key fits the budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// --------------------------------------------------
// Redis fixed window
// --------------------------------------------------

var fixedWindowScript = redis.NewScript(`
	local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return { current, redis.call('PTTL', KEYS[1]) }
`)

// RedisLimiter counts requests per key in fixed windows shared by every
// instance of the API.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, prefix: "ratelimit"}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Result()
	if err != nil {
		return false, 0, err
	}

	vals, ok := res.([]any)
	if !ok || len(vals) != 2 {
		return false, 0, fmt.Errorf("ratelimit: unexpected script result %#v", res)
	}
	count, _ := vals[0].(int64)
	ttl, _ := vals[1].(int64)

	if count > int64(l.limit) {
		return false, time.Duration(ttl) * time.Millisecond, nil
	}
	return true, 0, nil
}

// --------------------------------------------------
// In-process token bucket
// --------------------------------------------------

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// LocalLimiter keeps one token bucket per key in memory. Buckets idle for
// longer than three windows are dropped on access.
type LocalLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	r       rate.Limit
	burst   int
	idle    time.Duration
}

func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		buckets: make(map[string]*bucket),
		r:       rate.Every(window / time.Duration(max(limit, 1))),
		burst:   max(limit, 1),
		idle:    3 * window,
	}
}

func (l *LocalLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for k, b := range l.buckets {
		if now.Sub(b.seen) > l.idle {
			delete(l.buckets, k)
		}
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.r, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now

	r := b.lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay, nil
	}
	return true, 0, nil
}

// --------------------------------------------------
// Middleware
// --------------------------------------------------

// RateLimit applies primary, falling back to fallback when primary errors.
// Either may be nil. Keys are the authenticated user, or the client IP.
func RateLimit(primary Limiter, fallback Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + ":" + rateKey(c)

		allowed, retry, err := true, time.Duration(0), error(nil)
		if primary != nil {
			allowed, retry, err = primary.Allow(c.Request.Context(), key)
		}
		if (primary == nil || err != nil) && fallback != nil {
			if err != nil {
				log.Printf("ratelimit: primary limiter failed, using fallback: %v", err)
			}
			allowed, retry, err = fallback.Allow(c.Request.Context(), key)
		}
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			secs := int(math.Ceil(retry.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(secs, 1)))
			httperr.Abort(c, http.StatusTooManyRequests, CodeRateLimited, "too many requests")
			return
		}
		c.Next()
	}
}

func rateKey(c *gin.Context) string {
	if id := UserID(c); id != 0 {
		return "user:" + strconv.FormatUint(uint64(id), 10)
	}
	return "ip:" + c.ClientIP()
}
