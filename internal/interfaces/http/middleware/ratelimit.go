package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client key. A bucket holds limit
// tokens and refills at limit per window.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*client
	limit    int
	window   time.Duration
	every    rate.Limit
	idleTTL  time.Duration
	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter and starts its idle-client sweeper.
// Call Stop to end the sweeper.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		every:   rate.Limit(float64(limit) / window.Seconds()),
		idleTTL: window * 2,
		stop:    make(chan struct{}),
		now:     time.Now,
	}
	go rl.cleanup()
	return rl
}

// Stop ends the background sweeper
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for key, c := range rl.clients {
		if now.Sub(c.lastSeen) > rl.idleTTL {
			delete(rl.clients, key)
		}
	}
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	c, ok := rl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.every, rl.limit)}
		rl.clients[key] = c
	}
	c.lastSeen = rl.now()
	return c.limiter
}

// Allow reports whether a request for key may proceed, consuming a token
func (rl *RateLimiter) Allow(key string) bool {
	return rl.get(key).AllowN(rl.now(), 1)
}

// Remaining returns the whole tokens left for key
func (rl *RateLimiter) Remaining(key string) int {
	n := int(rl.get(key).TokensAt(rl.now()))
	if n < 0 {
		return 0
	}
	return n
}

// Limit returns the bucket size
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// RateLimit limits requests per client IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string { return c.ClientIP() })
}

// RateLimitByKey returns a rate limiting middleware with a custom key extractor
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)

		if !limiter.Allow(key) {
			c.Header("Retry-After", strconv.Itoa(int(limiter.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
				c.GetString(RequestIDKey),
			))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))

		c.Next()
	}
}
