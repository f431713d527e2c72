package server

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"stock-ticker/src/helpers"
	"stock-ticker/src/logger"
)

const RequestIDHeader = "X-Request-ID"

// -----------------------------------------------------------------------------

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// -----------------------------------------------------------------------------

func accessLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Zerolog().Info().
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// -----------------------------------------------------------------------------

func recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// -----------------------------------------------------------------------------
// Rate limiting
// -----------------------------------------------------------------------------

// RateLimiter keeps one token bucket per client IP; idle buckets expire.
type RateLimiter struct {
	clients *cache.Cache
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
}

func NewRateLimiter(requestsPerMinute float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients: cache.New(10*time.Minute, 20*time.Minute),
		limit:   rate.Limit(requestsPerMinute / 60),
		burst:   burst,
	}
}

// -----------------------------------------------------------------------------

// Allow reports whether the client may spend one more request now.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	var limiter *rate.Limiter
	if v, ok := rl.clients.Get(clientIP); ok {
		limiter = v.(*rate.Limiter)
	} else {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
	}
	rl.clients.Set(clientIP, limiter, cache.DefaultExpiration)

	return limiter.Allow()
}

// -----------------------------------------------------------------------------

// RetryAfterSeconds is the time until one token refills.
func (rl *RateLimiter) RetryAfterSeconds() int {
	if rl.limit <= 0 {
		return 60
	}
	return int(math.Ceil(1/float64(rl.limit) - 1e-9))
}

// -----------------------------------------------------------------------------

// rateLimit guards quota-spending routes; page routes get the HTML error page.
func (s *WebServer) rateLimit(page bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter == nil || s.limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		s.Logger.Warning("rate limit exceeded for %s on %s", c.ClientIP(), c.Request.URL.Path)
		c.Header("Retry-After", strconv.Itoa(s.limiter.RetryAfterSeconds()))

		if page {
			c.HTML(http.StatusTooManyRequests, "error.html", gin.H{
				"Reason":  helpers.ReasonRateLimited,
				"Message": errorMessage(helpers.ReasonRateLimited),
			})
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":  "rate limit exceeded",
			"reason": helpers.ReasonRateLimited,
		})
	}
}
