package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdle = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter allows perMinute requests per client IP with bursts of the
// same size.
type RateLimiter struct {
	mu        sync.Mutex
	perMinute int
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		perMinute: perMinute,
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *RateLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdle {
		for ip, v := range l.visitors {
			if now.Sub(v.lastSeen) > limiterIdle {
				delete(l.visitors, ip)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[client]
	if !ok {
		every := rate.Every(time.Minute / time.Duration(l.perMinute))
		v = &visitor{limiter: rate.NewLimiter(every, l.perMinute)}
		l.visitors[client] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", strconv.Itoa(l.retryAfter()))
			writeError(c, http.StatusTooManyRequests, codeRateLimited,
				"Rate limit exceeded: "+strconv.Itoa(l.perMinute)+" per 1 minute")
			return
		}
		c.Next()
	}
}

// retryAfter is the refill interval of one token in whole seconds, at least 1.
func (l *RateLimiter) retryAfter() int {
	secs := int((time.Minute / time.Duration(l.perMinute)).Seconds() + 0.5)
	if secs < 1 {
		return 1
	}
	return secs
}
