package middleware

import (
	"sync"
	"time"

	"jobmate/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"
)

const limiterSweepInterval = 5 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware keeps one token bucket per client IP. A background
// sweep drops buckets idle for longer than the sweep interval, leaving
// active clients throttled.
type RateLimitMiddleware struct {
	limiters map[string]*clientLimiter
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
	stop     chan struct{}
}

func NewRateLimitMiddleware(rps, burst int) *RateLimitMiddleware {
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = rps * 2
	}
	m := &RateLimitMiddleware{
		limiters: make(map[string]*clientLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		stop:     make(chan struct{}),
	}
	go m.sweepLoop()
	return m
}

// Stop ends the background sweep. The middleware keeps serving requests.
func (m *RateLimitMiddleware) Stop() {
	close(m.stop)
}

func (m *RateLimitMiddleware) sweepLoop() {
	t := time.NewTicker(limiterSweepInterval)
	defer t.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-t.C:
			m.sweep(time.Now())
		}
	}
}

func (m *RateLimitMiddleware) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, e := range m.limiters {
		if now.Sub(e.lastSeen) > limiterSweepInterval {
			delete(m.limiters, key)
		}
	}
}

func (m *RateLimitMiddleware) limiter(key string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.limiters[key]
	if !ok {
		e = &clientLimiter{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.limiters[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if !m.limiter(c.IP()).Allow() {
			return response.Error(c, fiber.StatusTooManyRequests, response.MessageTooManyRequests, nil)
		}
		return c.Next()
	}
}
