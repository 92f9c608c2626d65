package middleware

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimit throttles requests per client IP. It fronts the auth endpoints
// to slow credential stuffing; authenticated routes are not limited.
type RateLimit struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewRateLimit creates a limiter allowing ratePerSecond sustained requests
// with the given burst per client IP.
//
// TODO: evict idle visitor entries once the server runs long enough for
// the map to matter.
func NewRateLimit(ratePerSecond float64, burst int) *RateLimit {
	return &RateLimit{
		visitors: make(map[string]*rate.Limiter),
		rate:     rate.Limit(ratePerSecond),
		burst:    burst,
	}
}

// Handle rejects requests over the limit with 429.
func (m *RateLimit) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.limiter(c.RealIP()).Allow() {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		}
		return next(c)
	}
}

func (m *RateLimit) limiter(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, ok := m.visitors[ip]
	if !ok {
		limiter = rate.NewLimiter(m.rate, m.burst)
		m.visitors[ip] = limiter
	}
	return limiter
}
