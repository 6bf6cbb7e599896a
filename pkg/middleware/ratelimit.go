package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"showscape/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const clientIdleTTL = 5 * time.Minute

// RateLimit throttles each client IP with a token bucket of rps tokens per
// second and the given burst.
func RateLimit(rps float64, burst int, logger *zap.Logger) func(http.Handler) http.Handler {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	go func() {
		for {
			time.Sleep(clientIdleTTL)

			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) > clientIdleTTL {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			mu.Lock()
			c, ok := clients[ip]
			if !ok {
				c = &client{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
				clients[ip] = c
			}
			c.lastSeen = time.Now()
			allowed := c.limiter.Allow()
			mu.Unlock()

			if !allowed {
				logger.Warn("Rate limit exceeded",
					zap.String("ip", ip),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseTooManyRequests(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
