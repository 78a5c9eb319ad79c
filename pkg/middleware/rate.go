// Package middleware holds the HTTP middleware stack: authentication, CORS,
// request logging, panic recovery and per-client rate limiting.
package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/stockroom/pkg/response"
)

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter allows max requests per client IP in each fixed window.
type RateLimiter struct {
	max    int
	period time.Duration
	now    func() time.Time

	mu        sync.Mutex
	clients   map[string]*window
	nextSweep time.Time
}

func NewRateLimiter(max int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		max:     max,
		period:  period,
		now:     time.Now,
		clients: map[string]*window{},
	}
}

// Allow counts one request from key and reports whether it is within the
// limit, and when the window resets.
func (l *RateLimiter) Allow(key string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextSweep) {
		for k, w := range l.clients {
			if now.After(w.resetAt) {
				delete(l.clients, k)
			}
		}
		l.nextSweep = now.Add(l.period)
	}

	w, ok := l.clients[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.period)}
		l.clients[key] = w
	}
	w.count++
	return w.count <= l.max, w.resetAt
}

// Handler rejects over-limit clients with 429. A non-positive max disables it.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	if l.max <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, reset := l.Allow(clientIP(r))
		if !ok {
			retry := int(time.Until(reset).Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the first X-Forwarded-For hop, or the peer address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
