package web

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// loginLimiter throttles authentication attempts per client IP so a
// stolen password list cannot be replayed through the login form at
// full speed. Other routes are not limited: they already require a
// session.
type loginLimiter struct {
	mu      sync.Mutex
	clients map[string]*attemptWindow

	maxPerMinute int
}

type attemptWindow struct {
	start    time.Time
	attempts int
}

func newLoginLimiter(maxPerMinute int) *loginLimiter {
	return &loginLimiter{
		clients:      make(map[string]*attemptWindow),
		maxPerMinute: maxPerMinute,
	}
}

// allow counts an attempt from the given IP and reports whether it is
// within the per-minute budget. Stale windows are swept in place, no
// background goroutine needed at this scale.
func (l *loginLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for k, w := range l.clients {
		if now.Sub(w.start) > time.Minute {
			delete(l.clients, k)
		}
	}

	w, ok := l.clients[ip]
	if !ok {
		l.clients[ip] = &attemptWindow{start: now, attempts: 1}
		return true
	}
	w.attempts++
	return w.attempts <= l.maxPerMinute
}

// clientIP extracts the caller's address, preferring the first hop in
// X-Forwarded-For when a proxy fronts the server.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		for i := 0; i < len(fwd); i++ {
			if fwd[i] == ',' {
				return fwd[:i]
			}
		}
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
