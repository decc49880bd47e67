package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/nvalenti/fitweek/internal/concepts"
)

type contextKey string

// userContextKey carries the authenticated user id through the request context.
const userContextKey contextKey = "fitweek.user"

// SessionCookie is the name of the session cookie issued on login.
const SessionCookie = "fitweek_session"

// UserID returns the authenticated user id injected by [WithSession], or
// false when the request is anonymous.
func UserID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(userContextKey).(string)
	return id, ok && id != ""
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// WithLogging logs method, path, status, and duration for every request.
func WithLogging(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}

// WithRateLimit applies a token-bucket limit per client address. Clients over
// the limit receive 429 responses until their bucket refills.
func WithRateLimit(rps float64, burst int) Middleware {
	if burst < 1 {
		burst = 1
	}

	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(addr string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		l, ok := limiters[addr]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[addr] = l
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !limiterFor(host).Allow() {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithSession resolves the session cookie to a user id and injects it into
// the request context. Anonymous and expired sessions pass through without a
// user id; handlers that require auth reject those requests themselves.
func WithSession(sessions *concepts.Sessioning) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err == nil && cookie.Value != "" {
				if userID, err := sessions.Resolve(cookie.Value); err == nil {
					ctx := context.WithValue(r.Context(), userContextKey, userID)
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
