package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ulule/limiter/v3"
)

// RateLimitClass configures one sliding-window limiter shared by a route
// class (general, auth, upload, stamp creation). Requests are keyed by
// client IP; chi's RealIP middleware must run first so RemoteAddr is usable.
type RateLimitClass struct {
	// Name keys the counters so classes backed by the same store do not
	// interfere.
	Name    string
	Window  time.Duration
	Max     int64
	Message string
}

// NewRateLimiter returns middleware enforcing the class limit against the
// given store (in-memory, or redis for a distributed limiter). A nil store
// disables limiting for the class.
func NewRateLimiter(store limiter.Store, class RateLimitClass) func(next http.Handler) http.Handler {
	if store == nil || class.Max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	instance := limiter.New(store, limiter.Rate{Period: class.Window, Limit: class.Max})
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := class.Name + ":" + clientIP(r)
			lctx, err := instance.Get(r.Context(), key)
			if err != nil {
				// A broken limiter store should not take the API down.
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))
			if lctx.Reached {
				writeErr(w, http.StatusTooManyRequests, class.Message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
