package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func TestRateLimiter_BlocksSixthAttempt(t *testing.T) {
	mw := NewRateLimiter(memory.NewStore(), RateLimitClass{
		Name:    "auth",
		Window:  15 * time.Minute,
		Max:     5,
		Message: "Too many login attempts, please try again after 15 minutes.",
	})
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 1; i <= 5; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:51234"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: status = %d, want 200", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("sixth attempt: status = %d, want 429", rec.Code)
	}
}

func TestRateLimiter_KeysByClientAddress(t *testing.T) {
	mw := NewRateLimiter(memory.NewStore(), RateLimitClass{
		Name:   "auth",
		Window: 15 * time.Minute,
		Max:    1,
	})
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:1000"
	handler.ServeHTTP(first, req)

	blocked := httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = "203.0.113.7:2000" // same host, different source port
	handler.ServeHTTP(blocked, req)
	if blocked.Code != http.StatusTooManyRequests {
		t.Fatalf("same address should share the counter, got %d", blocked.Code)
	}

	other := httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = "198.51.100.9:1000"
	handler.ServeHTTP(other, req)
	if other.Code != http.StatusOK {
		t.Fatalf("different address should not be limited, got %d", other.Code)
	}
}

func TestRateLimiter_DisabledWithoutStore(t *testing.T) {
	mw := NewRateLimiter(nil, RateLimitClass{Name: "general", Window: time.Minute, Max: 1})
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "203.0.113.7:1"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("limiter should be disabled, got %d", rec.Code)
		}
	}
}
