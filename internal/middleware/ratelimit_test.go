package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func newTestRateLimiter(t *testing.T, config RateLimiterConfig) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(config)
	t.Cleanup(rl.Stop)
	return rl
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGeneralMiddleware_AllowsWithinLimit(t *testing.T) {
	rl := newTestRateLimiter(t, DefaultRateLimiterConfig())
	handler := rl.GeneralMiddleware()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/playlists", nil)
	req = req.WithContext(ContextWithUserID(req.Context(), "user-123"))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestGeneralMiddleware_WithoutUserID_Returns401(t *testing.T) {
	rl := newTestRateLimiter(t, DefaultRateLimiterConfig())
	handler := rl.GeneralMiddleware()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/playlists", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestGeneralMiddleware_ExceedsLimit_Returns429(t *testing.T) {
	config := DefaultRateLimiterConfig()
	config.GeneralRate = rate.Limit(1)
	config.GeneralBurst = 2
	rl := newTestRateLimiter(t, config)
	handler := rl.GeneralMiddleware()(okHandler())

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/playlists", nil)
		req = req.WithContext(ContextWithUserID(req.Context(), "user-123"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		last = w.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("3rd request status = %d, want %d", last, http.StatusTooManyRequests)
	}
}

func TestGeneralMiddleware_LimitsPerUser(t *testing.T) {
	config := DefaultRateLimiterConfig()
	config.GeneralRate = rate.Limit(1)
	config.GeneralBurst = 1
	rl := newTestRateLimiter(t, config)
	handler := rl.GeneralMiddleware()(okHandler())

	// user-aの上限を使い切る
	reqA := httptest.NewRequest(http.MethodGet, "/playlists", nil)
	reqA = reqA.WithContext(ContextWithUserID(reqA.Context(), "user-a"))
	handler.ServeHTTP(httptest.NewRecorder(), reqA)

	// user-bは独立したリミッターを持つ
	reqB := httptest.NewRequest(http.MethodGet, "/playlists", nil)
	reqB = reqB.WithContext(ContextWithUserID(reqB.Context(), "user-b"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, reqB)

	if w.Code != http.StatusOK {
		t.Errorf("user-b status = %d, want %d", w.Code, http.StatusOK)
	}

	if count := rl.GeneralLimiterCount(); count != 2 {
		t.Errorf("GeneralLimiterCount() = %d, want 2", count)
	}
}

func TestCredentialMiddleware_ExceedsLimit_Returns429(t *testing.T) {
	config := DefaultRateLimiterConfig()
	config.CredentialRate = rate.Limit(0.1)
	config.CredentialBurst = 1
	rl := newTestRateLimiter(t, config)
	handler := rl.CredentialMiddleware()(okHandler())

	req1 := httptest.NewRequest(http.MethodPost, "/authentications", nil)
	req1.RemoteAddr = "203.0.113.1:50000"
	handler.ServeHTTP(httptest.NewRecorder(), req1)

	req2 := httptest.NewRequest(http.MethodPost, "/authentications", nil)
	req2.RemoteAddr = "203.0.113.1:50001"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req2)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("2nd request status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429 response")
	}
}

func TestCredentialMiddleware_IndependentPerIP(t *testing.T) {
	config := DefaultRateLimiterConfig()
	config.CredentialRate = rate.Limit(0.1)
	config.CredentialBurst = 1
	rl := newTestRateLimiter(t, config)
	handler := rl.CredentialMiddleware()(okHandler())

	req1 := httptest.NewRequest(http.MethodPost, "/users", nil)
	req1.RemoteAddr = "203.0.113.1:50000"
	handler.ServeHTTP(httptest.NewRecorder(), req1)

	req2 := httptest.NewRequest(http.MethodPost, "/users", nil)
	req2.RemoteAddr = "203.0.113.2:50000"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req2)

	if w.Code != http.StatusOK {
		t.Errorf("different IP status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRateLimiter_TracksEntriesPerKey(t *testing.T) {
	config := DefaultRateLimiterConfig()
	config.CleanupInterval = time.Minute
	rl := newTestRateLimiter(t, config)
	handler := rl.GeneralMiddleware()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/playlists", nil)
	req = req.WithContext(ContextWithUserID(req.Context(), "user-123"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if count := rl.GeneralLimiterCount(); count != 1 {
		t.Fatalf("GeneralLimiterCount() = %d, want 1", count)
	}
}
