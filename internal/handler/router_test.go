package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/tunebox/internal/metrics"
	"github.com/hitoshi/tunebox/internal/middleware"
	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/song"
	"github.com/prometheus/client_golang/prometheus"
)

// mockHealthChecker はHealthCheckerのモック実装。
type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) PingContext(ctx context.Context) error { return m.err }

// mockTokenVerifier はmiddleware.TokenVerifierのモック実装。
type mockTokenVerifier struct {
	verifyFn func(tokenString string) (string, error)
}

func (m *mockTokenVerifier) VerifyAccessToken(tokenString string) (string, error) {
	if m.verifyFn != nil {
		return m.verifyFn(tokenString)
	}
	return "", errors.New("invalid token")
}

// mockSongService はSongServiceInterfaceのモック実装。
// ルーティングテストではゼロ値の応答で十分なため個別のfnは持たない。
type mockSongService struct {
	listFn func(ctx context.Context, filter model.SongFilter) ([]model.SongSummary, error)
}

func (m *mockSongService) Add(ctx context.Context, in song.Input) (string, error) {
	return "song-x", nil
}

func (m *mockSongService) List(ctx context.Context, filter model.SongFilter) ([]model.SongSummary, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockSongService) Get(ctx context.Context, id string) (*model.Song, error) {
	return &model.Song{ID: id}, nil
}

func (m *mockSongService) Update(ctx context.Context, id string, in song.Input) error { return nil }
func (m *mockSongService) Delete(ctx context.Context, id string) error                { return nil }

// mockUserService はUserServiceInterfaceのモック実装。
type mockUserService struct {
	registerFn func(ctx context.Context, username, password, fullname string) (string, error)
}

func (m *mockUserService) Register(ctx context.Context, username, password, fullname string) (string, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, username, password, fullname)
	}
	return "user-x", nil
}

func newTestRouter(t *testing.T, verifier middleware.TokenVerifier, playlistSvc PlaylistServiceInterface) http.Handler {
	t.Helper()

	rl := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	t.Cleanup(rl.Stop)

	reg := prometheus.NewRegistry()

	return NewRouter(&RouterDeps{
		HealthChecker:        &mockHealthChecker{},
		TokenVerifier:        verifier,
		CORSAllowedOrigin:    "http://localhost:3000",
		RateLimiter:          rl,
		Logger:               slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Metrics:              metrics.NewCollector(reg),
		MetricsHandler:       metrics.Handler(reg),
		AlbumService:         &mockAlbumService{},
		SongService:          &mockSongService{},
		UserService:          &mockUserService{},
		AuthService:          &mockAuthService{},
		PlaylistService:      playlistSvc,
		CollaborationService: &mockCollaborationService{},
	})
}

func TestRouter_PlaylistRoutes_RequireAuthentication(t *testing.T) {
	router := newTestRouter(t, &mockTokenVerifier{}, &mockPlaylistService{})

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/playlists"},
		{http.MethodGet, "/playlists"},
		{http.MethodDelete, "/playlists/playlist-1"},
		{http.MethodPost, "/playlists/playlist-1/songs"},
		{http.MethodGet, "/playlists/playlist-1/songs"},
		{http.MethodDelete, "/playlists/playlist-1/songs"},
		{http.MethodGet, "/playlists/playlist-1/activities"},
		{http.MethodPost, "/collaborations"},
		{http.MethodDelete, "/collaborations"},
	}

	for _, tc := range requests {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, w.Code, http.StatusUnauthorized)
		}
	}
}

func TestRouter_PlaylistRoutes_WithValidToken(t *testing.T) {
	verifier := &mockTokenVerifier{
		verifyFn: func(tokenString string) (string, error) {
			if tokenString != "valid-token" {
				return "", errors.New("invalid token")
			}
			return "user-123", nil
		},
	}
	svc := &mockPlaylistService{
		listPlaylistsFn: func(ctx context.Context, userID string) ([]model.PlaylistSummary, error) {
			if userID != "user-123" {
				t.Errorf("userID = %q, want %q", userID, "user-123")
			}
			return nil, nil
		},
	}
	router := newTestRouter(t, verifier, svc)

	req := httptest.NewRequest(http.MethodGet, "/playlists", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRouter_CatalogRoutes_NoAuthenticationRequired(t *testing.T) {
	router := newTestRouter(t, &mockTokenVerifier{}, &mockPlaylistService{})

	req := httptest.NewRequest(http.MethodGet, "/songs?title=%E5%A4%9C", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router := newTestRouter(t, &mockTokenVerifier{}, &mockPlaylistService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, &mockTokenVerifier{}, &mockPlaylistService{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
