package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/tunebox/internal/metrics"
	"github.com/hitoshi/tunebox/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DB を受け付けることができる。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker     HealthChecker
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	Metrics           *metrics.Collector
	MetricsHandler    http.Handler

	// 各ドメインのサービス
	AlbumService         AlbumServiceInterface
	SongService          SongServiceInterface
	UserService          UserServiceInterface
	AuthService          AuthServiceInterface
	PlaylistService      PlaylistServiceInterface
	CollaborationService CollaborationServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Recovery → Logging → Metrics
//
// 認証が必要なルートはさらに Auth → RateLimit(General) を通る。
// 認証情報を扱うルート（ユーザー登録・ログイン）にはIP単位のレート制限を適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(metrics.NewMiddleware(deps.Metrics))

	albumHandler := NewAlbumHandler(deps.AlbumService)
	songHandler := NewSongHandler(deps.SongService)
	userHandler := NewUserHandler(deps.UserService)
	authHandler := NewAuthHandler(deps.AuthService)
	playlistHandler := NewPlaylistHandler(deps.PlaylistService)
	collabHandler := NewCollaborationHandler(deps.CollaborationService, deps.PlaylistService)

	// --- 認証不要のルート ---

	// アルバム・楽曲のカタログ管理
	r.Route("/albums", func(r chi.Router) {
		r.Post("/", albumHandler.Add)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", albumHandler.Get)
			r.Put("/", albumHandler.Update)
			r.Delete("/", albumHandler.Delete)
		})
	})

	r.Route("/songs", func(r chi.Router) {
		r.Post("/", songHandler.Add)
		r.Get("/", songHandler.List)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", songHandler.Get)
			r.Put("/", songHandler.Update)
			r.Delete("/", songHandler.Delete)
		})
	})

	// ユーザー登録・認証（ブルートフォース対策のIP単位レート制限付き）
	r.With(deps.RateLimiter.CredentialMiddleware()).Post("/users", userHandler.Register)

	r.Route("/authentications", func(r chi.Router) {
		r.With(deps.RateLimiter.CredentialMiddleware()).Post("/", authHandler.Login)
		r.Put("/", authHandler.Refresh)
		r.Delete("/", authHandler.Logout)
	})

	// ヘルスチェック（DockerヘルスチェックとLBのプローブ用）
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := deps.HealthChecker.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, envelope{
				Status:  "error",
				Message: "データベースに接続できません",
			})
			return
		}
		writeSuccessMessage(w, http.StatusOK, "ok")
	})

	// Prometheusメトリクス
	r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// プレイリスト管理
		r.Route("/playlists", func(r chi.Router) {
			r.Post("/", playlistHandler.Add)
			r.Get("/", playlistHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", playlistHandler.Delete)

				r.Post("/songs", playlistHandler.AddSong)
				r.Get("/songs", playlistHandler.GetSongs)
				r.Delete("/songs", playlistHandler.RemoveSong)

				r.Get("/activities", playlistHandler.GetActivities)
			})
		})

		// コラボレーション管理
		r.Route("/collaborations", func(r chi.Router) {
			r.Post("/", collabHandler.Add)
			r.Delete("/", collabHandler.Delete)
		})
	})

	return r
}
