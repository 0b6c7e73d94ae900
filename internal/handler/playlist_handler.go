package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/tunebox/internal/middleware"
	"github.com/hitoshi/tunebox/internal/model"
)

// PlaylistServiceInterface はプレイリストハンドラーが必要とするサービスインターフェース。
type PlaylistServiceInterface interface {
	// AddPlaylist はプレイリストを作成してIDを返す。
	AddPlaylist(ctx context.Context, name, ownerID string) (string, error)
	// ListPlaylists はユーザーが閲覧可能なプレイリスト一覧を返す。
	ListPlaylists(ctx context.Context, userID string) ([]model.PlaylistSummary, error)
	// DeletePlaylist はプレイリストを削除する。
	DeletePlaylist(ctx context.Context, playlistID string) error
	// AddSong はプレイリストに楽曲を追加してアクティビティを記録する。
	AddSong(ctx context.Context, playlistID, songID, userID string) error
	// RemoveSong はプレイリストから楽曲を削除してアクティビティを記録する。
	RemoveSong(ctx context.Context, playlistID, songID, userID string) error
	// GetSongs はプレイリストと収録曲一覧を返す。
	GetSongs(ctx context.Context, playlistID string) (*model.PlaylistWithSongs, error)
	// GetActivities はプレイリストのアクティビティ履歴を時系列で返す。
	GetActivities(ctx context.Context, playlistID string) ([]model.ActivityEntry, error)
	// VerifyOwner はオーナー本人であることを検証する。
	VerifyOwner(ctx context.Context, playlistID, userID string) error
	// VerifyAccess はオーナーまたはコラボレーターであることを検証する。
	VerifyAccess(ctx context.Context, playlistID, userID string) error
}

// PlaylistHandler はプレイリスト管理のHTTPハンドラー。
type PlaylistHandler struct {
	service PlaylistServiceInterface
}

// NewPlaylistHandler はPlaylistHandlerを生成する。
func NewPlaylistHandler(service PlaylistServiceInterface) *PlaylistHandler {
	return &PlaylistHandler{
		service: service,
	}
}

// playlistRequest はプレイリスト作成リクエストのボディ。
type playlistRequest struct {
	Name string `json:"name"`
}

// playlistSongRequest は収録曲追加・削除リクエストのボディ。
type playlistSongRequest struct {
	SongID string `json:"songId"`
}

// playlistSummaryResponse はプレイリスト一覧のAPIレスポンス。
type playlistSummaryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// playlistWithSongsResponse はプレイリスト詳細のAPIレスポンス。
type playlistWithSongsResponse struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Username string                `json:"username"`
	Songs    []songSummaryResponse `json:"songs"`
}

// activityResponse はアクティビティ履歴のAPIレスポンス。
type activityResponse struct {
	Username string `json:"username"`
	Title    string `json:"title"`
	Action   string `json:"action"`
	Time     string `json:"time"`
}

// Add はプレイリストを作成する。
// POST /playlists
func (h *PlaylistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		handleServiceError(w, model.NewAuthenticationError("認証が必要です"))
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewValidationError("リクエストボディの形式が不正です"))
		return
	}
	if req.Name == "" {
		handleServiceError(w, model.NewValidationError("nameは必須です"))
		return
	}

	playlistID, err := h.service.AddPlaylist(r.Context(), req.Name, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{"playlistId": playlistID})
}

// List は自分がオーナーまたはコラボレーターのプレイリスト一覧を取得する。
// GET /playlists
func (h *PlaylistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		handleServiceError(w, model.NewAuthenticationError("認証が必要です"))
		return
	}

	playlists, err := h.service.ListPlaylists(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]playlistSummaryResponse, 0, len(playlists))
	for _, p := range playlists {
		resp = append(resp, playlistSummaryResponse{
			ID:       p.ID,
			Name:     p.Name,
			Username: p.Username,
		})
	}
	writeSuccess(w, http.StatusOK, map[string][]playlistSummaryResponse{"playlists": resp})
}

// Delete はプレイリストを削除する。オーナーのみ実行できる。
// DELETE /playlists/{id}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, playlistID, ok := h.authorize(w, r, h.service.VerifyOwner)
	if !ok {
		return
	}

	if err := h.service.DeletePlaylist(r.Context(), playlistID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "プレイリストを削除しました")
}

// AddSong はプレイリストに楽曲を追加する。
// POST /playlists/{id}/songs
func (h *PlaylistHandler) AddSong(w http.ResponseWriter, r *http.Request) {
	userID, playlistID, ok := h.authorize(w, r, h.service.VerifyAccess)
	if !ok {
		return
	}

	req, ok := decodePlaylistSongRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.AddSong(r.Context(), playlistID, req.SongID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusCreated, "楽曲をプレイリストに追加しました")
}

// GetSongs はプレイリストの収録曲一覧を取得する。
// GET /playlists/{id}/songs
func (h *PlaylistHandler) GetSongs(w http.ResponseWriter, r *http.Request) {
	_, playlistID, ok := h.authorize(w, r, h.service.VerifyAccess)
	if !ok {
		return
	}

	playlist, err := h.service.GetSongs(r.Context(), playlistID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := playlistWithSongsResponse{
		ID:       playlist.ID,
		Name:     playlist.Name,
		Username: playlist.Username,
		Songs:    toSongSummaryResponses(playlist.Songs),
	}
	writeSuccess(w, http.StatusOK, map[string]playlistWithSongsResponse{"playlist": resp})
}

// RemoveSong はプレイリストから楽曲を削除する。
// DELETE /playlists/{id}/songs
func (h *PlaylistHandler) RemoveSong(w http.ResponseWriter, r *http.Request) {
	userID, playlistID, ok := h.authorize(w, r, h.service.VerifyAccess)
	if !ok {
		return
	}

	req, ok := decodePlaylistSongRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveSong(r.Context(), playlistID, req.SongID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "楽曲をプレイリストから削除しました")
}

// GetActivities はプレイリストのアクティビティ履歴を取得する。
// GET /playlists/{id}/activities
func (h *PlaylistHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	_, playlistID, ok := h.authorize(w, r, h.service.VerifyAccess)
	if !ok {
		return
	}

	activities, err := h.service.GetActivities(r.Context(), playlistID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]activityResponse, 0, len(activities))
	for _, a := range activities {
		resp = append(resp, activityResponse{
			Username: a.Username,
			Title:    a.Title,
			Action:   string(a.Action),
			Time:     a.Time,
		})
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"playlistId": playlistID,
		"activities": resp,
	})
}

// authorize は認証ユーザーIDとパスパラメータを取り出し、verifyで権限を検証する。
func (h *PlaylistHandler) authorize(w http.ResponseWriter, r *http.Request, verify func(ctx context.Context, playlistID, userID string) error) (userID, playlistID string, ok bool) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		handleServiceError(w, model.NewAuthenticationError("認証が必要です"))
		return "", "", false
	}

	playlistID = chi.URLParam(r, "id")
	if err := verify(r.Context(), playlistID, userID); err != nil {
		handleServiceError(w, err)
		return "", "", false
	}
	return userID, playlistID, true
}

func decodePlaylistSongRequest(w http.ResponseWriter, r *http.Request) (*playlistSongRequest, bool) {
	var req playlistSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewValidationError("リクエストボディの形式が不正です"))
		return nil, false
	}
	if req.SongID == "" {
		handleServiceError(w, model.NewValidationError("songIdは必須です"))
		return nil, false
	}
	return &req, true
}
