package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/song"
)

// SongServiceInterface は楽曲ハンドラーが必要とするサービスインターフェース。
type SongServiceInterface interface {
	// Add は楽曲を作成してIDを返す。
	Add(ctx context.Context, in song.Input) (string, error)
	// List は条件に一致する楽曲一覧を返す。
	List(ctx context.Context, filter model.SongFilter) ([]model.SongSummary, error)
	// Get は楽曲詳細を返す。
	Get(ctx context.Context, id string) (*model.Song, error)
	// Update は楽曲を更新する。
	Update(ctx context.Context, id string, in song.Input) error
	// Delete は楽曲を削除する。
	Delete(ctx context.Context, id string) error
}

// SongHandler は楽曲管理のHTTPハンドラー。
type SongHandler struct {
	service SongServiceInterface
}

// NewSongHandler はSongHandlerを生成する。
func NewSongHandler(service SongServiceInterface) *SongHandler {
	return &SongHandler{
		service: service,
	}
}

// songRequest は楽曲作成・更新リクエストのボディ。
type songRequest struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

// songResponse は楽曲詳細のAPIレスポンス。
type songResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

// songSummaryResponse は楽曲一覧のAPIレスポンス。
type songSummaryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

func toSongSummaryResponses(songs []model.SongSummary) []songSummaryResponse {
	resp := make([]songSummaryResponse, 0, len(songs))
	for _, s := range songs {
		resp = append(resp, songSummaryResponse{
			ID:        s.ID,
			Title:     s.Title,
			Performer: s.Performer,
		})
	}
	return resp
}

func (req *songRequest) validate() error {
	if req.Title == "" || req.Genre == "" || req.Performer == "" {
		return model.NewValidationError("title, genre, performerは必須です")
	}
	if req.Year <= 0 {
		return model.NewValidationError("yearは正の整数で指定してください")
	}
	if req.Duration != nil && *req.Duration < 0 {
		return model.NewValidationError("durationは0以上で指定してください")
	}
	return nil
}

func (req *songRequest) toInput() song.Input {
	return song.Input{
		Title:     req.Title,
		Year:      req.Year,
		Genre:     req.Genre,
		Performer: req.Performer,
		Duration:  req.Duration,
		AlbumID:   req.AlbumID,
	}
}

// Add は楽曲を作成する。
// POST /songs
func (h *SongHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewValidationError("リクエストボディの形式が不正です"))
		return
	}
	if err := req.validate(); err != nil {
		handleServiceError(w, err)
		return
	}

	songID, err := h.service.Add(r.Context(), req.toInput())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{"songId": songID})
}

// List は楽曲一覧をクエリパラメータで絞り込んで取得する。
// GET /songs?title=&performer=
func (h *SongHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.SongFilter{
		Title:     r.URL.Query().Get("title"),
		Performer: r.URL.Query().Get("performer"),
	}

	songs, err := h.service.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string][]songSummaryResponse{
		"songs": toSongSummaryResponses(songs),
	})
}

// Get は楽曲詳細を取得する。
// GET /songs/{id}
func (h *SongHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := songResponse{
		ID:        s.ID,
		Title:     s.Title,
		Year:      s.Year,
		Genre:     s.Genre,
		Performer: s.Performer,
		Duration:  s.Duration,
		AlbumID:   s.AlbumID,
	}
	writeSuccess(w, http.StatusOK, map[string]songResponse{"song": resp})
}

// Update は楽曲を更新する。
// PUT /songs/{id}
func (h *SongHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewValidationError("リクエストボディの形式が不正です"))
		return
	}
	if err := req.validate(); err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.toInput()); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "楽曲を更新しました")
}

// Delete は楽曲を削除する。
// DELETE /songs/{id}
func (h *SongHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "楽曲を削除しました")
}
