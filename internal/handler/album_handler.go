package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/tunebox/internal/model"
)

// AlbumServiceInterface はアルバムハンドラーが必要とするサービスインターフェース。
type AlbumServiceInterface interface {
	// Add はアルバムを作成してIDを返す。
	Add(ctx context.Context, name string, year int) (string, error)
	// Get はアルバムと収録曲一覧を返す。
	Get(ctx context.Context, id string) (*model.AlbumWithSongs, error)
	// Update はアルバムを更新する。
	Update(ctx context.Context, id, name string, year int) error
	// Delete はアルバムを削除する。
	Delete(ctx context.Context, id string) error
}

// AlbumHandler はアルバム管理のHTTPハンドラー。
type AlbumHandler struct {
	service AlbumServiceInterface
}

// NewAlbumHandler はAlbumHandlerを生成する。
func NewAlbumHandler(service AlbumServiceInterface) *AlbumHandler {
	return &AlbumHandler{
		service: service,
	}
}

// albumRequest はアルバム作成・更新リクエストのボディ。
type albumRequest struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

// albumResponse はアルバム詳細のAPIレスポンス。
type albumResponse struct {
	ID    string                `json:"id"`
	Name  string                `json:"name"`
	Year  int                   `json:"year"`
	Songs []songSummaryResponse `json:"songs"`
}

func (req *albumRequest) validate() error {
	if req.Name == "" {
		return model.NewValidationError("nameは必須です")
	}
	if req.Year <= 0 {
		return model.NewValidationError("yearは正の整数で指定してください")
	}
	return nil
}

// Add はアルバムを作成する。
// POST /albums
func (h *AlbumHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewValidationError("リクエストボディの形式が不正です"))
		return
	}
	if err := req.validate(); err != nil {
		handleServiceError(w, err)
		return
	}

	albumID, err := h.service.Add(r.Context(), req.Name, req.Year)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{"albumId": albumID})
}

// Get はアルバム詳細を収録曲付きで取得する。
// GET /albums/{id}
func (h *AlbumHandler) Get(w http.ResponseWriter, r *http.Request) {
	album, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := albumResponse{
		ID:    album.ID,
		Name:  album.Name,
		Year:  album.Year,
		Songs: toSongSummaryResponses(album.Songs),
	}
	writeSuccess(w, http.StatusOK, map[string]albumResponse{"album": resp})
}

// Update はアルバムを更新する。
// PUT /albums/{id}
func (h *AlbumHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewValidationError("リクエストボディの形式が不正です"))
		return
	}
	if err := req.validate(); err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.Name, req.Year); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "アルバムを更新しました")
}

// Delete はアルバムを削除する。
// DELETE /albums/{id}
func (h *AlbumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "アルバムを削除しました")
}
