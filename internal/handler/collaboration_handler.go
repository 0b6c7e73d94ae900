package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/tunebox/internal/middleware"
	"github.com/hitoshi/tunebox/internal/model"
)

// CollaborationServiceInterface はコラボレーションハンドラーが必要とするサービスインターフェース。
type CollaborationServiceInterface interface {
	// Add はコラボレーターを追加してIDを返す。
	Add(ctx context.Context, playlistID, userID string) (string, error)
	// Delete はコラボレーターを削除する。
	Delete(ctx context.Context, playlistID, userID string) error
}

// PlaylistOwnerVerifier はプレイリストのオーナー検証インターフェース。
// コラボレーションの追加・削除はオーナーのみ実行できる。
type PlaylistOwnerVerifier interface {
	VerifyOwner(ctx context.Context, playlistID, userID string) error
}

// CollaborationHandler はコラボレーション管理のHTTPハンドラー。
type CollaborationHandler struct {
	service       CollaborationServiceInterface
	ownerVerifier PlaylistOwnerVerifier
}

// NewCollaborationHandler はCollaborationHandlerを生成する。
func NewCollaborationHandler(service CollaborationServiceInterface, ownerVerifier PlaylistOwnerVerifier) *CollaborationHandler {
	return &CollaborationHandler{
		service:       service,
		ownerVerifier: ownerVerifier,
	}
}

// collaborationRequest はコラボレーション追加・削除リクエストのボディ。
type collaborationRequest struct {
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

// Add はプレイリストにコラボレーターを追加する。
// POST /collaborations
func (h *CollaborationHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, ok := h.authorize(w, r)
	if !ok {
		return
	}

	collaborationID, err := h.service.Add(r.Context(), req.PlaylistID, req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{"collaborationId": collaborationID})
}

// Delete はプレイリストからコラボレーターを削除する。
// DELETE /collaborations
func (h *CollaborationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	req, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), req.PlaylistID, req.UserID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "コラボレーターを削除しました")
}

// authorize はリクエストを検証し、認証ユーザーが対象プレイリストのオーナーであることを確認する。
func (h *CollaborationHandler) authorize(w http.ResponseWriter, r *http.Request) (*collaborationRequest, bool) {
	authUserID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		handleServiceError(w, model.NewAuthenticationError("認証が必要です"))
		return nil, false
	}

	var req collaborationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewValidationError("リクエストボディの形式が不正です"))
		return nil, false
	}
	if req.PlaylistID == "" || req.UserID == "" {
		handleServiceError(w, model.NewValidationError("playlistIdとuserIdは必須です"))
		return nil, false
	}

	if err := h.ownerVerifier.VerifyOwner(r.Context(), req.PlaylistID, authUserID); err != nil {
		handleServiceError(w, err)
		return nil, false
	}
	return &req, true
}
