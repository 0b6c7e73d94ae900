package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/tunebox/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Login は認証情報を検証してトークンペアを発行する。
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, err error)
	// Refresh はリフレッシュトークンから新しいアクセストークンを発行する。
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Logout はリフレッシュトークンを失効させる。
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler は認証のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// refreshTokenRequest はリフレッシュ・ログアウトリクエストのボディ。
type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login は認証情報を検証してトークンペアを返す。
// POST /authentications
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewValidationError("リクエストボディの形式が不正です"))
		return
	}

	if req.Username == "" || req.Password == "" {
		handleServiceError(w, model.NewValidationError("usernameとpasswordは必須です"))
		return
	}

	accessToken, refreshToken, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}

// Refresh は新しいアクセストークンを発行する。
// PUT /authentications
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRefreshTokenRequest(w, r)
	if !ok {
		return
	}

	accessToken, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"accessToken": accessToken})
}

// Logout はリフレッシュトークンを失効させる。
// DELETE /authentications
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRefreshTokenRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "リフレッシュトークンを削除しました")
}

func decodeRefreshTokenRequest(w http.ResponseWriter, r *http.Request) (*refreshTokenRequest, bool) {
	var req refreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewValidationError("リクエストボディの形式が不正です"))
		return nil, false
	}
	if req.RefreshToken == "" {
		handleServiceError(w, model.NewValidationError("refreshTokenは必須です"))
		return nil, false
	}
	return &req, true
}
