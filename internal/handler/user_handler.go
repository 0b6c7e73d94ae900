package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/tunebox/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// Register は新規ユーザーを登録してIDを返す。
	Register(ctx context.Context, username, password, fullname string) (string, error)
}

// UserHandler はユーザー登録のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// registerRequest はユーザー登録リクエストのボディ。
type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

// Register は新規ユーザーを登録する。
// POST /users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, model.NewValidationError("リクエストボディの形式が不正です"))
		return
	}

	if req.Username == "" || req.Password == "" || req.Fullname == "" {
		handleServiceError(w, model.NewValidationError("username, password, fullnameは必須です"))
		return
	}
	if len(req.Username) > 50 {
		handleServiceError(w, model.NewValidationError("usernameは50文字以内で指定してください"))
		return
	}

	userID, err := h.service.Register(r.Context(), req.Username, req.Password, req.Fullname)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{"userId": userID})
}
