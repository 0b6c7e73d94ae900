package handler

import (
	"context"

	"github.com/hitoshi/tunebox/internal/auth"
)

// AuthServiceAdapter は auth.Service を AuthServiceInterface に適合させるアダプタ。
// TokenPair構造体をハンドラーが扱う個別のトークン文字列に展開する。
type AuthServiceAdapter struct {
	svc *auth.Service
}

// NewAuthServiceAdapter はAuthServiceAdapterを生成する。
func NewAuthServiceAdapter(svc *auth.Service) *AuthServiceAdapter {
	return &AuthServiceAdapter{svc: svc}
}

// Login は認証情報を検証してトークンペアを発行する。
func (a *AuthServiceAdapter) Login(ctx context.Context, username, password string) (string, string, error) {
	pair, err := a.svc.Login(ctx, username, password)
	if err != nil {
		return "", "", err
	}
	return pair.AccessToken, pair.RefreshToken, nil
}

// Refresh はリフレッシュトークンから新しいアクセストークンを発行する。
func (a *AuthServiceAdapter) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return a.svc.Refresh(ctx, refreshToken)
}

// Logout はリフレッシュトークンを失効させる。
func (a *AuthServiceAdapter) Logout(ctx context.Context, refreshToken string) error {
	return a.svc.Logout(ctx, refreshToken)
}

// インターフェース適合の静的チェック
var _ AuthServiceInterface = (*AuthServiceAdapter)(nil)
