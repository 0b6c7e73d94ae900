// Package auth は認証のドメインロジックを提供する。
// アクセス/リフレッシュのJWTトークンペアの発行・検証と、
// ログイン・リフレッシュ・ログアウトのフローを担当する。
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/tunebox/internal/model"
)

// トークン種別。typクレームで区別する。
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenClaims はトークンに埋め込むクレーム。
type TokenClaims struct {
	UserID    string `json:"uid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenManagerConfig はTokenManagerの設定を保持する。
type TokenManagerConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenManager はHS256署名のJWTトークンペアを発行・検証する。
// アクセストークンとリフレッシュトークンは別の秘密鍵で署名する。
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager はTokenManagerを生成する。
func NewTokenManager(cfg TokenManagerConfig) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}
}

// RefreshTTL はリフレッシュトークンの有効期間を返す。
// クリーンアップジョブの保持期間判定に使用する。
func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// GenerateAccessToken はユーザーIDを埋め込んだアクセストークンを発行する。
func (m *TokenManager) GenerateAccessToken(userID string) (string, error) {
	return m.generate(userID, tokenTypeAccess, m.accessSecret, m.accessTTL)
}

// GenerateRefreshToken はユーザーIDを埋め込んだリフレッシュトークンを発行する。
func (m *TokenManager) GenerateRefreshToken(userID string) (string, error) {
	return m.generate(userID, tokenTypeRefresh, m.refreshSecret, m.refreshTTL)
}

func (m *TokenManager) generate(userID, tokenType string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyAccessToken はアクセストークンを検証し、ユーザーIDを返す。
// 署名不正・期限切れ・種別不一致はすべてAuthenticationエラーになる。
func (m *TokenManager) VerifyAccessToken(tokenString string) (string, error) {
	userID, err := m.verify(tokenString, tokenTypeAccess, m.accessSecret)
	if err != nil {
		return "", model.NewAuthenticationError("アクセストークンが無効です")
	}
	return userID, nil
}

// VerifyRefreshToken はリフレッシュトークンを検証し、ユーザーIDを返す。
// 検証失敗はInvariantエラーになる（400相当の挙動互換）。
func (m *TokenManager) VerifyRefreshToken(tokenString string) (string, error) {
	userID, err := m.verify(tokenString, tokenTypeRefresh, m.refreshSecret)
	if err != nil {
		return "", model.NewInvariantError("リフレッシュトークンが無効です")
	}
	return userID, nil
}

func (m *TokenManager) verify(tokenString, wantType string, secret []byte) (string, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("token is not valid")
	}
	if claims.TokenType != wantType {
		return "", fmt.Errorf("unexpected token type: %s", claims.TokenType)
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("token has no user ID")
	}
	return claims.UserID, nil
}
