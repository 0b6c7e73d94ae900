package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/repository"
)

// TokenPair はログイン成功時に発行されるトークンの組。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service は認証フローのサービス層。
// 資格情報の検証、トークンペアの発行、リフレッシュトークンの永続化を担当する。
type Service struct {
	userRepo repository.UserRepository
	authRepo repository.AuthenticationRepository
	tokens   *TokenManager
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	userRepo repository.UserRepository,
	authRepo repository.AuthenticationRepository,
	tokens *TokenManager,
) *Service {
	return &Service{
		userRepo: userRepo,
		authRepo: authRepo,
		tokens:   tokens,
	}
}

// Login はユーザー名とパスワードを検証し、トークンペアを発行する。
// リフレッシュトークンはauthenticationsテーブルに保存される。
// 資格情報が一致しない場合はAuthenticationエラーを返す。
func (s *Service) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewAuthenticationError("認証情報が正しくありません")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, model.NewAuthenticationError("認証情報が正しくありません")
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("アクセストークンの発行に失敗しました: %w", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("リフレッシュトークンの発行に失敗しました: %w", err)
	}

	if err := s.authRepo.Add(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("リフレッシュトークンの保存に失敗しました: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh は保存済みのリフレッシュトークンを検証し、新しいアクセストークンを発行する。
// 未知のトークン・無効なトークンはInvariantエラーになる（400相当）。
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	exists, err := s.authRepo.Exists(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("リフレッシュトークンの照会に失敗しました: %w", err)
	}
	if !exists {
		return "", model.NewInvariantError("リフレッシュトークンが無効です")
	}

	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	accessToken, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("アクセストークンの発行に失敗しました: %w", err)
	}

	return accessToken, nil
}

// Logout は保存済みのリフレッシュトークンを削除する。
// 未知のトークンはInvariantエラーになる。
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	affected, err := s.authRepo.Delete(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("リフレッシュトークンの削除に失敗しました: %w", err)
	}
	if affected == 0 {
		return model.NewInvariantError("リフレッシュトークンが無効です")
	}
	return nil
}
