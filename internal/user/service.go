// Package user はユーザー登録のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/repository"
)

// Service はユーザー管理のサービス層。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// Register は新規ユーザーを登録し、生成したIDを返す。
// ユーザー名が既に使用されている場合はInvariantエラーを返す。
// パスワードはbcryptでハッシュ化して保存する。
func (s *Service) Register(ctx context.Context, username, password, fullname string) (string, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("ユーザー名の確認に失敗しました: %w", err)
	}
	if existing != nil {
		return "", model.NewInvariantError("ユーザーの追加に失敗しました。ユーザー名は既に使用されています")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	user := &model.User{
		ID:       model.NewID("user"),
		Username: username,
		Password: string(hashed),
		Fullname: fullname,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return "", fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	return id, nil
}
