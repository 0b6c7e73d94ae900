// Package collaboration はプレイリストのコラボレーション許可を管理する。
// 登録と削除のみを提供し、照会はプレイリスト側のアクセス解決から利用される。
package collaboration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/repository"
)

// Service はコラボレーション管理のサービス層。
type Service struct {
	collabRepo repository.CollaborationRepository
	userRepo   repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(collabRepo repository.CollaborationRepository, userRepo repository.UserRepository) *Service {
	return &Service{
		collabRepo: collabRepo,
		userRepo:   userRepo,
	}
}

// Add はコラボレーション許可を作成し、生成したIDを返す。
// 対象ユーザーが存在しない場合はNotFoundエラーを返す。
func (s *Service) Add(ctx context.Context, playlistID, userID string) (string, error) {
	target, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if target == nil {
		return "", model.NewNotFoundError("ユーザーが見つかりません")
	}

	collab := &model.Collaboration{
		ID:         model.NewID("collab"),
		PlaylistID: playlistID,
		UserID:     userID,
	}

	id, err := s.collabRepo.Create(ctx, collab)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.NewInvariantError("コラボレーションの追加に失敗しました")
		}
		return "", fmt.Errorf("コラボレーションの作成に失敗しました: %w", err)
	}

	return id, nil
}

// Delete は一致するコラボレーション許可を削除する。
// 一致する許可が存在しない場合はInvariantエラーを返す。
func (s *Service) Delete(ctx context.Context, playlistID, userID string) error {
	affected, err := s.collabRepo.Delete(ctx, playlistID, userID)
	if err != nil {
		return fmt.Errorf("コラボレーションの削除に失敗しました: %w", err)
	}
	if affected == 0 {
		return model.NewInvariantError("コラボレーションの削除に失敗しました")
	}
	return nil
}

// VerifyCollaborator は(playlist, user)の組に許可が存在することを検証する。
// 存在しない場合はNotFoundエラーを返す。
func (s *Service) VerifyCollaborator(ctx context.Context, playlistID, userID string) error {
	ok, err := s.collabRepo.Exists(ctx, playlistID, userID)
	if err != nil {
		return fmt.Errorf("コラボレーションの照会に失敗しました: %w", err)
	}
	if !ok {
		return model.NewNotFoundError("コラボレーションが見つかりません")
	}
	return nil
}
