// Package album はアルバム管理のドメインロジックを提供する。
package album

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/repository"
)

// Service はアルバム管理のサービス層。
type Service struct {
	albumRepo repository.AlbumRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(albumRepo repository.AlbumRepository) *Service {
	return &Service{albumRepo: albumRepo}
}

// Add はアルバムを作成し、生成したIDを返す。
func (s *Service) Add(ctx context.Context, name string, year int) (string, error) {
	album := &model.Album{
		ID:   model.NewID("album"),
		Name: name,
		Year: year,
	}

	id, err := s.albumRepo.Create(ctx, album)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.NewInvariantError("アルバムの追加に失敗しました")
		}
		return "", fmt.Errorf("アルバムの作成に失敗しました: %w", err)
	}

	return id, nil
}

// Get はアルバムと収録曲一覧を返す。
func (s *Service) Get(ctx context.Context, id string) (*model.AlbumWithSongs, error) {
	album, err := s.albumRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("アルバムの取得に失敗しました: %w", err)
	}
	if album == nil {
		return nil, model.NewNotFoundError("アルバムが見つかりません")
	}

	songs, err := s.albumRepo.ListSongsByAlbumID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("アルバム収録曲の取得に失敗しました: %w", err)
	}

	return &model.AlbumWithSongs{Album: *album, Songs: songs}, nil
}

// Update はアルバムを更新する。対象が存在しない場合はNotFoundエラー。
func (s *Service) Update(ctx context.Context, id, name string, year int) error {
	affected, err := s.albumRepo.Update(ctx, &model.Album{ID: id, Name: name, Year: year})
	if err != nil {
		return fmt.Errorf("アルバムの更新に失敗しました: %w", err)
	}
	if affected == 0 {
		return model.NewNotFoundError("アルバムの更新に失敗しました。IDが見つかりません")
	}
	return nil
}

// Delete はアルバムを削除する。対象が存在しない場合はNotFoundエラー。
func (s *Service) Delete(ctx context.Context, id string) error {
	affected, err := s.albumRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("アルバムの削除に失敗しました: %w", err)
	}
	if affected == 0 {
		return model.NewNotFoundError("アルバムの削除に失敗しました。IDが見つかりません")
	}
	return nil
}
