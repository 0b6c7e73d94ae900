// Package song は楽曲管理のドメインロジックを提供する。
package song

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/repository"
)

// Service は楽曲管理のサービス層。
type Service struct {
	songRepo repository.SongRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(songRepo repository.SongRepository) *Service {
	return &Service{songRepo: songRepo}
}

// Input は楽曲の作成・更新の入力値。
type Input struct {
	Title     string
	Year      int
	Genre     string
	Performer string
	Duration  *int
	AlbumID   *string
}

// Add は楽曲を作成し、生成したIDを返す。
func (s *Service) Add(ctx context.Context, in Input) (string, error) {
	song := &model.Song{
		ID:        model.NewID("song"),
		Title:     in.Title,
		Year:      in.Year,
		Genre:     in.Genre,
		Performer: in.Performer,
		Duration:  in.Duration,
		AlbumID:   in.AlbumID,
	}

	id, err := s.songRepo.Create(ctx, song)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.NewInvariantError("楽曲の追加に失敗しました")
		}
		return "", fmt.Errorf("楽曲の作成に失敗しました: %w", err)
	}

	return id, nil
}

// List はフィルタ条件に一致する楽曲のサマリ一覧を返す。
func (s *Service) List(ctx context.Context, filter model.SongFilter) ([]model.SongSummary, error) {
	songs, err := s.songRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("楽曲一覧の取得に失敗しました: %w", err)
	}
	return songs, nil
}

// Get は指定IDの楽曲を返す。見つからない場合はNotFoundエラー。
func (s *Service) Get(ctx context.Context, id string) (*model.Song, error) {
	song, err := s.songRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("楽曲の取得に失敗しました: %w", err)
	}
	if song == nil {
		return nil, model.NewNotFoundError("楽曲が見つかりません")
	}
	return song, nil
}

// Update は楽曲を更新する。対象が存在しない場合はNotFoundエラー。
func (s *Service) Update(ctx context.Context, id string, in Input) error {
	song := &model.Song{
		ID:        id,
		Title:     in.Title,
		Year:      in.Year,
		Genre:     in.Genre,
		Performer: in.Performer,
		Duration:  in.Duration,
		AlbumID:   in.AlbumID,
	}

	affected, err := s.songRepo.Update(ctx, song)
	if err != nil {
		return fmt.Errorf("楽曲の更新に失敗しました: %w", err)
	}
	if affected == 0 {
		return model.NewNotFoundError("楽曲の更新に失敗しました。IDが見つかりません")
	}
	return nil
}

// Delete は楽曲を削除する。対象が存在しない場合はNotFoundエラー。
func (s *Service) Delete(ctx context.Context, id string) error {
	affected, err := s.songRepo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("楽曲の削除に失敗しました: %w", err)
	}
	if affected == 0 {
		return model.NewNotFoundError("楽曲の削除に失敗しました。IDが見つかりません")
	}
	return nil
}
