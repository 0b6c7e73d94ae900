// Package playlist はプレイリスト管理のドメインロジックを提供する。
// オーナー/コラボレーターのアクセス解決と、所属変更＋アクティビティ追記の
// 二重書き込みを担当する。
package playlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/repository"
)

// SongChecker は楽曲の存在確認に必要なインターフェース。
// repository.SongRepositoryの部分集合として定義する。
type SongChecker interface {
	FindByID(ctx context.Context, id string) (*model.Song, error)
}

// CollaborationChecker はコラボレーション許可の照会に必要なインターフェース。
// repository.CollaborationRepositoryの部分集合として定義する。
type CollaborationChecker interface {
	Exists(ctx context.Context, playlistID, userID string) (bool, error)
}

// Service はプレイリスト管理のサービス層。
type Service struct {
	playlistRepo  repository.PlaylistRepository
	activityRepo  repository.ActivityRepository
	songChecker   SongChecker
	collabChecker CollaborationChecker
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	playlistRepo repository.PlaylistRepository,
	activityRepo repository.ActivityRepository,
	songChecker SongChecker,
	collabChecker CollaborationChecker,
) *Service {
	return &Service{
		playlistRepo:  playlistRepo,
		activityRepo:  activityRepo,
		songChecker:   songChecker,
		collabChecker: collabChecker,
	}
}

// AddPlaylist はプレイリストを作成し、生成したIDを返す。
func (s *Service) AddPlaylist(ctx context.Context, name, ownerID string) (string, error) {
	playlist := &model.Playlist{
		ID:    model.NewID("playlist"),
		Name:  name,
		Owner: ownerID,
	}

	id, err := s.playlistRepo.Create(ctx, playlist)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.NewInvariantError("プレイリストの追加に失敗しました")
		}
		return "", fmt.Errorf("プレイリストの作成に失敗しました: %w", err)
	}

	return id, nil
}

// ListPlaylists はユーザーがアクセス可能なプレイリスト一覧を返す。
// 所有しているものとコラボレーターとして参加しているものの和集合。
func (s *Service) ListPlaylists(ctx context.Context, userID string) ([]model.PlaylistSummary, error) {
	playlists, err := s.playlistRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("プレイリスト一覧の取得に失敗しました: %w", err)
	}
	return playlists, nil
}

// DeletePlaylist はプレイリストを削除する。
// 依存するplaylist_songs・activitiesの削除はFKのCASCADEに委ねる。
func (s *Service) DeletePlaylist(ctx context.Context, playlistID string) error {
	affected, err := s.playlistRepo.DeleteByID(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("プレイリストの削除に失敗しました: %w", err)
	}
	if affected == 0 {
		return model.NewNotFoundError("プレイリストの削除に失敗しました。IDが見つかりません")
	}
	return nil
}

// VerifyOwner は呼び出しユーザーがプレイリストのオーナーであることを検証する。
// プレイリストが存在しない場合はNotFound、オーナーでない場合はAuthorizationエラー。
func (s *Service) VerifyOwner(ctx context.Context, playlistID, userID string) error {
	playlist, err := s.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("プレイリストの取得に失敗しました: %w", err)
	}
	if playlist == nil {
		return model.NewNotFoundError("リクエストされたリソースが見つかりません")
	}
	if playlist.Owner != userID {
		return model.NewAuthorizationError("このリソースへのアクセス権限がありません")
	}
	return nil
}

// VerifyAccess は呼び出しユーザーのプレイリストへのアクセス権を検証する。
//
// まずVerifyOwnerを試行する。NotFoundの場合はコラボレーション照会を行わず
// そのまま伝播する（リソース自体が存在しない）。それ以外の失敗の場合のみ
// コラボレーション許可を照会し、許可があれば成功、なければ元のエラーを返す。
// コラボレーション照会自体のエラーは外部に出さない。この順序とエラー選択は
// 外部から観測可能な認可挙動の契約であり、変更してはならない。
func (s *Service) VerifyAccess(ctx context.Context, playlistID, userID string) error {
	ownerErr := s.VerifyOwner(ctx, playlistID, userID)
	if ownerErr == nil {
		return nil
	}

	var apiErr *model.APIError
	if errors.As(ownerErr, &apiErr) && apiErr.Kind == model.KindNotFound {
		return ownerErr
	}

	ok, err := s.collabChecker.Exists(ctx, playlistID, userID)
	if err != nil || !ok {
		return ownerErr
	}
	return nil
}

// AddSong は楽曲をプレイリストに追加し、アクティビティを追記する。
//
// 楽曲の存在確認、所属関係のINSERT、アクティビティのINSERTの順に実行する。
// 所属の書き込みとアクティビティの追記はトランザクションで結ばれていない。
// アクティビティの追記が失敗した場合、所属は残ったままエラーを返す。
func (s *Service) AddSong(ctx context.Context, playlistID, songID, userID string) error {
	if err := s.checkSongExists(ctx, songID); err != nil {
		return err
	}

	entry := &model.PlaylistSong{
		ID:         model.NewID("playlist-song"),
		PlaylistID: playlistID,
		SongID:     songID,
	}
	if _, err := s.playlistRepo.AddSong(ctx, entry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.NewInvariantError("楽曲をプレイリストに追加できませんでした")
		}
		return fmt.Errorf("楽曲の追加に失敗しました: %w", err)
	}

	return s.appendActivity(ctx, playlistID, songID, userID, model.ActivityActionAdd)
}

// RemoveSong は楽曲をプレイリストから削除し、アクティビティを追記する。
// 一致する所属関係が存在しない場合はInvariantエラーを返し、
// アクティビティは追記しない。
func (s *Service) RemoveSong(ctx context.Context, playlistID, songID, userID string) error {
	if err := s.checkSongExists(ctx, songID); err != nil {
		return err
	}

	affected, err := s.playlistRepo.RemoveSong(ctx, playlistID, songID)
	if err != nil {
		return fmt.Errorf("楽曲の削除に失敗しました: %w", err)
	}
	if affected == 0 {
		return model.NewInvariantError("楽曲をプレイリストから削除できませんでした。IDが見つかりません")
	}

	return s.appendActivity(ctx, playlistID, songID, userID, model.ActivityActionDelete)
}

// GetSongs はプレイリストと収録曲一覧を返す。
// アクセス権の検証はこの操作の内部では行わない。呼び出し側が事前に
// VerifyAccessを呼ぶことが契約となっている。
func (s *Service) GetSongs(ctx context.Context, playlistID string) (*model.PlaylistWithSongs, error) {
	summary, err := s.playlistRepo.FindSummaryByID(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("プレイリストの取得に失敗しました: %w", err)
	}
	if summary == nil {
		return nil, model.NewNotFoundError("リクエストされたリソースが見つかりません")
	}

	songs, err := s.playlistRepo.ListSongs(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("プレイリスト収録曲の取得に失敗しました: %w", err)
	}

	return &model.PlaylistWithSongs{
		ID:       summary.ID,
		Name:     summary.Name,
		Username: summary.Username,
		Songs:    songs,
	}, nil
}

// GetActivities はプレイリストのアクティビティ一覧を表示名付きで返す。
// 順序はストレージエンジンのデフォルト（実態上は挿入順）に従う。
func (s *Service) GetActivities(ctx context.Context, playlistID string) ([]model.ActivityEntry, error) {
	entries, err := s.activityRepo.ListByPlaylistID(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("アクティビティの取得に失敗しました: %w", err)
	}
	return entries, nil
}

// checkSongExists は楽曲の存在を確認する。見つからない場合はNotFoundエラー。
func (s *Service) checkSongExists(ctx context.Context, songID string) error {
	song, err := s.songChecker.FindByID(ctx, songID)
	if err != nil {
		return fmt.Errorf("楽曲の取得に失敗しました: %w", err)
	}
	if song == nil {
		return model.NewNotFoundError("楽曲が見つかりません")
	}
	return nil
}

// appendActivity はアクティビティ記録を追記する。
// タイムスタンプはデータベースではなくアプリケーションが生成する。
func (s *Service) appendActivity(ctx context.Context, playlistID, songID, userID string, action model.ActivityAction) error {
	activity := &model.Activity{
		ID:         model.NewID("activity"),
		UserID:     userID,
		SongID:     songID,
		Action:     action,
		Time:       time.Now().UTC().Format(time.RFC3339),
		PlaylistID: playlistID,
	}
	if err := s.activityRepo.Append(ctx, activity); err != nil {
		return fmt.Errorf("アクティビティの追記に失敗しました: %w", err)
	}
	return nil
}
