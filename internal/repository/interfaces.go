// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/tunebox/internal/model"
)

// AlbumRepository はアルバムデータの永続化インターフェース。
type AlbumRepository interface {
	// Create はアルバムを作成し、確認された行のIDを返す。
	Create(ctx context.Context, album *model.Album) (string, error)

	// FindByID は指定IDのアルバムを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Album, error)

	// ListSongsByAlbumID はアルバム収録曲のサマリ一覧を返す。
	ListSongsByAlbumID(ctx context.Context, albumID string) ([]model.SongSummary, error)

	// Update はアルバムを更新する。影響行数を返す。
	Update(ctx context.Context, album *model.Album) (int64, error)

	// DeleteByID は指定IDのアルバムを削除する。影響行数を返す。
	DeleteByID(ctx context.Context, id string) (int64, error)
}

// SongRepository は楽曲データの永続化インターフェース。
type SongRepository interface {
	// Create は楽曲を作成し、確認された行のIDを返す。
	Create(ctx context.Context, song *model.Song) (string, error)

	// List はフィルタ条件に一致する楽曲のサマリ一覧を返す。
	List(ctx context.Context, filter model.SongFilter) ([]model.SongSummary, error)

	// FindByID は指定IDの楽曲を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Song, error)

	// Update は楽曲を更新する。影響行数を返す。
	Update(ctx context.Context, song *model.Song) (int64, error)

	// DeleteByID は指定IDの楽曲を削除する。影響行数を返す。
	DeleteByID(ctx context.Context, id string) (int64, error)
}

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成し、確認された行のIDを返す。
	Create(ctx context.Context, user *model.User) (string, error)

	// FindByUsername はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// AuthenticationRepository はリフレッシュトークンの永続化インターフェース。
type AuthenticationRepository interface {
	// Add はリフレッシュトークンを保存する。
	Add(ctx context.Context, token string) error

	// Exists はリフレッシュトークンが保存済みか返す。
	Exists(ctx context.Context, token string) (bool, error)

	// Delete はリフレッシュトークンを削除する。影響行数を返す。
	Delete(ctx context.Context, token string) (int64, error)
}

// PlaylistRepository はプレイリストデータの永続化インターフェース。
type PlaylistRepository interface {
	// Create はプレイリストを作成し、確認された行のIDを返す。
	Create(ctx context.Context, playlist *model.Playlist) (string, error)

	// ListByUserID はユーザーが所有するプレイリストと
	// コラボレーターとして参加しているプレイリストの和集合を返す。
	// 順序はストレージエンジンのデフォルトに従う。
	ListByUserID(ctx context.Context, userID string) ([]model.PlaylistSummary, error)

	// FindByID は指定IDのプレイリストを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Playlist, error)

	// FindSummaryByID はオーナーのユーザー名を結合したサマリを返す。
	// 見つからない場合はnilを返す。
	FindSummaryByID(ctx context.Context, id string) (*model.PlaylistSummary, error)

	// DeleteByID は指定IDのプレイリストを削除する。影響行数を返す。
	// 依存するplaylist_songs・activitiesの削除はFKのCASCADEに委ねる。
	DeleteByID(ctx context.Context, id string) (int64, error)

	// AddSong は所属関係を作成し、確認された行のIDを返す。
	AddSong(ctx context.Context, entry *model.PlaylistSong) (string, error)

	// RemoveSong は一致する所属関係を削除する。影響行数を返す。
	RemoveSong(ctx context.Context, playlistID, songID string) (int64, error)

	// ListSongs はプレイリスト収録曲のサマリ一覧を返す。
	ListSongs(ctx context.Context, playlistID string) ([]model.SongSummary, error)
}

// ActivityRepository はアクティビティ監査記録の永続化インターフェース。
// 追記と参照のみを提供する（更新・個別削除は存在しない）。
type ActivityRepository interface {
	// Append はアクティビティ記録を追記する。
	Append(ctx context.Context, activity *model.Activity) error

	// ListByPlaylistID はプレイリストのアクティビティを表示名付きで返す。
	// 順序はストレージエンジンのデフォルト（実態上は挿入順）に従う。
	ListByPlaylistID(ctx context.Context, playlistID string) ([]model.ActivityEntry, error)
}

// CollaborationRepository はコラボレーション許可の永続化インターフェース。
type CollaborationRepository interface {
	// Create はコラボレーション許可を作成し、確認された行のIDを返す。
	Create(ctx context.Context, collab *model.Collaboration) (string, error)

	// Delete は一致するコラボレーション許可を削除する。影響行数を返す。
	Delete(ctx context.Context, playlistID, userID string) (int64, error)

	// Exists は(playlist, user)の組に許可が存在するか返す。
	Exists(ctx context.Context, playlistID, userID string) (bool, error)
}
