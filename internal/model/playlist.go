// Package model はドメインモデルを定義する。
package model

// Playlist はプレイリストを表す。
// Ownerは作成時に確定し、以後変更されない。
type Playlist struct {
	ID    string
	Name  string
	Owner string
}

// PlaylistSummary はプレイリスト一覧表示用のモデル。
// Usernameはオーナーの表示名（usersテーブルとのJOIN結果）。
type PlaylistSummary struct {
	ID       string
	Name     string
	Username string
}

// PlaylistWithSongs はプレイリストと収録曲一覧を結合したモデル。
// GET /playlists/{id}/songs のレスポンス用。
type PlaylistWithSongs struct {
	ID       string
	Name     string
	Username string
	Songs    []SongSummary
}

// PlaylistSong はプレイリストと楽曲の所属関係を表す。
// 同一楽曲の重複追加に対する一意制約は意図的に設けていない。
type PlaylistSong struct {
	ID         string
	PlaylistID string
	SongID     string
}

// Collaboration はオーナー以外のユーザーへのアクセス許可を表す。
type Collaboration struct {
	ID         string
	PlaylistID string
	UserID     string
}

// ActivityAction はアクティビティの操作種別を表す。
type ActivityAction string

const (
	// ActivityActionAdd は楽曲追加を示す。
	ActivityActionAdd ActivityAction = "add"
	// ActivityActionDelete は楽曲削除を示す。
	ActivityActionDelete ActivityAction = "delete"
)

// Activity はプレイリストに対する操作の監査記録を表す。
// 追記専用で、更新・個別削除は行わない（プレイリスト削除時のCASCADEを除く）。
// Timeはアプリケーションが書き込み時に生成するRFC3339文字列。
type Activity struct {
	ID         string
	UserID     string
	SongID     string
	Action     ActivityAction
	Time       string
	PlaylistID string
}

// ActivityEntry はアクティビティの表示用モデル。
// usersとsongsをJOINして表示名を解決した結果。
type ActivityEntry struct {
	Username string
	Title    string
	Action   ActivityAction
	Time     string
}
