// Package model はドメインモデルを定義する。
package model

// Song は楽曲を表す。
// DurationとAlbumIDは任意項目のためポインタで表現する。
type Song struct {
	ID        string
	Title     string
	Year      int
	Genre     string
	Performer string
	Duration  *int
	AlbumID   *string
}

// SongSummary は楽曲の一覧表示用サブセット。
// アルバム詳細・プレイリスト詳細のレスポンスで使用する。
type SongSummary struct {
	ID        string
	Title     string
	Performer string
}

// SongFilter は楽曲検索のフィルタ条件を表す。
// 空文字列のフィールドは条件として適用されない。
type SongFilter struct {
	Title     string
	Performer string
}
