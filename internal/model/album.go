// Package model はドメインモデルを定義する。
package model

// Album はアルバムを表す。
type Album struct {
	ID   string
	Name string
	Year int
}

// AlbumWithSongs はアルバムと収録曲一覧を結合したモデル。
// GET /albums/{id} のレスポンス用。
type AlbumWithSongs struct {
	Album
	Songs []SongSummary
}
