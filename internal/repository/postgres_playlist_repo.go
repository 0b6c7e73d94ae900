package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
)

// PostgresPlaylistRepo はPostgreSQLを使用したプレイリストリポジトリ。
// プレイリスト本体とplaylist_songs（所属関係）の両方を扱う。
type PostgresPlaylistRepo struct {
	db *sql.DB
}

// NewPostgresPlaylistRepo はPostgresPlaylistRepoを生成する。
func NewPostgresPlaylistRepo(db *sql.DB) *PostgresPlaylistRepo {
	return &PostgresPlaylistRepo{db: db}
}

// Create はプレイリストを作成し、確認された行のIDを返す。
func (r *PostgresPlaylistRepo) Create(ctx context.Context, playlist *model.Playlist) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO playlists (id, name, owner) VALUES ($1, $2, $3) RETURNING id`,
		playlist.ID, playlist.Name, playlist.Owner,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert playlist: %w", err)
	}
	return id, nil
}

// ListByUserID はユーザーが所有するプレイリストと
// コラボレーターとして参加しているプレイリストの和集合を返す。
func (r *PostgresPlaylistRepo) ListByUserID(ctx context.Context, userID string) ([]model.PlaylistSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT p.id, p.name, u.username
		 FROM playlists p
		 LEFT JOIN users u ON p.owner = u.id
		 LEFT JOIN collaborations c ON c.playlist_id = p.id
		 WHERE p.owner = $1 OR c.user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	playlists := []model.PlaylistSummary{}
	for rows.Next() {
		var p model.PlaylistSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Username); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playlists: %w", err)
	}

	return playlists, nil
}

// FindByID は指定IDのプレイリストを取得する。見つからない場合はnilを返す。
func (r *PostgresPlaylistRepo) FindByID(ctx context.Context, id string) (*model.Playlist, error) {
	playlist := &model.Playlist{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, owner FROM playlists WHERE id = $1`,
		id,
	).Scan(&playlist.ID, &playlist.Name, &playlist.Owner)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find playlist by ID: %w", err)
	}

	return playlist, nil
}

// FindSummaryByID はオーナーのユーザー名を結合したサマリを返す。
// 見つからない場合はnilを返す。
func (r *PostgresPlaylistRepo) FindSummaryByID(ctx context.Context, id string) (*model.PlaylistSummary, error) {
	summary := &model.PlaylistSummary{}
	err := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.name, u.username
		 FROM playlists p
		 LEFT JOIN users u ON p.owner = u.id
		 WHERE p.id = $1`,
		id,
	).Scan(&summary.ID, &summary.Name, &summary.Username)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find playlist summary: %w", err)
	}

	return summary, nil
}

// DeleteByID は指定IDのプレイリストを削除する。影響行数を返す。
// playlist_songsとactivitiesはFKのCASCADEにより自動削除される。
func (r *PostgresPlaylistRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM playlists WHERE id = $1`,
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete playlist: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// AddSong は所属関係を作成し、確認された行のIDを返す。
// 重複する(playlist, song)の組も許容される。
func (r *PostgresPlaylistRepo) AddSong(ctx context.Context, entry *model.PlaylistSong) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO playlist_songs (id, playlist_id, song_id) VALUES ($1, $2, $3) RETURNING id`,
		entry.ID, entry.PlaylistID, entry.SongID,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert playlist song: %w", err)
	}
	return id, nil
}

// RemoveSong は一致する所属関係を削除する。影響行数を返す。
func (r *PostgresPlaylistRepo) RemoveSong(ctx context.Context, playlistID, songID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM playlist_songs WHERE playlist_id = $1 AND song_id = $2`,
		playlistID, songID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete playlist song: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// ListSongs はプレイリスト収録曲のサマリ一覧を返す。
func (r *PostgresPlaylistRepo) ListSongs(ctx context.Context, playlistID string) ([]model.SongSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.title, s.performer
		 FROM songs s
		 JOIN playlist_songs ps ON s.id = ps.song_id
		 WHERE ps.playlist_id = $1`,
		playlistID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlist songs: %w", err)
	}
	defer rows.Close()

	songs := []model.SongSummary{}
	for rows.Next() {
		var s model.SongSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Performer); err != nil {
			return nil, fmt.Errorf("failed to scan playlist song: %w", err)
		}
		songs = append(songs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playlist songs: %w", err)
	}

	return songs, nil
}

// compile-time interface check
var _ PlaylistRepository = (*PostgresPlaylistRepo)(nil)
