package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
)

// PostgresSongRepo はPostgreSQLを使用した楽曲リポジトリ。
type PostgresSongRepo struct {
	db *sql.DB
}

// NewPostgresSongRepo はPostgresSongRepoを生成する。
func NewPostgresSongRepo(db *sql.DB) *PostgresSongRepo {
	return &PostgresSongRepo{db: db}
}

// Create は楽曲を作成し、確認された行のIDを返す。
func (r *PostgresSongRepo) Create(ctx context.Context, song *model.Song) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO songs (id, title, year, genre, performer, duration, album_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		song.ID, song.Title, song.Year, song.Genre, song.Performer, song.Duration, song.AlbumID,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert song: %w", err)
	}
	return id, nil
}

// List はフィルタ条件に一致する楽曲のサマリ一覧を返す。
// title・performerは部分一致（大文字小文字を区別しない）で絞り込む。
func (r *PostgresSongRepo) List(ctx context.Context, filter model.SongFilter) ([]model.SongSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, performer FROM songs
		 WHERE title ILIKE '%' || $1 || '%' AND performer ILIKE '%' || $2 || '%'`,
		filter.Title, filter.Performer,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	songs := []model.SongSummary{}
	for rows.Next() {
		var s model.SongSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Performer); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate songs: %w", err)
	}

	return songs, nil
}

// FindByID は指定IDの楽曲を取得する。見つからない場合はnilを返す。
func (r *PostgresSongRepo) FindByID(ctx context.Context, id string) (*model.Song, error) {
	song := &model.Song{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, year, genre, performer, duration, album_id FROM songs WHERE id = $1`,
		id,
	).Scan(&song.ID, &song.Title, &song.Year, &song.Genre, &song.Performer, &song.Duration, &song.AlbumID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find song by ID: %w", err)
	}

	return song, nil
}

// Update は楽曲を更新する。影響行数を返す。
func (r *PostgresSongRepo) Update(ctx context.Context, song *model.Song) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE songs SET title = $2, year = $3, genre = $4, performer = $5, duration = $6, album_id = $7
		 WHERE id = $1`,
		song.ID, song.Title, song.Year, song.Genre, song.Performer, song.Duration, song.AlbumID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update song: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// DeleteByID は指定IDの楽曲を削除する。影響行数を返す。
func (r *PostgresSongRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM songs WHERE id = $1`,
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete song: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// compile-time interface check
var _ SongRepository = (*PostgresSongRepo)(nil)
