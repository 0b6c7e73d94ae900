package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
)

// PostgresAlbumRepo はPostgreSQLを使用したアルバムリポジトリ。
type PostgresAlbumRepo struct {
	db *sql.DB
}

// NewPostgresAlbumRepo はPostgresAlbumRepoを生成する。
func NewPostgresAlbumRepo(db *sql.DB) *PostgresAlbumRepo {
	return &PostgresAlbumRepo{db: db}
}

// Create はアルバムを作成し、確認された行のIDを返す。
func (r *PostgresAlbumRepo) Create(ctx context.Context, album *model.Album) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO albums (id, name, year) VALUES ($1, $2, $3) RETURNING id`,
		album.ID, album.Name, album.Year,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert album: %w", err)
	}
	return id, nil
}

// FindByID は指定IDのアルバムを取得する。見つからない場合はnilを返す。
func (r *PostgresAlbumRepo) FindByID(ctx context.Context, id string) (*model.Album, error) {
	album := &model.Album{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, year FROM albums WHERE id = $1`,
		id,
	).Scan(&album.ID, &album.Name, &album.Year)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find album by ID: %w", err)
	}

	return album, nil
}

// ListSongsByAlbumID はアルバム収録曲のサマリ一覧を返す。
func (r *PostgresAlbumRepo) ListSongsByAlbumID(ctx context.Context, albumID string) ([]model.SongSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, performer FROM songs WHERE album_id = $1`,
		albumID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list album songs: %w", err)
	}
	defer rows.Close()

	songs := []model.SongSummary{}
	for rows.Next() {
		var s model.SongSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Performer); err != nil {
			return nil, fmt.Errorf("failed to scan album song: %w", err)
		}
		songs = append(songs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate album songs: %w", err)
	}

	return songs, nil
}

// Update はアルバムを更新する。影響行数を返す。
func (r *PostgresAlbumRepo) Update(ctx context.Context, album *model.Album) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE albums SET name = $2, year = $3 WHERE id = $1`,
		album.ID, album.Name, album.Year,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update album: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// DeleteByID は指定IDのアルバムを削除する。影響行数を返す。
func (r *PostgresAlbumRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM albums WHERE id = $1`,
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete album: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// compile-time interface check
var _ AlbumRepository = (*PostgresAlbumRepo)(nil)
