package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
)

// PostgresActivityRepo はPostgreSQLを使用したアクティビティリポジトリ。
// activitiesテーブルは追記専用で、UPDATE・個別DELETEは発行しない。
type PostgresActivityRepo struct {
	db *sql.DB
}

// NewPostgresActivityRepo はPostgresActivityRepoを生成する。
func NewPostgresActivityRepo(db *sql.DB) *PostgresActivityRepo {
	return &PostgresActivityRepo{db: db}
}

// Append はアクティビティ記録を追記する。
func (r *PostgresActivityRepo) Append(ctx context.Context, activity *model.Activity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activities (id, user_id, song_id, action, time, playlist_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		activity.ID, activity.UserID, activity.SongID, activity.Action, activity.Time, activity.PlaylistID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// ListByPlaylistID はプレイリストのアクティビティを表示名付きで返す。
func (r *PostgresActivityRepo) ListByPlaylistID(ctx context.Context, playlistID string) ([]model.ActivityEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.username, s.title, a.action, a.time
		 FROM activities a
		 INNER JOIN users u ON a.user_id = u.id
		 INNER JOIN songs s ON a.song_id = s.id
		 WHERE a.playlist_id = $1`,
		playlistID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	entries := []model.ActivityEntry{}
	for rows.Next() {
		var e model.ActivityEntry
		if err := rows.Scan(&e.Username, &e.Title, &e.Action, &e.Time); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}

	return entries, nil
}

// compile-time interface check
var _ ActivityRepository = (*PostgresActivityRepo)(nil)
