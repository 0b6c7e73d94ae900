package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
)

// PostgresCollaborationRepo はPostgreSQLを使用したコラボレーションリポジトリ。
type PostgresCollaborationRepo struct {
	db *sql.DB
}

// NewPostgresCollaborationRepo はPostgresCollaborationRepoを生成する。
func NewPostgresCollaborationRepo(db *sql.DB) *PostgresCollaborationRepo {
	return &PostgresCollaborationRepo{db: db}
}

// Create はコラボレーション許可を作成し、確認された行のIDを返す。
func (r *PostgresCollaborationRepo) Create(ctx context.Context, collab *model.Collaboration) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO collaborations (id, playlist_id, user_id) VALUES ($1, $2, $3) RETURNING id`,
		collab.ID, collab.PlaylistID, collab.UserID,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert collaboration: %w", err)
	}
	return id, nil
}

// Delete は一致するコラボレーション許可を削除する。影響行数を返す。
func (r *PostgresCollaborationRepo) Delete(ctx context.Context, playlistID, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM collaborations WHERE playlist_id = $1 AND user_id = $2`,
		playlistID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete collaboration: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// Exists は(playlist, user)の組に許可が存在するか返す。
func (r *PostgresCollaborationRepo) Exists(ctx context.Context, playlistID, userID string) (bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM collaborations WHERE playlist_id = $1 AND user_id = $2`,
		playlistID, userID,
	).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to find collaboration: %w", err)
	}

	return true, nil
}

// compile-time interface check
var _ CollaborationRepository = (*PostgresCollaborationRepo)(nil)
