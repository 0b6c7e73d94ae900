package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresAuthenticationRepo はPostgreSQLを使用したリフレッシュトークンリポジトリ。
type PostgresAuthenticationRepo struct {
	db *sql.DB
}

// NewPostgresAuthenticationRepo はPostgresAuthenticationRepoを生成する。
func NewPostgresAuthenticationRepo(db *sql.DB) *PostgresAuthenticationRepo {
	return &PostgresAuthenticationRepo{db: db}
}

// Add はリフレッシュトークンを保存する。
func (r *PostgresAuthenticationRepo) Add(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO authentications (token) VALUES ($1)`,
		token,
	)
	if err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}
	return nil
}

// Exists はリフレッシュトークンが保存済みか返す。
func (r *PostgresAuthenticationRepo) Exists(ctx context.Context, token string) (bool, error) {
	var found string
	err := r.db.QueryRowContext(ctx,
		`SELECT token FROM authentications WHERE token = $1`,
		token,
	).Scan(&found)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to find refresh token: %w", err)
	}

	return true, nil
}

// Delete はリフレッシュトークンを削除する。影響行数を返す。
func (r *PostgresAuthenticationRepo) Delete(ctx context.Context, token string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM authentications WHERE token = $1`,
		token,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete refresh token: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// compile-time interface check
var _ AuthenticationRepository = (*PostgresAuthenticationRepo)(nil)
