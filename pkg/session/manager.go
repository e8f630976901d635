package session

import (
	"context"
	"database/sql"
	"time"
)

type MySQLSessionRepo struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewMySQLSessionRepo(db *sql.DB, ttl time.Duration) *MySQLSessionRepo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MySQLSessionRepo{DB: db, TTL: ttl}
}

func (r *MySQLSessionRepo) Create(ctx context.Context, userID string, sessionID string) (string, error) {
	now := time.Now().UTC()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, userID, now, now.Add(r.TTL))

	return sessionID, err
}

func (r *MySQLSessionRepo) IsValid(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM sessions
			WHERE id = ? AND expires_at > ?
		)
	`, sessionID, time.Now().UTC()).Scan(&exists)
	return exists, err
}

func (r *MySQLSessionRepo) Invalidate(ctx context.Context, sessionID string) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM sessions WHERE id = ?
	`, sessionID)
	return err
}

func (r *MySQLSessionRepo) InvalidateUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM sessions WHERE user_id = ?
	`, userID)
	return err
}
