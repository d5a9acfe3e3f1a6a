package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists/validates refresh tokens (single 'token_hash' column).
// Tokens are keyed by username and role because the two credential
// namespaces are independent.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh inserts a refresh token hash row.
func (r *TokenRepo) StoreRefresh(ctx context.Context, username, role, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (username, role, token_hash, expires_at) VALUES (?,?,?,?)",
		username, role, tokenHash, exp)
	return err
}

// ValidateRefresh returns the owning username and role if a
// non-revoked, non-expired token exists.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (string, string, error) {
	var (
		username  string
		role      string
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT username, role, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&username, &role, &expiresAt, &revokedAt)
	if err != nil {
		return "", "", err
	}
	if revokedAt.Valid {
		return "", "", sql.ErrNoRows
	}
	if time.Now().UTC().After(expiresAt) {
		return "", "", sql.ErrNoRows
	}
	return username, role, nil
}

// RevokeByHash marks a token as revoked.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForUser revokes all of a user's active tokens within one
// role namespace.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, username, role string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE username=? AND role=? AND revoked_at IS NULL",
		username, role)
	return err
}
