package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TokensPostgres stores each user's currently valid refresh tokens. Tokens
// are hashed before they hit disk; a database leak does not leak sessions.
type TokensPostgres struct {
	db *pgxpool.Pool
}

func NewTokensPostgres(db *pgxpool.Pool) *TokensPostgres {
	return &TokensPostgres{db: db}
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(h[:])
}

func (r *TokensPostgres) Add(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (user_id, hashed_token, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, hashed_token) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID, hashToken(token), expiresAt)
	return err
}

func (r *TokensPostgres) Exists(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM refresh_tokens
			WHERE user_id = $1 AND hashed_token = $2 AND expires_at > now()
		)
	`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, hashToken(token)).Scan(&exists)
	return exists, err
}

func (r *TokensPostgres) Delete(ctx context.Context, userID uuid.UUID, token string) error {
	query := `DELETE FROM refresh_tokens WHERE user_id = $1 AND hashed_token = $2`
	_, err := r.db.Exec(ctx, query, userID, hashToken(token))
	return err
}

// DeleteExpired clears tokens past their validity window. Called
// opportunistically; revocation never depends on it.
func (r *TokensPostgres) DeleteExpired(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= now()`)
	return err
}
