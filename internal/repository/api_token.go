package repository

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"faco-weekly/internal/domain"
)

type APITokenRepository struct {
	db *sql.DB
}

func NewAPITokenRepository(db *sql.DB) *APITokenRepository {
	return &APITokenRepository{db: db}
}

// FindByPlainToken resolves a presented token of the form "<id>|<secret>" (or
// just "<secret>") against the api_tokens table. Only the sha256 of the secret
// is stored.
func (r *APITokenRepository) FindByPlainToken(ctx context.Context, plain string) (*domain.APIToken, error) {
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return nil, errors.New("empty token")
	}

	var (
		tokenID *int64
		secret  = plain
	)
	if idx := strings.Index(plain, "|"); idx > 0 {
		if id, err := strconv.ParseInt(plain[:idx], 10, 64); err == nil {
			tokenID = &id
			secret = plain[idx+1:]
		}
	}

	sum := sha256.Sum256([]byte(secret))
	hash := fmt.Sprintf("%x", sum)

	var tok domain.APIToken
	if tokenID != nil {
		query := `
			SELECT id, token, user_id, abilities, expires_at
			FROM api_tokens
			WHERE id = $1 AND (expires_at IS NULL OR expires_at > $2)`
		err := r.db.QueryRowContext(ctx, query, *tokenID, time.Now()).Scan(
			&tok.ID, &tok.TokenHash, &tok.UserID, &tok.Abilities, &tok.ExpiresAt,
		)
		if err == nil && tok.TokenHash == hash {
			return &tok, nil
		}
	}

	query := `
		SELECT id, token, user_id, abilities, expires_at
		FROM api_tokens
		WHERE token = $1 AND (expires_at IS NULL OR expires_at > $2)
		ORDER BY created_at DESC
		LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, hash, time.Now()).Scan(
		&tok.ID, &tok.TokenHash, &tok.UserID, &tok.Abilities, &tok.ExpiresAt,
	)
	if err != nil {
		return nil, errors.New("token not found")
	}
	return &tok, nil
}
