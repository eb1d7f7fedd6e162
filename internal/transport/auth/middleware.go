package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"faco-weekly/internal/domain"
	"faco-weekly/internal/repository"
)

type ctxKey string

const UserIDKey ctxKey = "userID"

// TokenMiddleware authenticates requests against the api_tokens table. The
// token is read from the Authorization bearer header, falling back to the
// `token` query parameter for websocket clients that cannot set headers.
func TokenMiddleware(tokenRepo *repository.APITokenRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tok *domain.APIToken

			if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
				plain := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
				if plain != "" {
					if t, err := tokenRepo.FindByPlainToken(r.Context(), plain); err == nil {
						tok = t
					}
				}
			}

			if tok == nil {
				if plain := r.URL.Query().Get("token"); plain != "" {
					if t, err := tokenRepo.FindByPlainToken(r.Context(), plain); err == nil {
						tok = t
					}
				}
			}

			if tok == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if tok.ExpiresAt != nil && tok.ExpiresAt.Before(time.Now()) {
				http.Error(w, "Token expired", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, tok.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	if !ok {
		return 0, errors.New("userID not found in context")
	}
	return userID, nil
}
