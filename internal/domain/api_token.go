package domain

import "time"

// APIToken authenticates a reporting user against the service.
type APIToken struct {
	ID        int64
	TokenHash string
	UserID    int64
	Abilities string
	ExpiresAt *time.Time
}
