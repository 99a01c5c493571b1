package domain

import (
	"context"
	"time"
)

// Cache sources
const (
	SourceAniList = "anilist"
	SourceJikan   = "jikan"
)

// CacheRepo defines the interface for raw external payload caching
type CacheRepo interface {
	// GetPayload returns the cached body if it is younger than maxAge.
	GetPayload(ctx context.Context, source, key string, maxAge time.Duration) ([]byte, bool, error)
	PutPayload(ctx context.Context, source, key string, body []byte) error

	// Prune deletes entries fetched before the given time.
	Prune(ctx context.Context, before time.Time) (int64, error)
}
