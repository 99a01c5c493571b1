package domain

import (
	"context"
)

// DocumentRepository defines the interface for anime_data.json storage
type DocumentRepository interface {
	Get(ctx context.Context, path CatalogPath) (*Document, error)
	Store(ctx context.Context, path CatalogPath, doc *Document) error
	Modified(path CatalogPath) (int64, error)
}

// EpisodesRepository defines the interface for the hand-maintained episodes master file
type EpisodesRepository interface {
	GetEpisodesMaster(ctx context.Context, path CatalogPath) (*EpisodesMaster, error)
	StoreEpisodesMaster(ctx context.Context, path CatalogPath, master *EpisodesMaster) error
}

// EpisodesMaster represents the episodes master file
type EpisodesMaster struct {
	Anime []EpisodeMapping `yaml:"anime"`
}

// EpisodeMapping lists the playable episodes of one title
type EpisodeMapping struct {
	ID       int       `yaml:"id"`
	Title    string    `yaml:"title"`
	Latest   bool      `yaml:"latest"`
	Episodes []Episode `yaml:"episodes"`
}
