package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/varoOP/animedexdb/internal/domain"
)

// DocumentSource hands out the current catalog document.
type DocumentSource interface {
	Document(ctx context.Context) (*domain.Document, error)
}

// FileSource serves the document from disk and reloads it whenever its
// modification time changes. Loaded documents are never mutated.
type FileSource struct {
	log  zerolog.Logger
	repo domain.DocumentRepository
	path domain.CatalogPath

	mu      sync.RWMutex
	doc     *domain.Document
	modTime int64
}

func NewFileSource(log zerolog.Logger, repo domain.DocumentRepository, path domain.CatalogPath) *FileSource {
	return &FileSource{
		log:  log.With().Str("module", "source").Logger(),
		repo: repo,
		path: path,
	}
}

func (s *FileSource) Document(ctx context.Context) (*domain.Document, error) {
	mod, err := s.repo.Modified(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
	}

	s.mu.RLock()
	doc, current := s.doc, s.modTime
	s.mu.RUnlock()

	if doc != nil && mod == current {
		return doc, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc != nil && s.modTime == mod {
		return s.doc, nil
	}

	doc, err = s.repo.Get(ctx, s.path)
	if err != nil {
		return nil, err
	}
	doc.Normalize()

	s.doc, s.modTime = doc, mod
	s.log.Info().Str("path", string(s.path)).Int("count", len(doc.Collection)).Msg("Loaded catalog document")
	return doc, nil
}

// StaticSource always serves the same document.
type StaticSource struct {
	Doc *domain.Document
}

func (s StaticSource) Document(context.Context) (*domain.Document, error) {
	if s.Doc == nil {
		return nil, domain.ErrFetchFailure
	}
	return s.Doc, nil
}
