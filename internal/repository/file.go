package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/varoOP/animedexdb/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileRepository implements domain.DocumentRepository and domain.EpisodesRepository using file storage
type FileRepository struct {
	log zerolog.Logger
}

// NewFileRepository creates a new file-based repository
func NewFileRepository(log zerolog.Logger) *FileRepository {
	return &FileRepository{
		log: log.With().Str("module", "repository").Logger(),
	}
}

var _ domain.DocumentRepository = (*FileRepository)(nil)
var _ domain.EpisodesRepository = (*FileRepository)(nil)

// Get reads the catalog document. Unreadable documents are reported as
// domain.ErrFetchFailure; a missing file also matches fs.ErrNotExist.
func (r *FileRepository) Get(ctx context.Context, path domain.CatalogPath) (*domain.Document, error) {
	body, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
	}

	doc := &domain.Document{}
	if err := json.Unmarshal(body, doc); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal json from %s: %w", domain.ErrFetchFailure, path, err)
	}

	r.log.Debug().Str("path", string(path)).Int("count", len(doc.Collection)).Msg("loaded catalog document")
	return doc, nil
}

// Store replaces the document atomically: it writes a temporary file next to
// the target and renames it over the old one.
func (r *FileRepository) Store(ctx context.Context, path domain.CatalogPath, doc *domain.Document) error {
	j, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog document: %w", err)
	}

	if err := writeFileAtomic(string(path), j); err != nil {
		return err
	}

	r.log.Debug().Str("path", string(path)).Int("count", len(doc.Collection)).Msg("stored catalog document")
	return nil
}

// Modified returns the document modification time in unix nanoseconds.
func (r *FileRepository) Modified(path domain.CatalogPath) (int64, error) {
	info, err := os.Stat(string(path))
	if err != nil {
		return 0, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	return info.ModTime().UnixNano(), nil
}

// GetEpisodesMaster retrieves the episodes master mapping from a file
func (r *FileRepository) GetEpisodesMaster(ctx context.Context, path domain.CatalogPath) (*domain.EpisodesMaster, error) {
	b, err := readFile(path)
	if err != nil {
		return nil, err
	}

	m := &domain.EpisodesMaster{}
	if err := yaml.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml from %s: %w", path, err)
	}

	return m, nil
}

// StoreEpisodesMaster saves the episodes master mapping with a blank line
// between titles.
func (r *FileRepository) StoreEpisodesMaster(ctx context.Context, path domain.CatalogPath, master *domain.EpisodesMaster) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(master); err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	entryFound := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "- id:") {
			if entryFound {
				lines[i-1] += "\n"
			} else {
				entryFound = true
			}
		}
	}

	if err := writeFileAtomic(string(path), []byte(strings.Join(lines, "\n"))); err != nil {
		return err
	}

	r.log.Debug().Str("path", string(path)).Int("count", len(master.Anime)).Msg("stored episodes master")
	return nil
}

func readFile(path domain.CatalogPath) ([]byte, error) {
	info, err := os.Stat(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	f, err := os.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return body, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to file %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync file %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to chmod file %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
