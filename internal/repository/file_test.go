package repository

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/varoOP/animedexdb/internal/domain"
)

func TestDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := domain.CatalogPath(filepath.Join(dir, "nested", "anime_data.json"))
	repo := NewFileRepository(zerolog.Nop())

	doc := &domain.Document{
		Collection: []domain.Anime{{
			ID:           1,
			Title:        domain.Title{UserPreferred: "Cowboy Bebop"},
			EpisodesList: []domain.Episode{{Number: "1", URL: "https://e/1"}},
		}},
	}
	doc.Normalize()
	require.NoError(t, repo.Store(context.Background(), path, doc))

	got, err := repo.Get(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, got.Collection, 1)
	require.Equal(t, "Cowboy Bebop", got.Collection[0].Title.UserPreferred)
	require.Equal(t, domain.EpisodeNumber("1"), got.Collection[0].EpisodesList[0].Number)
	require.NotNil(t, got.Slider)

	entries, err := os.ReadDir(filepath.Dir(string(path)))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	mod, err := repo.Modified(path)
	require.NoError(t, err)
	require.Greater(t, mod, int64(0))
}

func TestGetMissingDocument(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(zerolog.Nop())
	_, err := repo.Get(context.Background(), domain.CatalogPath(filepath.Join(t.TempDir(), "missing.json")))
	require.ErrorIs(t, err, domain.ErrFetchFailure)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestGetCorruptDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "anime_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"collection": [`), 0644))

	repo := NewFileRepository(zerolog.Nop())
	_, err := repo.Get(context.Background(), domain.CatalogPath(path))
	require.ErrorIs(t, err, domain.ErrFetchFailure)
	require.NotErrorIs(t, err, fs.ErrNotExist)
}

func TestGetLegacyDocument(t *testing.T) {
	t.Parallel()

	legacy := `{"collection":[{"id":9,"title":{"userPreferred":"Legacy"},"duration":"24 min per ep","episodesList":[{"number":3,"url":"u"}]}]}`
	path := filepath.Join(t.TempDir(), "anime_data.json")
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	repo := NewFileRepository(zerolog.Nop())
	doc, err := repo.Get(context.Background(), domain.CatalogPath(path))
	require.NoError(t, err)
	require.Equal(t, domain.Minutes(24), doc.Collection[0].Duration)
	require.Equal(t, domain.EpisodeNumber("3"), doc.Collection[0].EpisodesList[0].Number)
}

func TestStoreReplacesDocument(t *testing.T) {
	t.Parallel()

	path := domain.CatalogPath(filepath.Join(t.TempDir(), "anime_data.json"))
	repo := NewFileRepository(zerolog.Nop())

	require.NoError(t, repo.Store(context.Background(), path, &domain.Document{Collection: []domain.Anime{{ID: 1}, {ID: 2}}}))
	first, err := repo.Modified(path)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Store(context.Background(), path, &domain.Document{Collection: []domain.Anime{{ID: 3}}}))

	doc, err := repo.Get(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, doc.Collection, 1)
	require.Equal(t, 3, doc.Collection[0].ID)

	second, err := repo.Modified(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, second, first)
}

func TestEpisodesMasterRoundTrip(t *testing.T) {
	t.Parallel()

	path := domain.CatalogPath(filepath.Join(t.TempDir(), "episodes-master.yaml"))
	repo := NewFileRepository(zerolog.Nop())

	master := &domain.EpisodesMaster{Anime: []domain.EpisodeMapping{
		{ID: 21, Title: "One Piece", Latest: true, Episodes: []domain.Episode{{Number: "1", URL: "https://e/op/1"}}},
		{ID: 30, Title: "Evangelion", Episodes: []domain.Episode{{Number: "1", URL: "https://e/eva/1"}, {Number: "2", URL: "https://e/eva/2"}}},
	}}
	require.NoError(t, repo.StoreEpisodesMaster(context.Background(), path, master))

	raw, err := os.ReadFile(string(path))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), "anime:\n"))
	require.Regexp(t, `\n\n\s*- id: 30\n`, string(raw))
	require.Equal(t, 1, strings.Count(string(raw), "\n\n"))

	got, err := repo.GetEpisodesMaster(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, master, got)
}

func TestGetEpisodesMasterMissing(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(zerolog.Nop())
	_, err := repo.GetEpisodesMaster(context.Background(), domain.CatalogPath(filepath.Join(t.TempDir(), "none.yaml")))
	require.ErrorIs(t, err, fs.ErrNotExist)
}
