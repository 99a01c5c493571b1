package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/varoOP/animedexdb/internal/domain"
)

func rec(id int, title string) domain.Anime {
	return domain.Anime{ID: id, Title: domain.Title{UserPreferred: title}}
}

func ids(list []domain.Anime) []int {
	out := []int{}
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestUpsertReplacesInPlace(t *testing.T) {
	t.Parallel()

	s := New(rec(1, "One"), rec(2, "Two"), rec(3, "Three"))
	s.Upsert(rec(2, "Two Updated"))
	s.Upsert(rec(4, "Four"))

	require.Equal(t, []int{1, 2, 3, 4}, ids(s.All()))
	got, ok := s.Get(2)
	require.True(t, ok)
	require.Equal(t, "Two Updated", got.Title.UserPreferred)
	require.Equal(t, 4, s.Len())
}

func TestNewCollapsesDuplicates(t *testing.T) {
	t.Parallel()

	s := New(rec(1, "a"), rec(2, "b"), rec(1, "c"))
	require.Equal(t, []int{1, 2}, ids(s.All()))
	got, _ := s.Get(1)
	require.Equal(t, "c", got.Title.UserPreferred)
}

func TestNoDuplicateIDsAfterUpserts(t *testing.T) {
	t.Parallel()

	s := New()
	for i := 0; i < 50; i++ {
		s.Upsert(rec(i%7, "x"))
	}

	seen := map[int]bool{}
	for _, a := range s.All() {
		require.False(t, seen[a.ID])
		seen[a.ID] = true
	}
	require.Equal(t, 7, s.Len())
}

func TestRemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	s := New(rec(1, "a"), rec(2, "b"), rec(3, "c"))
	require.NoError(t, s.SetLatest(2, true))

	require.True(t, s.Remove(2))
	require.False(t, s.Remove(2))
	require.False(t, s.Has(2))
	require.Equal(t, []int{1, 3}, ids(s.All()))
	require.Empty(t, s.LatestIDs())

	got, ok := s.Get(3)
	require.True(t, ok)
	require.Equal(t, 3, got.ID)
}

func TestAllReturnsCopy(t *testing.T) {
	t.Parallel()

	s := New(rec(1, "a"))
	all := s.All()
	all[0].Title.UserPreferred = "mutated"

	got, _ := s.Get(1)
	require.Equal(t, "a", got.Title.UserPreferred)
}

func TestAppendNewSkipsKnownIDs(t *testing.T) {
	t.Parallel()

	s := New(rec(1, "keep"))
	added := s.AppendNew(rec(1, "replace?"), rec(2, "b"), rec(3, "c"), rec(2, "again"))

	require.Equal(t, 2, added)
	require.Equal(t, []int{1, 2, 3}, ids(s.All()))
	got, _ := s.Get(1)
	require.Equal(t, "keep", got.Title.UserPreferred)
}

func TestLatestCuration(t *testing.T) {
	t.Parallel()

	s := New(rec(1, "a"), rec(2, "b"), rec(3, "c"))
	require.NoError(t, s.SetLatest(3, true))
	require.NoError(t, s.SetLatest(1, true))
	require.NoError(t, s.SetLatest(3, true))
	require.Equal(t, []int{1, 3}, s.LatestIDs())
	require.True(t, s.IsLatest(1))

	s.Upsert(rec(1, "renamed"))
	latest := s.Latest()
	require.Equal(t, "renamed", latest[0].Title.UserPreferred)

	require.NoError(t, s.SetLatest(1, false))
	require.Equal(t, []int{3}, s.LatestIDs())

	require.ErrorIs(t, s.SetLatest(99, true), domain.ErrRecordNotFound)
	require.NoError(t, s.SetLatest(99, false))
}

func TestUpdateEpisodes(t *testing.T) {
	t.Parallel()

	s := New(rec(1, "a"))
	eps := []domain.Episode{{Number: "1", URL: "https://e/1"}, {Number: "2", URL: "https://e/2"}}
	require.NoError(t, s.UpdateEpisodes(1, eps))

	got, _ := s.Get(1)
	require.True(t, got.Watchable())
	require.Len(t, got.EpisodesList, 2)

	require.NoError(t, s.UpdateEpisodes(1, nil))
	got, _ = s.Get(1)
	require.False(t, got.Watchable())
	require.NotNil(t, got.EpisodesList)

	require.ErrorIs(t, s.UpdateEpisodes(7, eps), domain.ErrRecordNotFound)
}
