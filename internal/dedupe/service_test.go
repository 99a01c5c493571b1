package dedupe

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/varoOP/animedexdb/internal/domain"
)

func TestCheckDupes(t *testing.T) {
	t.Parallel()

	in := []domain.Anime{
		{ID: 1, Title: domain.Title{UserPreferred: "first"}},
		{ID: 2, Title: domain.Title{UserPreferred: "two"}},
		{ID: 1, Title: domain.Title{UserPreferred: "second"}},
		{ID: 3, Title: domain.Title{UserPreferred: "three"}},
		{ID: 1, Title: domain.Title{UserPreferred: "third"}},
	}

	svc := NewService(zerolog.Nop())
	n, out, err := svc.CheckDupes(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, out, 3)
	require.Equal(t, 1, out[0].ID)
	require.Equal(t, "third", out[0].Title.UserPreferred)
	require.Equal(t, 2, out[1].ID)
	require.Equal(t, 3, out[2].ID)
}

func TestCheckDupesWithoutDuplicates(t *testing.T) {
	t.Parallel()

	in := []domain.Anime{{ID: 1}, {ID: 2}}
	n, out, err := NewService(zerolog.Nop()).CheckDupes(context.Background(), in)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, in, out)
}
