package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/varoOP/animedexdb/internal/domain"
)

func TestDiscordSendSuccess(t *testing.T) {
	t.Parallel()

	var got discordWebhook
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	svc := NewService(zerolog.Nop(), srv.URL)
	err := svc.SendSuccess(context.Background(), domain.Statistics{TotalAnime: 12, Watchable: 3, WatchablePct: 25})
	require.NoError(t, err)

	require.Len(t, got.Embeds, 1)
	require.Equal(t, "AnimeDex Catalog Exported", got.Embeds[0].Title)
	require.Equal(t, "12", got.Embeds[0].Fields[0].Value)
	require.Equal(t, "3 (25.0%)", got.Embeds[0].Fields[1].Value)
}

func TestDiscordSendErrorReportsStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	svc := NewService(zerolog.Nop(), srv.URL)
	require.Error(t, svc.SendError(context.Background(), errors.New("boom")))
}

func TestNoWebhookIsNoop(t *testing.T) {
	t.Parallel()

	svc := NewService(zerolog.Nop(), "")
	require.NoError(t, svc.SendSuccess(context.Background(), domain.Statistics{}))
	require.NoError(t, svc.SendError(context.Background(), errors.New("boom")))
}
