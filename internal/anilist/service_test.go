package anilist

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/varoOP/animedexdb/internal/domain"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetPayload(_ context.Context, source, key string, _ time.Duration) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[source+"|"+key]
	return b, ok, nil
}

func (c *memCache) PutPayload(_ context.Context, source, key string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[source+"|"+key] = body
	return nil
}

func (c *memCache) Prune(context.Context, time.Time) (int64, error) { return 0, nil }

func testConfig(url string, ttl time.Duration) *domain.Config {
	return &domain.Config{
		AniListURL:  url,
		HTTPTimeout: 5 * time.Second,
		MaxPages:    10,
		CacheTTL:    ttl,
	}
}

func decodeRequest(t *testing.T, r *http.Request) graphQLRequest {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var req graphQLRequest
	require.NoError(t, json.Unmarshal(body, &req))
	return req
}

func TestGetMedia(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		req := decodeRequest(t, r)
		require.EqualValues(t, 21, req.Variables["id"])
		_, _ = io.WriteString(w, `{"data":{"Media":{"id":21,"averageScore":88,"title":{"romaji":"One Piece","userPreferred":"One Piece"},"popularity":500,"trending":40}}}`)
	}))
	defer srv.Close()

	svc := NewService(zerolog.Nop(), testConfig(srv.URL, 0), nil, nil)
	m, err := svc.GetMedia(context.Background(), 21)
	require.NoError(t, err)
	require.Equal(t, 21, m.ID)
	require.Equal(t, 88, m.AverageScore)
	require.Equal(t, "One Piece", m.Title.UserPreferred)
	require.Equal(t, 500, m.Popularity)
}

func TestGetMediaNotFound(t *testing.T) {
	t.Parallel()

	cases := map[string]http.HandlerFunc{
		"graphql 404": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"data":{"Media":null},"errors":[{"message":"Not Found.","status":404}]}`)
		},
		"http 404": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"data":{"Media":null},"errors":[{"message":"Not Found.","status":404}]}`)
		},
		"null media": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"data":{"Media":null}}`)
		},
	}

	for name, h := range cases {
		h := h
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(h)
			defer srv.Close()

			svc := NewService(zerolog.Nop(), testConfig(srv.URL, 0), nil, nil)
			_, err := svc.GetMedia(context.Background(), 1)
			require.ErrorIs(t, err, domain.ErrRecordNotFound)
		})
	}
}

func TestGetMediaFailures(t *testing.T) {
	t.Parallel()

	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"graphql error": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"errors":[{"message":"Too Many Requests.","status":429}]}`)
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"data":`)
		},
	}

	for name, h := range cases {
		h := h
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(h)
			defer srv.Close()

			svc := NewService(zerolog.Nop(), testConfig(srv.URL, 0), nil, nil)
			_, err := svc.GetMedia(context.Background(), 1)
			require.ErrorIs(t, err, domain.ErrFetchFailure)
		})
	}
}

func TestGetMediaRequiresID(t *testing.T) {
	t.Parallel()

	svc := NewService(zerolog.Nop(), testConfig("http://127.0.0.1:1", 0), nil, nil)
	_, err := svc.GetMedia(context.Background(), 0)
	require.ErrorIs(t, err, domain.ErrMissingParameter)
}

func TestGetYearPagesUntilLastPage(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		req := decodeRequest(t, r)
		require.EqualValues(t, 2023, req.Variables["year"])

		page := int(req.Variables["page"].(float64))
		resp := pageResponse{}
		resp.Data.Page.PageInfo.HasNextPage = page < 3
		resp.Data.Page.Media = []Media{{ID: page * 10}, {ID: page*10 + 1}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	svc := NewService(zerolog.Nop(), testConfig(srv.URL, 0), nil, nil)
	media, err := svc.GetYear(context.Background(), 2023)
	require.NoError(t, err)
	require.Len(t, media, 6)
	require.Equal(t, int32(3), calls.Load())
	require.Equal(t, 10, media[0].ID)
	require.Equal(t, 31, media[5].ID)
}

func TestGetYearStopsAtPageLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{"data":{"Page":{"pageInfo":{"hasNextPage":true},"media":[{"id":1}]}}}`)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL, 0)
	cfg.MaxPages = 2

	svc := NewService(zerolog.Nop(), cfg, nil, nil)
	media, err := svc.GetYear(context.Background(), 2020)
	require.NoError(t, err)
	require.Len(t, media, 2)
	require.Equal(t, int32(2), calls.Load())
}

func TestGetYearAbortsOnFailedPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		if req.Variables["page"].(float64) > 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = io.WriteString(w, `{"data":{"Page":{"pageInfo":{"hasNextPage":true},"media":[{"id":1}]}}}`)
	}))
	defer srv.Close()

	svc := NewService(zerolog.Nop(), testConfig(srv.URL, 0), nil, nil)
	_, err := svc.GetYear(context.Background(), 2020)
	require.ErrorIs(t, err, domain.ErrFetchFailure)
}

func TestCacheHitSkipsRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{"data":{"Media":{"id":5,"title":{"romaji":"Cached"}}}}`)
	}))
	defer srv.Close()

	cache := newMemCache()
	svc := NewService(zerolog.Nop(), testConfig(srv.URL, time.Hour), cache, nil)

	for i := 0; i < 2; i++ {
		m, err := svc.GetMedia(context.Background(), 5)
		require.NoError(t, err)
		require.Equal(t, "Cached", m.Title.Romaji)
	}
	require.Equal(t, int32(1), calls.Load())

	_, found, err := cache.GetPayload(context.Background(), domain.SourceAniList, "media:5", time.Hour)
	require.NoError(t, err)
	require.True(t, found)
}

func TestCacheDisabledByZeroTTL(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{"data":{"Media":{"id":5}}}`)
	}))
	defer srv.Close()

	svc := NewService(zerolog.Nop(), testConfig(srv.URL, 0), newMemCache(), nil)
	for i := 0; i < 2; i++ {
		_, err := svc.GetMedia(context.Background(), 5)
		require.NoError(t, err)
	}
	require.Equal(t, int32(2), calls.Load())
}
