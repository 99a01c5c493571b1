package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/animedexdb/internal/domain"
	"github.com/varoOP/animedexdb/internal/ratelimit"
)

type Service interface {
	GetMedia(ctx context.Context, id int) (*Media, error)
	GetYear(ctx context.Context, year int) ([]Media, error)
}

type service struct {
	log        zerolog.Logger
	config     *domain.Config
	baseURL    string
	httpClient *http.Client
	cacheRepo  domain.CacheRepo
	limiter    *ratelimit.Limiter
}

// NewService creates the AniList GraphQL client. cacheRepo and limiter may be nil.
func NewService(log zerolog.Logger, config *domain.Config, cacheRepo domain.CacheRepo, limiter *ratelimit.Limiter) Service {
	return &service{
		log:        log.With().Str("module", "anilist").Logger(),
		config:     config,
		baseURL:    strings.TrimRight(config.AniListURL, "/"),
		httpClient: &http.Client{Timeout: config.HTTPTimeout},
		cacheRepo:  cacheRepo,
		limiter:    limiter,
	}
}

type response interface {
	graphQLErrors() []graphQLError
}

func (r *mediaResponse) graphQLErrors() []graphQLError { return r.Errors }
func (r *pageResponse) graphQLErrors() []graphQLError  { return r.Errors }

// GetMedia fetches a single anime by its AniList id
func (s *service) GetMedia(ctx context.Context, id int) (*Media, error) {
	if id <= 0 {
		return nil, errors.Wrap(domain.ErrMissingParameter, "anilist id required")
	}

	out := &mediaResponse{}
	key := "media:" + strconv.Itoa(id)
	if err := s.query(ctx, key, mediaByIDQuery, map[string]any{"id": id}, out); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch anilist media %d", id)
	}

	if out.Data.Media == nil {
		return nil, errors.Wrapf(domain.ErrRecordNotFound, "anilist media %d", id)
	}

	return out.Data.Media, nil
}

// GetYear fetches every anime of a season year, one page at a time,
// until AniList reports no further page.
func (s *service) GetYear(ctx context.Context, year int) ([]Media, error) {
	if year <= 0 {
		return nil, errors.Wrap(domain.ErrMissingParameter, "year required")
	}

	all := []Media{}
	for page := 1; ; page++ {
		if page > s.config.MaxPages {
			s.log.Warn().Int("year", year).Int("max_pages", s.config.MaxPages).Msg("Page limit reached, stopping import")
			break
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "interrupted while paging")
		}

		s.log.Info().Int("year", year).Int("page", page).Msg("Fetching page from AniList..")

		out := &pageResponse{}
		key := fmt.Sprintf("year:%d:page:%d", year, page)
		vars := map[string]any{"year": year, "page": page, "perPage": PerPage}
		if err := s.query(ctx, key, mediaByYearQuery, vars, out); err != nil {
			return nil, errors.Wrapf(err, "failed to fetch anilist page %d for %d", page, year)
		}

		all = append(all, out.Data.Page.Media...)
		if !out.Data.Page.PageInfo.HasNextPage {
			break
		}
	}

	s.log.Info().Int("year", year).Int("count", len(all)).Msg("Fetched anime from AniList")
	return all, nil
}

func (s *service) query(ctx context.Context, key, query string, vars map[string]any, out response) error {
	if body, ok := s.cached(ctx, key); ok {
		if err := json.Unmarshal(body, out); err == nil && len(out.graphQLErrors()) == 0 {
			s.log.Trace().Str("key", key).Msg("cache hit")
			return nil
		}
	}

	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return errors.Wrap(err, "failed to marshal query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", domain.ErrFetchFailure, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrRecordNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code %d body=%q", domain.ErrFetchFailure, resp.StatusCode, snippet(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to unmarshal response: %w", domain.ErrFetchFailure, err)
	}

	if errs := out.graphQLErrors(); len(errs) > 0 {
		for _, e := range errs {
			if e.Status == http.StatusNotFound {
				return domain.ErrRecordNotFound
			}
		}
		return fmt.Errorf("%w: graphql error: %s", domain.ErrFetchFailure, errs[0].Message)
	}

	s.store(ctx, key, body)
	return nil
}

func (s *service) cached(ctx context.Context, key string) ([]byte, bool) {
	if s.cacheRepo == nil || !s.config.CacheEnabled() {
		return nil, false
	}

	body, found, err := s.cacheRepo.GetPayload(ctx, domain.SourceAniList, key, s.config.CacheTTL)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to read payload cache")
		return nil, false
	}
	return body, found
}

func (s *service) store(ctx context.Context, key string, body []byte) {
	if s.cacheRepo == nil || !s.config.CacheEnabled() {
		return
	}

	if err := s.cacheRepo.PutPayload(ctx, domain.SourceAniList, key, body); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to update payload cache")
	}
}

func snippet(b []byte) string {
	return string(b[:min(len(b), 200)])
}
