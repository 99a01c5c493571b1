package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/animedexdb/internal/domain"
	"github.com/varoOP/animedexdb/internal/ratelimit"
)

type Service interface {
	GetAnime(ctx context.Context, malID int) (*Anime, error)
	GetYear(ctx context.Context, year int) ([]Anime, error)
}

type service struct {
	log        zerolog.Logger
	config     *domain.Config
	baseURL    string
	httpClient *http.Client
	cacheRepo  domain.CacheRepo
	limiter    *ratelimit.Limiter
}

// NewService creates the Jikan REST client. cacheRepo and limiter may be nil.
func NewService(log zerolog.Logger, config *domain.Config, cacheRepo domain.CacheRepo, limiter *ratelimit.Limiter) Service {
	return &service{
		log:        log.With().Str("module", "jikan").Logger(),
		config:     config,
		baseURL:    strings.TrimRight(config.JikanURL, "/"),
		httpClient: &http.Client{Timeout: config.HTTPTimeout},
		cacheRepo:  cacheRepo,
		limiter:    limiter,
	}
}

// GetAnime fetches the full MyAnimeList record of one anime
func (s *service) GetAnime(ctx context.Context, malID int) (*Anime, error) {
	if malID <= 0 {
		return nil, errors.Wrap(domain.ErrMissingParameter, "mal id required")
	}

	out := &AnimeResponse{}
	u := fmt.Sprintf("%s/anime/%d/full", s.baseURL, malID)
	if err := s.get(ctx, "anime:"+strconv.Itoa(malID), u, out); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch jikan anime %d", malID)
	}

	return &out.Data, nil
}

// GetYear fetches every anime that started airing in the given year. Paging
// stops at the first failed page and keeps what was fetched before it.
func (s *service) GetYear(ctx context.Context, year int) ([]Anime, error) {
	if year <= 0 {
		return nil, errors.Wrap(domain.ErrMissingParameter, "year required")
	}

	all := []Anime{}
	next := s.yearURL(year, 1)
	for page := 1; next != ""; page++ {
		if page > s.config.MaxPages {
			s.log.Warn().Int("year", year).Int("max_pages", s.config.MaxPages).Msg("Page limit reached, stopping import")
			break
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "interrupted while paging")
		}

		s.log.Info().Int("year", year).Int("page", page).Msg("Fetching page from MAL..")

		out := &AnimeListResponse{}
		key := fmt.Sprintf("year:%d:page:%d", year, page)
		if err := s.get(ctx, key, next, out); err != nil {
			s.log.Warn().Err(err).Int("year", year).Int("page", page).Msg("Stopping import at failed page")
			break
		}

		all = append(all, out.Data...)

		next = ""
		if out.Pagination.HasNextPage {
			next = s.yearURL(year, page+1)
		}
	}

	s.log.Info().Int("year", year).Int("count", len(all)).Msg("Fetched anime from MAL")
	return all, nil
}

func (s *service) yearURL(year, page int) string {
	q := url.Values{}
	q.Set("start_date", fmt.Sprintf("%d-01-01", year))
	q.Set("end_date", fmt.Sprintf("%d-12-31", year))
	q.Set("page", strconv.Itoa(page))
	return s.baseURL + "/anime?" + q.Encode()
}

func (s *service) get(ctx context.Context, key, rawURL string, out any) error {
	if body, ok := s.cached(ctx, key); ok {
		if err := json.Unmarshal(body, out); err == nil {
			s.log.Trace().Str("key", key).Msg("cache hit")
			return nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", domain.ErrFetchFailure, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrRecordNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code %d body=%q", domain.ErrFetchFailure, resp.StatusCode, string(body[:min(len(body), 200)]))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to unmarshal response: %w", domain.ErrFetchFailure, err)
	}

	s.store(ctx, key, body)
	return nil
}

func (s *service) cached(ctx context.Context, key string) ([]byte, bool) {
	if s.cacheRepo == nil || !s.config.CacheEnabled() {
		return nil, false
	}

	body, found, err := s.cacheRepo.GetPayload(ctx, domain.SourceJikan, key, s.config.CacheTTL)
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

	if err := s.cacheRepo.PutPayload(ctx, domain.SourceJikan, key, body); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to update payload cache")
	}
}
