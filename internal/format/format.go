package format

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/varoOP/animedexdb/internal/domain"
)

type Service interface {
	// FormatEpisodes rewrites the episodes master file in canonical form.
	FormatEpisodes(ctx context.Context) error
}

type service struct {
	log          zerolog.Logger
	paths        *domain.Paths
	episodesRepo domain.EpisodesRepository
}

func NewService(log zerolog.Logger, paths *domain.Paths, episodesRepo domain.EpisodesRepository) Service {
	return &service{
		log:          log.With().Str("module", "format").Logger(),
		paths:        paths,
		episodesRepo: episodesRepo,
	}
}

func (s *service) FormatEpisodes(ctx context.Context) error {
	m, err := s.episodesRepo.GetEpisodesMaster(ctx, s.paths.EpisodesPath)
	if err != nil {
		return fmt.Errorf("failed to read episodes master: %w", err)
	}

	Canonicalize(m)

	if err := s.episodesRepo.StoreEpisodesMaster(ctx, s.paths.EpisodesPath, m); err != nil {
		return fmt.Errorf("failed to store episodes master: %w", err)
	}

	s.log.Info().Int("count", len(m.Anime)).Str("path", string(s.paths.EpisodesPath)).Msg("Formatted episodes master")
	return nil
}

// Canonicalize trims every value, drops episodes without a url and sorts
// titles by id. Episode order is kept as written.
func Canonicalize(m *domain.EpisodesMaster) {
	for i := range m.Anime {
		e := &m.Anime[i]
		e.Title = strings.TrimSpace(e.Title)

		eps := make([]domain.Episode, 0, len(e.Episodes))
		for _, ep := range e.Episodes {
			ep.Number = domain.EpisodeNumber(strings.TrimSpace(string(ep.Number)))
			ep.URL = strings.TrimSpace(ep.URL)
			if ep.URL == "" {
				continue
			}
			eps = append(eps, ep)
		}
		e.Episodes = eps
	}

	slices.SortStableFunc(m.Anime, func(a, b domain.EpisodeMapping) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
