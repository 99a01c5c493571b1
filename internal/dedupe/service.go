package dedupe

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/varoOP/animedexdb/internal/domain"
)

type Service interface {
	CheckDupes(ctx context.Context, anime []domain.Anime) (int, []domain.Anime, error)
}

type service struct {
	log zerolog.Logger
}

func NewService(log zerolog.Logger) Service {
	return &service{
		log: log.With().Str("module", "dedupe").Logger(),
	}
}

// CheckDupes collapses records sharing an id. The last occurrence wins and
// takes the position of the first one. It returns how many records were dropped.
func (s *service) CheckDupes(ctx context.Context, anime []domain.Anime) (int, []domain.Anime, error) {
	first := make(map[int]int, len(anime))
	deduped := make([]domain.Anime, 0, len(anime))
	dupes := 0

	for _, a := range anime {
		if err := ctx.Err(); err != nil {
			return 0, nil, err
		}

		if i, ok := first[a.ID]; ok {
			s.log.Debug().
				Int("id", a.ID).
				Str("kept_title", a.Title.Resolve()).
				Str("dropped_title", deduped[i].Title.Resolve()).
				Msg("Replacing duplicate entry")
			deduped[i] = a
			dupes++
			continue
		}

		first[a.ID] = len(deduped)
		deduped = append(deduped, a)
	}

	if dupes > 0 {
		s.log.Info().Int("dupe_count", dupes).Msg("Found duplicates")
	}

	return dupes, deduped, nil
}
