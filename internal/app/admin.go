package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/varoOP/animedexdb/internal/catalog"
	"github.com/varoOP/animedexdb/internal/domain"
	"github.com/varoOP/animedexdb/internal/exporter"
	"github.com/varoOP/animedexdb/internal/jikan"
	"github.com/varoOP/animedexdb/internal/normalize"
)

// Sources accepted by Import.
const (
	SourceAniList = "anilist"
	SourceMAL     = "mal"
)

// session is one admin run: the catalog loaded from the document plus the
// number of duplicate records collapsed while loading it.
type session struct {
	store *catalog.Store
	dupes int
}

func (a *App) load(ctx context.Context) (*session, error) {
	doc, err := a.documentRepo.Get(ctx, a.paths.DocumentPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		a.log.Warn().Str("path", string(a.paths.DocumentPath)).Msg("No catalog document found, starting empty")
		doc = &domain.Document{}
	case err != nil:
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	dupes, records, err := a.dedupeService.CheckDupes(ctx, doc.Collection)
	if err != nil {
		return nil, fmt.Errorf("failed to check dupes: %w", err)
	}

	store := catalog.New(records...)
	for _, l := range doc.LatestEpisodes {
		if store.Has(l.ID) {
			_ = store.SetLatest(l.ID, true)
		}
	}

	a.log.Info().Int("records", store.Len()).Int("latest", len(store.LatestIDs())).Msg("Catalog loaded")
	return &session{store: store, dupes: dupes}, nil
}

func (a *App) commit(ctx context.Context, s *session) (domain.Statistics, error) {
	doc := exporter.Export(s.store)
	if err := a.documentRepo.Store(ctx, a.paths.DocumentPath, doc); err != nil {
		return domain.Statistics{}, fmt.Errorf("failed to store catalog: %w", err)
	}

	stats := exporter.Stats(doc)
	stats.DupeCount = s.dupes

	a.log.Info().
		Int("collection", stats.TotalAnime).
		Int("watchable", stats.Watchable).
		Float64("watchable_pct", stats.WatchablePct).
		Int("finished", stats.Finished).
		Int("latest_episodes", stats.LatestEpisodes).
		Int("dupe_count", stats.DupeCount).
		Msg("=== CATALOG EXPORTED ===")

	return stats, nil
}

// admin runs fn inside a load → mutate → export session and reports the
// outcome through the notification service.
func (a *App) admin(ctx context.Context, fn func(ctx context.Context, store *catalog.Store) error) (stats domain.Statistics, err error) {
	defer func() {
		if err != nil {
			if notifyErr := a.notificationService.SendError(ctx, err); notifyErr != nil {
				a.log.Warn().Err(notifyErr).Msg("Failed to send error notification")
			}
		}
	}()

	s, err := a.load(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}

	if err := fn(ctx, s.store); err != nil {
		return domain.Statistics{}, err
	}

	stats, err = a.commit(ctx, s)
	if err != nil {
		return domain.Statistics{}, err
	}

	if notifyErr := a.notificationService.SendSuccess(ctx, stats); notifyErr != nil {
		a.log.Warn().Err(notifyErr).Msg("Failed to send success notification")
	}

	return stats, nil
}

// FetchRequest names one title to fetch. AniListID wins when both ids are set;
// MALID alone builds a MyAnimeList-only record.
type FetchRequest struct {
	AniListID int
	MALID     int
	Latest    bool
}

// Fetch retrieves one title, normalizes it and upserts it. Episodes already
// attached to the record are kept.
func (a *App) Fetch(ctx context.Context, req FetchRequest) (domain.Anime, error) {
	var fetched domain.Anime
	_, err := a.admin(ctx, func(ctx context.Context, store *catalog.Store) error {
		rec, err := a.fetchRecord(ctx, req)
		if err != nil {
			return err
		}

		if existing, ok := store.Get(rec.ID); ok {
			rec.EpisodesList = existing.EpisodesList
		}
		store.Upsert(rec)

		if req.Latest {
			if err := store.SetLatest(rec.ID, true); err != nil {
				return err
			}
		}

		fetched, _ = store.Get(rec.ID)
		a.log.Info().Int("id", rec.ID).Str("title", rec.Title.Resolve()).Msg("Saved anime")
		return nil
	})
	return fetched, err
}

func (a *App) fetchRecord(ctx context.Context, req FetchRequest) (domain.Anime, error) {
	switch {
	case req.AniListID > 0:
		media, err := a.anilistService.GetMedia(ctx, req.AniListID)
		if err != nil {
			return domain.Anime{}, fmt.Errorf("failed to fetch anilist %d: %w", req.AniListID, err)
		}

		malID := req.MALID
		if malID == 0 {
			malID = media.IDMal
		}

		var extra *jikan.Anime
		if malID > 0 {
			extra, err = a.jikanService.GetAnime(ctx, malID)
			if err != nil {
				a.log.Warn().Err(err).Int("mal_id", malID).Msg("MyAnimeList data unavailable, saving AniList data only")
				extra = nil
			}
		}

		return normalize.FromAniList(media, extra), nil

	case req.MALID > 0:
		j, err := a.jikanService.GetAnime(ctx, req.MALID)
		if err != nil {
			return domain.Anime{}, fmt.Errorf("failed to fetch mal %d: %w", req.MALID, err)
		}
		return normalize.FromJikan(j), nil
	}

	return domain.Anime{}, fmt.Errorf("anilist or mal id required: %w", domain.ErrMissingParameter)
}

// Import adds every title of year from source. Titles already in the
// catalog are left untouched. It returns how many records were added.
func (a *App) Import(ctx context.Context, source string, year int) (int, error) {
	added := 0
	_, err := a.admin(ctx, func(ctx context.Context, store *catalog.Store) error {
		var records []domain.Anime

		switch source {
		case SourceAniList:
			media, err := a.anilistService.GetYear(ctx, year)
			if err != nil {
				return fmt.Errorf("failed to import %d from anilist: %w", year, err)
			}
			for i := range media {
				records = append(records, normalize.FromAniList(&media[i], nil))
			}

		case SourceMAL:
			list, err := a.jikanService.GetYear(ctx, year)
			if err != nil {
				return fmt.Errorf("failed to import %d from mal: %w", year, err)
			}
			for i := range list {
				records = append(records, normalize.FromJikan(&list[i]))
			}

		default:
			return fmt.Errorf("unknown source %q: %w", source, domain.ErrMissingParameter)
		}

		added = store.AppendNew(records...)
		a.log.Info().Str("source", source).Int("year", year).Int("fetched", len(records)).Int("added", added).Msg("Import complete")
		return nil
	})
	return added, err
}

// Remove deletes a record and its latest-episodes entry.
func (a *App) Remove(ctx context.Context, id int) error {
	_, err := a.admin(ctx, func(ctx context.Context, store *catalog.Store) error {
		if !store.Remove(id) {
			return fmt.Errorf("anime %d: %w", id, domain.ErrRecordNotFound)
		}
		a.log.Info().Int("id", id).Msg("Removed anime")
		return nil
	})
	return err
}

// ApplyEpisodes copies the episode lists and latest flags of the episodes
// master file onto the catalog. Entries for unknown ids are skipped.
func (a *App) ApplyEpisodes(ctx context.Context) (int, error) {
	applied := 0
	_, err := a.admin(ctx, func(ctx context.Context, store *catalog.Store) error {
		master, err := a.episodesRepo.GetEpisodesMaster(ctx, a.paths.EpisodesPath)
		if err != nil {
			return fmt.Errorf("failed to read episodes master: %w", err)
		}

		for _, m := range master.Anime {
			if !store.Has(m.ID) {
				a.log.Warn().Int("id", m.ID).Str("title", m.Title).Msg("Episodes master entry not in catalog, skipping")
				continue
			}
			if err := store.UpdateEpisodes(m.ID, m.Episodes); err != nil {
				return err
			}
			if err := store.SetLatest(m.ID, m.Latest); err != nil {
				return err
			}
			applied++
		}

		a.log.Info().Int("applied", applied).Int("entries", len(master.Anime)).Msg("Episodes applied")
		return nil
	})
	return applied, err
}

// Export rewrites the document with freshly derived slices.
func (a *App) Export(ctx context.Context) (domain.Statistics, error) {
	return a.admin(ctx, func(context.Context, *catalog.Store) error { return nil })
}

// FormatEpisodes rewrites the episodes master file in canonical form
func (a *App) FormatEpisodes(ctx context.Context) error {
	if err := a.formatService.FormatEpisodes(ctx); err != nil {
		return fmt.Errorf("failed to format episodes master: %w", err)
	}
	return nil
}

// PruneCache drops cached payloads older than the cache ttl.
func (a *App) PruneCache(ctx context.Context) (int64, error) {
	if a.cacheRepo == nil {
		a.log.Info().Msg("Payload cache disabled, nothing to prune")
		return 0, nil
	}

	n, err := a.cacheRepo.Prune(ctx, time.Now().Add(-a.config.CacheTTL))
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}

	a.log.Info().Int64("pruned", n).Msg("Payload cache pruned")
	return n, nil
}
