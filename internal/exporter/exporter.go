// Package exporter derives the persisted document from the catalog.
package exporter

import (
	"github.com/varoOP/animedexdb/internal/domain"
	"github.com/varoOP/animedexdb/internal/query"
)

// Slice sizes of the exported document.
const (
	SliderSize          = 11
	TrendingSize        = 11
	PopularSize         = 10
	MostFavoriteSize    = 10
	LatestCompletedSize = 20
	RecentAddedSize     = 30
)

// Source is the part of the catalog store the exporter reads.
type Source interface {
	All() []domain.Anime
	Latest() []domain.Anime
}

// Export recomputes every derived slice from the current collection.
// most_favorite continues the monthly ranking right after the slider.
func Export(src Source) *domain.Document {
	c := src.All()
	monthly := query.TopByViews(c, query.Monthly, 0)

	doc := &domain.Document{
		Slider:          query.Window(monthly, 0, SliderSize),
		Trending:        query.TopByViews(c, query.Daily, TrendingSize),
		Popular:         query.TopByViews(c, query.Weekly, PopularSize),
		MostFavorite:    query.Window(monthly, SliderSize, SliderSize+MostFavoriteSize),
		LatestCompleted: query.Finished(c, LatestCompletedSize),
		RecentAdded:     query.RecentlyAdded(c, RecentAddedSize),
		LatestEpisodes:  src.Latest(),
		Collection:      c,
	}
	doc.Normalize()
	return doc
}

// Stats summarizes a document for logs and notifications.
func Stats(doc *domain.Document) domain.Statistics {
	s := domain.Statistics{
		TotalAnime:      len(doc.Collection),
		LatestEpisodes:  len(doc.LatestEpisodes),
		Slider:          len(doc.Slider),
		Trending:        len(doc.Trending),
		Popular:         len(doc.Popular),
		MostFavorite:    len(doc.MostFavorite),
		RecentAdded:     len(doc.RecentAdded),
		LatestCompleted: len(doc.LatestCompleted),
	}

	for _, a := range doc.Collection {
		if a.Watchable() {
			s.Watchable++
		}
		if a.IsFinished() {
			s.Finished++
		}
	}

	if s.TotalAnime > 0 {
		s.WatchablePct = float64(s.Watchable) / float64(s.TotalAnime) * 100
	}
	return s
}
