package view

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/varoOP/animedexdb/internal/domain"
)

// ListEntry is a row of the admin collection listing.
type ListEntry struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Episodes  int    `json:"episodes"`
	Latest    bool   `json:"latest"`
	Watchable bool   `json:"watchable"`
}

// Listing sorts the collection by preferred title using locale collation.
// It does not change the collection order itself.
func Listing(c []domain.Anime, latest []int) []ListEntry {
	out := make([]ListEntry, 0, len(c))
	for _, a := range c {
		out = append(out, ListEntry{
			ID:        a.ID,
			Title:     a.Title.Resolve(),
			Episodes:  len(a.EpisodesList),
			Latest:    slices.Contains(latest, a.ID),
			Watchable: a.Watchable(),
		})
	}

	col := collate.New(language.English, collate.IgnoreCase, collate.Loose)
	slices.SortStableFunc(out, func(a, b ListEntry) int {
		return col.CompareString(a.Title, b.Title)
	})
	return out
}
