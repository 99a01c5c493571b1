// Package query derives the ordered listings shown by the viewer from a
// collection. Every function is pure and leaves its input untouched.
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/varoOP/animedexdb/internal/domain"
)

type Metric string

const (
	Monthly Metric = "monthly"
	Weekly  Metric = "weekly"
	Daily   Metric = "daily"
)

// ParseMetric accepts the metric names used in the document views object.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(s))); m {
	case Monthly, Weekly, Daily:
		return m, nil
	}
	return "", errors.Errorf("unknown view metric %q", s)
}

func (m Metric) value(v domain.Views) int {
	switch m {
	case Weekly:
		return v.Weekly
	case Daily:
		return v.Daily
	}
	return v.Monthly
}

// TopByScore orders by score, highest first, keeping collection order for
// ties. n <= 0 returns every record.
func TopByScore(c []domain.Anime, n int) []domain.Anime {
	out := slices.Clone(c)
	slices.SortStableFunc(out, func(a, b domain.Anime) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return head(out, n)
}

// TopByViews orders by the given views counter, highest first, keeping
// collection order for ties. n <= 0 returns every record.
func TopByViews(c []domain.Anime, m Metric, n int) []domain.Anime {
	out := slices.Clone(c)
	slices.SortStableFunc(out, func(a, b domain.Anime) int {
		return cmp.Compare(m.value(b.Views), m.value(a.Views))
	})
	return head(out, n)
}

// Window returns list[from:to] clamped to the list bounds.
func Window(list []domain.Anime, from, to int) []domain.Anime {
	from = min(max(from, 0), len(list))
	to = min(max(to, from), len(list))
	return slices.Clone(list[from:to])
}

func head(list []domain.Anime, n int) []domain.Anime {
	if n <= 0 || n >= len(list) {
		return list
	}
	return list[:n]
}

// Finished returns up to n finished titles in collection order.
func Finished(c []domain.Anime, n int) []domain.Anime {
	out := []domain.Anime{}
	for _, a := range c {
		if n > 0 && len(out) == n {
			break
		}
		if a.IsFinished() {
			out = append(out, a)
		}
	}
	return out
}

// RecentlyAdded returns the last n records appended, newest first.
func RecentlyAdded(c []domain.Anime, n int) []domain.Anime {
	out := Window(c, len(c)-n, len(c))
	slices.Reverse(out)
	return out
}

var relatedFormats = []string{
	domain.FormatTV,
	domain.FormatTVShort,
	domain.FormatMovie,
	domain.FormatSpecial,
	domain.FormatOVA,
	domain.FormatONA,
	domain.FormatMusic,
}

// RelatedTitles keeps the relations that point at an animated release.
// Manga, novels and other source material are dropped.
func RelatedTitles(a domain.Anime) []domain.Relation {
	out := []domain.Relation{}
	for _, r := range a.Relations {
		if slices.Contains(relatedFormats, r.Node.Format) {
			out = append(out, r)
		}
	}
	return out
}

// IntN is satisfied by *math/rand/v2.Rand.
type IntN interface {
	IntN(n int) int
}

// Random picks one record uniformly. It reports false for an empty collection.
func Random(c []domain.Anime, rng IntN) (domain.Anime, bool) {
	if len(c) == 0 {
		return domain.Anime{}, false
	}
	return c[rng.IntN(len(c))], true
}

func FindByID(c []domain.Anime, id int) (domain.Anime, error) {
	for _, a := range c {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Anime{}, errors.Wrapf(domain.ErrRecordNotFound, "id %d", id)
}

// FindEpisode looks up an episode by number. "01" and "1" match.
func FindEpisode(a domain.Anime, number string) (domain.Episode, error) {
	for _, ep := range a.EpisodesList {
		if ep.Number.Matches(number) {
			return ep, nil
		}
	}
	return domain.Episode{}, errors.Wrapf(domain.ErrEpisodeNotFound, "episode %q of id %d", number, a.ID)
}
