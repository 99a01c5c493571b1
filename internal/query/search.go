package query

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/varoOP/animedexdb/internal/domain"
)

const (
	// MinQueryLength is the shortest free-text query that matches anything.
	MinQueryLength = 3
	SuggestLimit   = 7

	TopQuery   = "top-100"
	OtherIndex = "#"
)

// Search matches the query as a case-insensitive substring of the preferred
// or English title. Queries shorter than MinQueryLength match nothing; the
// length counts the query as typed, surrounding spaces included.
// limit <= 0 means no cap.
func Search(c []domain.Anime, q string, limit int) []domain.Anime {
	out := []domain.Anime{}
	if utf8.RuneCountInString(q) < MinQueryLength {
		return out
	}
	q = strings.ToLower(q)

	for _, a := range c {
		if limit > 0 && len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(a.Title.Resolve()), q) ||
			strings.Contains(strings.ToLower(a.Title.English), q) {
			out = append(out, a)
		}
	}
	return out
}

// Suggest is the inline suggestion variant of Search.
func Suggest(c []domain.Anime, q string) []domain.Anime {
	return Search(c, q, SuggestLimit)
}

// Bucket returns the A-Z index entry for letter. OtherIndex selects titles
// whose preferred title does not start with an ASCII letter.
func Bucket(c []domain.Anime, letter string) []domain.Anime {
	out := []domain.Anime{}
	if letter == OtherIndex {
		for _, a := range c {
			if !startsWithLetter(a.Title.Resolve()) {
				out = append(out, a)
			}
		}
		return out
	}

	prefix := strings.ToLower(letter)
	if prefix == "" {
		return out
	}
	for _, a := range c {
		if strings.HasPrefix(strings.ToLower(a.Title.Resolve()), prefix) ||
			strings.HasPrefix(strings.ToLower(a.Title.English), prefix) {
			out = append(out, a)
		}
	}
	return out
}

func startsWithLetter(s string) bool {
	return len(s) > 0 && isASCIILetter(s[0])
}

func isASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// ByGenre returns the titles tagged with genre, ignoring case.
func ByGenre(c []domain.Anime, genre string) []domain.Anime {
	out := []domain.Anime{}
	for _, a := range c {
		if hasGenre(a, genre) {
			out = append(out, a)
		}
	}
	return out
}

func hasGenre(a domain.Anime, genre string) bool {
	for _, g := range a.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// Result is the answer to a search page query.
type Result struct {
	Query   string
	Kind    string
	Ranked  bool
	Results []domain.Anime
}

// Kinds of Result.
const (
	KindSlice  = "slice"
	KindTop    = "top"
	KindIndex  = "index"
	KindGenre  = "genre"
	KindSearch = "search"
)

// Slices whose listing shows a rank badge.
var rankedSlices = []string{
	domain.SliceTrending,
	domain.SlicePopular,
	domain.SliceMostFavorite,
	domain.SliceRecentAdded,
}

// Dispatch maps the search page query parameter onto a listing: a named
// document slice, the full score ranking, an A-Z bucket, or a free-text
// search capped at limit.
func Dispatch(doc *domain.Document, q string, limit int) Result {
	r := Result{Query: q}
	c := doc.Collection

	switch {
	case isNamedSlice(doc, q):
		list, _ := doc.Slice(q)
		r.Kind, r.Ranked, r.Results = KindSlice, slices.Contains(rankedSlices, q), list
	case q == TopQuery || q == "":
		r.Kind, r.Results = KindTop, TopByScore(c, 0)
	case q == OtherIndex:
		r.Kind, r.Results = KindIndex, Bucket(c, OtherIndex)
	case len(q) == 1 && isASCIILetter(q[0]):
		r.Kind, r.Results = KindIndex, Bucket(c, q)
	default:
		r.Kind, r.Results = KindSearch, Search(c, q, limit)
	}

	if r.Results == nil {
		r.Results = []domain.Anime{}
	}
	return r
}

func isNamedSlice(doc *domain.Document, q string) bool {
	_, ok := doc.Slice(q)
	return ok
}

// DispatchGenre answers the genre parameter of the search page.
func DispatchGenre(doc *domain.Document, genre string) Result {
	return Result{Query: genre, Kind: KindGenre, Results: ByGenre(doc.Collection, genre)}
}
