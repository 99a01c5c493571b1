package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Anime is the canonical catalog record. The JSON layout matches the
// anime_data.json document read by the site.
type Anime struct {
	ID              int         `json:"id"`
	Score           float64     `json:"score"`
	Title           Title       `json:"title"`
	Synonyms        []string    `json:"synonyms"`
	Description     string      `json:"description"`
	CoverImage      Image       `json:"coverImage"`
	BannerImage     string      `json:"bannerImage"`
	Genres          []string    `json:"genres"`
	Status          string      `json:"status"`
	Format          string      `json:"format"`
	Episodes        int         `json:"episodes"`
	Duration        Minutes     `json:"duration"`
	Premiered       string      `json:"premiered"`
	Aired           string      `json:"aired"`
	Studios         []string    `json:"studios"`
	Producers       []string    `json:"producers"`
	Views           Views       `json:"views"`
	Trailer         *Trailer    `json:"trailer"`
	Characters      []Character `json:"characters"`
	Relations       []Relation  `json:"relations"`
	Recommendations []MediaRef  `json:"recommendations"`
	EpisodesList    []Episode   `json:"episodesList"`
}

type Title struct {
	UserPreferred string `json:"userPreferred"`
	English       string `json:"english,omitempty"`
	Native        string `json:"native,omitempty"`
	Romaji        string `json:"romaji,omitempty"`
}

// Resolve returns the title shown to Japanese-title readers and used for
// sorting and the A-Z index.
func (t Title) Resolve() string {
	return FirstNonEmpty(t.UserPreferred, t.English, t.Romaji, t.Native)
}

// Display returns the title used on banners and carousels.
func (t Title) Display() string {
	return FirstNonEmpty(t.English, t.UserPreferred, t.Romaji, t.Native)
}

type Image struct {
	Large string `json:"large"`
}

// Views holds popularity proxies. They only drive rankings.
type Views struct {
	Monthly int `json:"monthly"`
	Weekly  int `json:"weekly"`
	Daily   int `json:"daily"`
}

type Trailer struct {
	ID        string `json:"id"`
	Site      string `json:"site"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

const TrailerSiteYouTube = "youtube"

type Person struct {
	Name  PersonName `json:"name"`
	Image Image      `json:"image"`
}

type PersonName struct {
	Full string `json:"full"`
}

type Character struct {
	Role        string   `json:"role"`
	Node        Person   `json:"node"`
	VoiceActors []Person `json:"voiceActors"`
}

// MediaRef is a denormalized pointer to another title.
type MediaRef struct {
	ID         int      `json:"id"`
	Title      RefTitle `json:"title"`
	CoverImage Image    `json:"coverImage"`
	Format     string   `json:"format"`
}

type RefTitle struct {
	UserPreferred string `json:"userPreferred"`
}

type Relation struct {
	RelationType string   `json:"relationType"`
	Node         MediaRef `json:"node"`
}

type Episode struct {
	Number EpisodeNumber `json:"number" yaml:"number"`
	URL    string        `json:"url" yaml:"url"`
}

// EpisodeNumber is kept as text: documents written by the old admin form
// carry strings, newer ones may carry numbers.
type EpisodeNumber string

func (n *EpisodeNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = EpisodeNumber(strings.TrimSpace(s))
		return nil
	}

	var f json.Number
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = EpisodeNumber(f.String())
	return nil
}

// Matches compares loosely: numerically when both sides are numbers,
// otherwise as trimmed text.
func (n EpisodeNumber) Matches(other string) bool {
	a := strings.TrimSpace(string(n))
	b := strings.TrimSpace(other)

	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return fa == fb
	}

	return a == b
}

func (n EpisodeNumber) String() string {
	return string(n)
}

// Minutes is a per-episode runtime. It decodes numbers as well as the
// textual forms Jikan uses ("24 min per ep", "1 hr 30 min").
type Minutes int

func (m *Minutes) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = ParseMinutes(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*m = Minutes(f)
	return nil
}

// ParseMinutes reads durations such as "24 min per ep", "1 hr 30 min",
// "45 sec" or a bare "24". Unknown text yields 0.
func ParseMinutes(s string) Minutes {
	fields := strings.Fields(strings.ToLower(s))
	total := 0.0
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		unit := ""
		if i+1 < len(fields) {
			unit = fields[i+1]
		}
		switch {
		case strings.HasPrefix(unit, "hr"), strings.HasPrefix(unit, "hour"):
			total += v * 60
		case strings.HasPrefix(unit, "sec"):
			total += v / 60
		default:
			total += v
		}
	}
	return Minutes(total)
}

// Banner falls back to the cover when no banner exists.
func (a Anime) Banner() string {
	return FirstNonEmpty(a.BannerImage, a.CoverImage.Large)
}

// Watchable reports whether the title has any playable episode.
func (a Anime) Watchable() bool {
	return len(a.EpisodesList) > 0
}

func (a Anime) HasTrailer() bool {
	return a.Trailer != nil && a.Trailer.Site == TrailerSiteYouTube && a.Trailer.ID != ""
}

func (a Anime) IsFinished() bool {
	switch strings.ToUpper(strings.TrimSpace(a.Status)) {
	case StatusFinished, "FINISHED AIRING":
		return true
	}
	return false
}

// WithDefaults returns a copy whose optional collections are non-nil and whose
// preferred title is resolved through the fallback chain.
func (a Anime) WithDefaults() Anime {
	a.Title.UserPreferred = a.Title.Resolve()
	a.Synonyms = nonNil(a.Synonyms)
	a.Genres = nonNil(a.Genres)
	a.Studios = nonNil(a.Studios)
	a.Producers = nonNil(a.Producers)
	if a.Characters == nil {
		a.Characters = []Character{}
	}
	for i := range a.Characters {
		if a.Characters[i].VoiceActors == nil {
			a.Characters[i].VoiceActors = []Person{}
		}
	}
	if a.Relations == nil {
		a.Relations = []Relation{}
	}
	if a.Recommendations == nil {
		a.Recommendations = []MediaRef{}
	}
	if a.EpisodesList == nil {
		a.EpisodesList = []Episode{}
	}
	return a
}

// AniList status and format vocabulary, shared by both sources after normalization.
const (
	StatusFinished       = "FINISHED"
	StatusReleasing      = "RELEASING"
	StatusNotYetReleased = "NOT_YET_RELEASED"
	StatusCancelled      = "CANCELLED"
	StatusHiatus         = "HIATUS"

	FormatTV      = "TV"
	FormatTVShort = "TV_SHORT"
	FormatMovie   = "MOVIE"
	FormatSpecial = "SPECIAL"
	FormatOVA     = "OVA"
	FormatONA     = "ONA"
	FormatMusic   = "MUSIC"
)
