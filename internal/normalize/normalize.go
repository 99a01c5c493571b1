// Package normalize turns AniList and Jikan payloads into catalog records.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/varoOP/animedexdb/internal/anilist"
	"github.com/varoOP/animedexdb/internal/domain"
	"github.com/varoOP/animedexdb/internal/jikan"
)

const maxFallbackStudios = 3

// FromAniList builds a record from an AniList media object. extra is the
// optional MyAnimeList record of the same title: it supplies producers and
// a score when AniList has none.
func FromAniList(m *anilist.Media, extra *jikan.Anime) domain.Anime {
	if m == nil {
		return domain.Anime{}.WithDefaults()
	}

	a := domain.Anime{
		ID:    m.ID,
		Score: float64(m.AverageScore),
		Title: domain.Title{
			UserPreferred: m.Title.UserPreferred,
			English:       m.Title.English,
			Native:        m.Title.Native,
			Romaji:        m.Title.Romaji,
		},
		Synonyms:     m.Synonyms,
		Description:  m.Description,
		CoverImage:   domain.Image{Large: m.CoverImage.Large},
		BannerImage:  m.BannerImage,
		Genres:       m.Genres,
		Status:       m.Status,
		Format:       m.Format,
		Episodes:     m.Episodes,
		Duration:     domain.Minutes(m.Duration),
		Premiered:    Premiered(m.Season, m.SeasonYear),
		Aired:        Aired(m.StartDate, m.EndDate),
		Studios:      studios(m.Studios.Edges),
		Views:        Views(m.Popularity, m.Trending),
		Trailer:      trailer(m.Trailer),
		Characters:   characters(m.Characters.Edges),
		Relations:    relations(m.Relations.Edges),
		EpisodesList: []domain.Episode{},
	}

	for _, n := range m.Recommendations.Nodes {
		if n.MediaRecommendation == nil {
			continue
		}
		a.Recommendations = append(a.Recommendations, mediaRef(*n.MediaRecommendation))
	}

	if extra != nil {
		a.Producers = names(extra.Producers)
		if a.Score == 0 {
			a.Score = jikanScore(extra.Score)
		}
	}

	return a.WithDefaults()
}

// FromJikan builds a record from a MyAnimeList anime. Views stay zero.
func FromJikan(j *jikan.Anime) domain.Anime {
	if j == nil {
		return domain.Anime{}.WithDefaults()
	}

	a := domain.Anime{
		ID:    j.MalID,
		Score: jikanScore(j.Score),
		Title: domain.Title{
			UserPreferred: j.Title,
			English:       j.TitleEnglish,
			Native:        j.TitleJapanese,
		},
		Synonyms:     j.TitleSynonyms,
		Description:  j.Synopsis,
		CoverImage:   domain.Image{Large: j.Images.JPG.LargeImageURL},
		Genres:       names(j.Genres),
		Status:       Status(j.Status),
		Format:       Format(j.Type),
		Episodes:     j.Episodes,
		Duration:     domain.ParseMinutes(j.Duration),
		Premiered:    Premiered(j.Season, j.Year),
		Aired:        j.Aired.String,
		Studios:      names(j.Studios),
		Producers:    names(j.Producers),
		EpisodesList: []domain.Episode{},
	}

	if j.Trailer.YoutubeID != "" {
		a.Trailer = &domain.Trailer{
			ID:        j.Trailer.YoutubeID,
			Site:      domain.TrailerSiteYouTube,
			Thumbnail: j.Trailer.Images.ImageURL,
		}
	}

	return a.WithDefaults()
}

// Premiered renders "Winter 2024". Either part may be missing.
func Premiered(season string, year int) string {
	s := cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(season)))
	if year > 0 {
		s += " " + strconv.Itoa(year)
	}
	return strings.TrimSpace(s)
}

// Aired renders "start to end" where each date is m/d/y or "?".
func Aired(start, end anilist.FuzzyDate) string {
	return FormatDate(start) + " to " + FormatDate(end)
}

// FormatDate renders m/d/y. A date without a year is "?", and so is any
// unknown month or day inside a known date.
func FormatDate(d anilist.FuzzyDate) string {
	if d.Year == 0 {
		return "?"
	}
	return fmt.Sprintf("%s/%s/%d", part(d.Month), part(d.Day), d.Year)
}

func part(v int) string {
	if v <= 0 {
		return "?"
	}
	return strconv.Itoa(v)
}

// Views derives the ranking counters from AniList popularity and trending.
func Views(popularity, trending int) domain.Views {
	return domain.Views{
		Monthly: popularity,
		Weekly:  popularity + 2*trending,
		Daily:   trending,
	}
}

// Status maps a Jikan status onto the AniList vocabulary.
func Status(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ""
	case "finished airing":
		return domain.StatusFinished
	case "currently airing":
		return domain.StatusReleasing
	case "not yet aired":
		return domain.StatusNotYetReleased
	}
	return upperSnake(s)
}

// Format maps a Jikan type onto the AniList vocabulary.
func Format(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "":
		return ""
	case "tv":
		return domain.FormatTV
	case "movie":
		return domain.FormatMovie
	case "ova":
		return domain.FormatOVA
	case "ona":
		return domain.FormatONA
	case "special", "tv special":
		return domain.FormatSpecial
	case "music":
		return domain.FormatMusic
	}
	return upperSnake(t)
}

func upperSnake(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), "_")
}

func jikanScore(s float64) float64 {
	if s <= 0 {
		return 0
	}
	return math.Round(s * 10)
}

func studios(edges []anilist.StudioEdge) []string {
	mainStudios := []string{}
	for _, e := range edges {
		if e.IsMain {
			mainStudios = append(mainStudios, e.Node.Name)
		}
	}
	if len(mainStudios) > 0 {
		return mainStudios
	}

	out := []string{}
	for i, e := range edges {
		if i == maxFallbackStudios {
			break
		}
		out = append(out, e.Node.Name)
	}
	return out
}

func trailer(t *anilist.Trailer) *domain.Trailer {
	if t == nil || t.ID == "" {
		return nil
	}
	return &domain.Trailer{ID: t.ID, Site: t.Site, Thumbnail: t.Thumbnail}
}

func person(p anilist.Person) domain.Person {
	return domain.Person{
		Name:  domain.PersonName{Full: p.Name.Full},
		Image: domain.Image{Large: p.Image.Large},
	}
}

func characters(edges []anilist.CharacterEdge) []domain.Character {
	out := make([]domain.Character, 0, len(edges))
	for _, e := range edges {
		c := domain.Character{Role: e.Role, Node: person(e.Node), VoiceActors: []domain.Person{}}
		for _, va := range e.VoiceActors {
			c.VoiceActors = append(c.VoiceActors, person(va))
		}
		out = append(out, c)
	}
	return out
}

func relations(edges []anilist.RelationEdge) []domain.Relation {
	out := make([]domain.Relation, 0, len(edges))
	for _, e := range edges {
		out = append(out, domain.Relation{RelationType: e.RelationType, Node: mediaRef(e.Node)})
	}
	return out
}

func mediaRef(m anilist.MediaRef) domain.MediaRef {
	return domain.MediaRef{
		ID:         m.ID,
		Title:      domain.RefTitle{UserPreferred: m.Title.UserPreferred},
		CoverImage: domain.Image{Large: m.CoverImage.Large},
		Format:     m.Format,
	}
}

func names(in []jikan.Named) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		out = append(out, n.Name)
	}
	return out
}
