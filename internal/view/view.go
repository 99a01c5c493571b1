// Package view shapes catalog records into the data each viewer page shows.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/varoOP/animedexdb/internal/domain"
	"github.com/varoOP/animedexdb/internal/query"
)

const (
	NotAvailable   = "N/A"
	noSynopsis     = "No synopsis available."
	shownGenres    = 3
	topListSize    = 10
	sidebarPopular = 10
)

var descriptionPolicy = newDescriptionPolicy()

func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// SanitizeDescription keeps the safe markup of a synopsis for HTML display.
func SanitizeDescription(desc string) string {
	clean := strings.TrimSpace(descriptionPolicy.Sanitize(desc))
	if clean == "" {
		return noSynopsis
	}
	return clean
}

// Titles carries both languages a page can switch between.
type Titles struct {
	English  string `json:"en"`
	Japanese string `json:"jp"`
}

func titlesOf(a domain.Anime) Titles {
	return Titles{English: a.Title.Display(), Japanese: a.Title.Resolve()}
}

// Card is a poster in a carousel or result grid.
type Card struct {
	ID       int      `json:"id"`
	Rank     int      `json:"rank,omitempty"`
	Title    Titles   `json:"title"`
	Cover    string   `json:"cover"`
	Banner   string   `json:"banner"`
	Year     string   `json:"year"`
	Score    string   `json:"score"`
	Episodes string   `json:"episodes"`
	Format   string   `json:"format"`
	Status   string   `json:"status"`
	Aired    string   `json:"aired"`
	Other    string   `json:"other"`
	Genres   []string `json:"genres"`
	Synopsis string   `json:"synopsis"`
	URL      string   `json:"url"`
}

func NewCard(a domain.Anime, rank int) Card {
	return Card{
		ID:       a.ID,
		Rank:     rank,
		Title:    titlesOf(a),
		Cover:    a.CoverImage.Large,
		Banner:   a.Banner(),
		Year:     Year(a.Premiered),
		Score:    Score(a.Score),
		Episodes: orUnknown(a.Episodes, "?"),
		Format:   a.Format,
		Status:   orNA(a.Status),
		Aired:    orNA(a.Aired),
		Other:    orNA(a.Title.English),
		Genres:   leadGenres(a.Genres),
		Synopsis: query.Synopsis(a.Description, query.CardSynopsis),
		URL:      DetailURL(a.ID),
	}
}

// Cards builds cards; ranked lists number them from 1.
func Cards(list []domain.Anime, ranked bool) []Card {
	out := make([]Card, 0, len(list))
	for i, a := range list {
		rank := 0
		if ranked {
			rank = i + 1
		}
		out = append(out, NewCard(a, rank))
	}
	return out
}

// Slide is a hero entry of the home slider.
type Slide struct {
	ID       int    `json:"id"`
	Title    Titles `json:"title"`
	Synopsis string `json:"synopsis"`
	Image    string `json:"image"`
	URL      string `json:"url"`
}

func Slides(list []domain.Anime) []Slide {
	out := make([]Slide, 0, len(list))
	for _, a := range list {
		out = append(out, Slide{
			ID:       a.ID,
			Title:    titlesOf(a),
			Synopsis: query.Synopsis(a.Description, query.SlideSynopsis),
			Image:    a.Banner(),
			URL:      DetailURL(a.ID),
		})
	}
	return out
}

// TopItem is a row of the top-by-score list.
type TopItem struct {
	Rank         int      `json:"rank"`
	ID           int      `json:"id"`
	Title        Titles   `json:"title"`
	Cover        string   `json:"cover"`
	Genres       []string `json:"genres"`
	ScorePercent string   `json:"score_percent"`
	Users        int      `json:"users"`
	Format       string   `json:"format"`
	Episodes     string   `json:"episodes"`
	Year         string   `json:"year"`
	Status       string   `json:"status"`
	URL          string   `json:"url"`
}

func TopItems(list []domain.Anime) []TopItem {
	out := make([]TopItem, 0, len(list))
	for i, a := range list {
		pct := NotAvailable
		if a.Score > 0 {
			pct = strconv.Itoa(int(a.Score+0.5)) + "%"
		}
		out = append(out, TopItem{
			Rank:         i + 1,
			ID:           a.ID,
			Title:        titlesOf(a),
			Cover:        a.CoverImage.Large,
			Genres:       leadGenres(a.Genres),
			ScorePercent: pct,
			Users:        a.Views.Monthly,
			Format:       orNA(a.Format),
			Episodes:     orUnknown(a.Episodes, "??"),
			Year:         orNA(Year(a.Premiered)),
			Status:       orNA(a.Status),
			URL:          DetailURL(a.ID),
		})
	}
	return out
}

// Home holds every section of the landing page.
type Home struct {
	Slider         []Slide   `json:"slider"`
	Trending       []Card    `json:"trending"`
	Popular        []Card    `json:"popular"`
	MostFavorite   []Card    `json:"most_favorite"`
	RecentAdded    []Card    `json:"recent_added"`
	LatestEpisodes []Card    `json:"latest_episodes"`
	LatestDone     []Card    `json:"latest_completed"`
	Top            []TopItem `json:"top"`
}

func NewHome(doc *domain.Document) Home {
	return Home{
		Slider:         Slides(doc.Slider),
		Trending:       Cards(doc.Trending, false),
		Popular:        Cards(doc.Popular, false),
		MostFavorite:   Cards(doc.MostFavorite, false),
		RecentAdded:    Cards(doc.RecentAdded, false),
		LatestEpisodes: Cards(doc.LatestEpisodes, false),
		LatestDone:     Cards(doc.LatestCompleted, false),
		Top:            TopItems(query.TopByScore(doc.Collection, topListSize)),
	}
}

// Score renders a 0-100 score on a 0-10 scale.
func Score(score float64) string {
	if score <= 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f", score/10)
}

// Year extracts the year from a premiered value such as "Fall 2019".
func Year(premiered string) string {
	fields := strings.Fields(premiered)
	if len(fields) == 0 {
		return ""
	}
	last := fields[len(fields)-1]
	if _, err := strconv.Atoi(last); err != nil {
		return ""
	}
	return last
}

func DetailURL(id int) string {
	return "/anime?id=" + strconv.Itoa(id)
}

func EpisodeURL(id int, ep domain.EpisodeNumber) string {
	return "/episode?id=" + strconv.Itoa(id) + "&ep=" + ep.String()
}

func leadGenres(genres []string) []string {
	if len(genres) > shownGenres {
		genres = genres[:shownGenres]
	}
	return append([]string{}, genres...)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

func orUnknown(n int, unknown string) string {
	if n <= 0 {
		return unknown
	}
	return strconv.Itoa(n)
}
