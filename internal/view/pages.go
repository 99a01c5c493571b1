package view

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/varoOP/animedexdb/internal/domain"
	"github.com/varoOP/animedexdb/internal/query"
)

// ParseID reads the id parameter of a detail or episode page.
func ParseID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.Wrap(domain.ErrMissingParameter, "id")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.Wrapf(domain.ErrMissingParameter, "invalid id %q", raw)
	}
	return id, nil
}

// Info is one labelled row of the detail information block.
type Info struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Person struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Role  string `json:"role"`
}

type CharacterCard struct {
	Character  Person  `json:"character"`
	VoiceActor *Person `json:"voice_actor,omitempty"`
}

type RefCard struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Cover    string `json:"cover"`
	Format   string `json:"format"`
	Relation string `json:"relation,omitempty"`
	Score    string `json:"score,omitempty"`
	URL      string `json:"url"`
}

type Trailer struct {
	ID       string `json:"id"`
	EmbedURL string `json:"embed_url"`
}

// Detail is the anime page.
type Detail struct {
	ID              int             `json:"id"`
	Title           Titles          `json:"title"`
	Banner          string          `json:"banner"`
	Cover           string          `json:"cover"`
	Description     string          `json:"description_html"`
	Score           string          `json:"score"`
	Format          string          `json:"format"`
	Status          string          `json:"status"`
	Episodes        string          `json:"episodes"`
	WatchURL        string          `json:"watch_url,omitempty"`
	Info            []Info          `json:"info"`
	Genres          []string        `json:"genres"`
	Characters      []CharacterCard `json:"characters"`
	Trailer         *Trailer        `json:"trailer,omitempty"`
	Recommendations []RefCard       `json:"recommendations"`
	Related         []RefCard       `json:"related"`
	Popular         []RefCard       `json:"popular"`
}

// NewDetail builds the anime page for id from the loaded document.
func NewDetail(doc *domain.Document, id int) (Detail, error) {
	a, err := query.FindByID(doc.Collection, id)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{
		ID:          a.ID,
		Title:       titlesOf(a),
		Banner:      a.Banner(),
		Cover:       a.CoverImage.Large,
		Description: SanitizeDescription(a.Description),
		Score:       Score(a.Score),
		Format:      a.Format,
		Status:      a.Status,
		Episodes:    orUnknown(a.Episodes, "?"),
		Genres:      append([]string{}, a.Genres...),
		Info: []Info{
			{"Japanese", orNA(a.Title.Native)},
			{"Synonyms", orNA(strings.Join(a.Synonyms, ", "))},
			{"Aired", orNA(a.Aired)},
			{"Premiered", orNA(a.Premiered)},
			{"Duration", duration(a.Duration)},
			{"Status", orNA(a.Status)},
			{"Genres", orNA(strings.Join(a.Genres, ", "))},
			{"Studios", orNA(strings.Join(a.Studios, ", "))},
			{"Producers", orNA(strings.Join(a.Producers, ", "))},
		},
		Characters:      []CharacterCard{},
		Recommendations: []RefCard{},
		Related:         []RefCard{},
		Popular:         []RefCard{},
	}

	if a.Watchable() {
		d.WatchURL = EpisodeURL(a.ID, a.EpisodesList[0].Number)
	}

	if a.HasTrailer() {
		d.Trailer = &Trailer{ID: a.Trailer.ID, EmbedURL: "https://www.youtube.com/embed/" + url.PathEscape(a.Trailer.ID)}
	}

	for _, c := range a.Characters {
		card := CharacterCard{Character: Person{Name: c.Node.Name.Full, Image: c.Node.Image.Large, Role: c.Role}}
		if len(c.VoiceActors) > 0 {
			va := c.VoiceActors[0]
			card.VoiceActor = &Person{Name: va.Name.Full, Image: va.Image.Large, Role: "Japanese"}
		}
		d.Characters = append(d.Characters, card)
	}

	for _, r := range a.Recommendations {
		d.Recommendations = append(d.Recommendations, refCard(r, ""))
	}

	for _, r := range query.RelatedTitles(a) {
		d.Related = append(d.Related, refCard(r.Node, strings.ReplaceAll(r.RelationType, "_", " ")))
	}

	for _, p := range query.Window(doc.Popular, 0, sidebarPopular) {
		d.Popular = append(d.Popular, RefCard{
			ID:     p.ID,
			Title:  p.Title.Resolve(),
			Cover:  p.CoverImage.Large,
			Format: p.Format,
			Score:  Score(p.Score),
			URL:    DetailURL(p.ID),
		})
	}

	return d, nil
}

func refCard(m domain.MediaRef, relation string) RefCard {
	return RefCard{
		ID:       m.ID,
		Title:    m.Title.UserPreferred,
		Cover:    m.CoverImage.Large,
		Format:   m.Format,
		Relation: relation,
		URL:      DetailURL(m.ID),
	}
}

func duration(m domain.Minutes) string {
	if m <= 0 {
		return NotAvailable
	}
	return strconv.Itoa(int(m)) + " min"
}

type EpisodeLink struct {
	Number  string `json:"number"`
	URL     string `json:"url"`
	Playing bool   `json:"playing"`
}

// EpisodePage is the player page.
type EpisodePage struct {
	ID       int           `json:"id"`
	Title    string        `json:"title"`
	Heading  string        `json:"heading"`
	Number   string        `json:"number"`
	EmbedURL string        `json:"embed_url"`
	Episodes []EpisodeLink `json:"episodes"`
}

// NewEpisodePage looks the episode up in the whole collection.
func NewEpisodePage(doc *domain.Document, id int, ep string) (EpisodePage, error) {
	if strings.TrimSpace(ep) == "" {
		return EpisodePage{}, errors.Wrap(domain.ErrMissingParameter, "ep")
	}

	a, err := query.FindByID(doc.Collection, id)
	if err != nil {
		return EpisodePage{}, err
	}

	current, err := query.FindEpisode(a, ep)
	if err != nil {
		return EpisodePage{}, err
	}

	title := a.Title.Resolve()
	p := EpisodePage{
		ID:       a.ID,
		Title:    title,
		Heading:  title + " - Episode " + current.Number.String(),
		Number:   current.Number.String(),
		EmbedURL: current.URL,
		Episodes: make([]EpisodeLink, 0, len(a.EpisodesList)),
	}
	for _, e := range a.EpisodesList {
		p.Episodes = append(p.Episodes, EpisodeLink{
			Number:  e.Number.String(),
			URL:     EpisodeURL(a.ID, e.Number),
			Playing: e.Number.Matches(ep),
		})
	}
	return p, nil
}

// SearchPage is the result grid of the search page.
type SearchPage struct {
	Query   string `json:"query"`
	Heading string `json:"heading"`
	Kind    string `json:"kind"`
	Results []Card `json:"results"`
}

func NewSearchPage(doc *domain.Document, q string) (SearchPage, error) {
	return searchPage(query.Dispatch(doc, q, 0))
}

// NewGenrePage lists the titles tagged with genre.
func NewGenrePage(doc *domain.Document, genre string) (SearchPage, error) {
	return searchPage(query.DispatchGenre(doc, genre))
}

func searchPage(r query.Result) (SearchPage, error) {
	p := SearchPage{
		Query:   r.Query,
		Kind:    r.Kind,
		Heading: heading(r),
		Results: Cards(r.Results, r.Ranked),
	}
	if len(p.Results) == 0 {
		return p, errors.Wrapf(domain.ErrRecordNotFound, "no results found for %q", r.Query)
	}
	return p, nil
}

func heading(r query.Result) string {
	switch r.Kind {
	case query.KindSlice, query.KindTop:
		name := r.Query
		if name == "" {
			name = "all"
		}
		return "View All: " + cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
	case query.KindGenre:
		return "Genre: " + r.Query
	}
	return `Results for: "` + r.Query + `"`
}

// Suggestion is an entry of the inline search dropdown.
type Suggestion struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Cover string `json:"cover"`
	URL   string `json:"url"`
}

func Suggestions(doc *domain.Document, q string) []Suggestion {
	list := query.Suggest(doc.Collection, q)
	out := make([]Suggestion, 0, len(list))
	for _, a := range list {
		out = append(out, Suggestion{ID: a.ID, Title: a.Title.Resolve(), Cover: a.CoverImage.Large, URL: DetailURL(a.ID)})
	}
	return out
}

// RandomID picks the target of the random button.
func RandomID(doc *domain.Document, rng query.IntN) (int, error) {
	a, ok := query.Random(doc.Collection, rng)
	if !ok {
		return 0, domain.ErrEmptyCatalog
	}
	return a.ID, nil
}
