package domain

// Names of the derived slices in the persisted document.
const (
	SliceSlider          = "slider"
	SliceTrending        = "trending"
	SlicePopular         = "popular"
	SliceMostFavorite    = "most_favorite"
	SliceRecentAdded     = "recent_added"
	SliceLatestCompleted = "latest_completed"
	SliceLatestEpisodes  = "latest_episodes"
	SliceCollection      = "collection"
)

// Document is the anime_data.json file. Every slice except Collection is
// derived from Collection at export time.
type Document struct {
	Slider          []Anime `json:"slider"`
	Trending        []Anime `json:"trending"`
	Popular         []Anime `json:"popular"`
	MostFavorite    []Anime `json:"most_favorite"`
	RecentAdded     []Anime `json:"recent_added"`
	LatestCompleted []Anime `json:"latest_completed"`
	LatestEpisodes  []Anime `json:"latest_episodes"`
	Collection      []Anime `json:"collection"`
}

// Slice returns the named slice and whether the name is known.
func (d *Document) Slice(name string) ([]Anime, bool) {
	switch name {
	case SliceSlider:
		return d.Slider, true
	case SliceTrending:
		return d.Trending, true
	case SlicePopular:
		return d.Popular, true
	case SliceMostFavorite:
		return d.MostFavorite, true
	case SliceRecentAdded:
		return d.RecentAdded, true
	case SliceLatestCompleted:
		return d.LatestCompleted, true
	case SliceLatestEpisodes:
		return d.LatestEpisodes, true
	case SliceCollection:
		return d.Collection, true
	}
	return nil, false
}

// Normalize applies record defaults to every slice and replaces nil slices
// with empty ones so the written document never carries null lists.
func (d *Document) Normalize() {
	for _, s := range []*[]Anime{
		&d.Slider, &d.Trending, &d.Popular, &d.MostFavorite,
		&d.RecentAdded, &d.LatestCompleted, &d.LatestEpisodes, &d.Collection,
	} {
		if *s == nil {
			*s = []Anime{}
			continue
		}
		for i := range *s {
			(*s)[i] = (*s)[i].WithDefaults()
		}
	}
}
