package jikan

// Anime is the Jikan anime object shared by the single and list endpoints.
type Anime struct {
	MalID         int      `json:"mal_id"`
	Title         string   `json:"title"`
	TitleEnglish  string   `json:"title_english"`
	TitleJapanese string   `json:"title_japanese"`
	TitleSynonyms []string `json:"title_synonyms"`
	Synopsis      string   `json:"synopsis"`
	Type          string   `json:"type"`
	Status        string   `json:"status"`
	Episodes      int      `json:"episodes"`
	Duration      string   `json:"duration"`
	Score         float64  `json:"score"`
	Season        string   `json:"season"`
	Year          int      `json:"year"`
	Aired         struct {
		String string `json:"string"`
	} `json:"aired"`
	Images struct {
		JPG struct {
			LargeImageURL string `json:"large_image_url"`
		} `json:"jpg"`
	} `json:"images"`
	Trailer struct {
		YoutubeID string `json:"youtube_id"`
		Images    struct {
			ImageURL string `json:"image_url"`
		} `json:"images"`
	} `json:"trailer"`
	Genres    []Named `json:"genres"`
	Studios   []Named `json:"studios"`
	Producers []Named `json:"producers"`
}

type Named struct {
	MalID int    `json:"mal_id"`
	Name  string `json:"name"`
}

type AnimeResponse struct {
	Data Anime `json:"data"`
}

type AnimeListResponse struct {
	Data       []Anime `json:"data"`
	Pagination struct {
		LastVisiblePage int  `json:"last_visible_page"`
		HasNextPage     bool `json:"has_next_page"`
	} `json:"pagination"`
}
