package anilist

// Media is the raw AniList media object requested by mediaFields.
type Media struct {
	ID              int             `json:"id"`
	IDMal           int             `json:"idMal"`
	AverageScore    int             `json:"averageScore"`
	Title           MediaTitle      `json:"title"`
	Synonyms        []string        `json:"synonyms"`
	Description     string          `json:"description"`
	CoverImage      CoverImage      `json:"coverImage"`
	BannerImage     string          `json:"bannerImage"`
	Genres          []string        `json:"genres"`
	Episodes        int             `json:"episodes"`
	Status          string          `json:"status"`
	Format          string          `json:"format"`
	Duration        int             `json:"duration"`
	Season          string          `json:"season"`
	SeasonYear      int             `json:"seasonYear"`
	StartDate       FuzzyDate       `json:"startDate"`
	EndDate         FuzzyDate       `json:"endDate"`
	Studios         Studios         `json:"studios"`
	Trailer         *Trailer        `json:"trailer"`
	Characters      Characters      `json:"characters"`
	Relations       Relations       `json:"relations"`
	Recommendations Recommendations `json:"recommendations"`
	Popularity      int             `json:"popularity"`
	Trending        int             `json:"trending"`
}

type MediaTitle struct {
	Romaji        string `json:"romaji"`
	English       string `json:"english"`
	Native        string `json:"native"`
	UserPreferred string `json:"userPreferred"`
}

type CoverImage struct {
	Large string `json:"large"`
}

// FuzzyDate fields are zero when AniList does not know them.
type FuzzyDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type Studios struct {
	Edges []StudioEdge `json:"edges"`
}

type StudioEdge struct {
	IsMain bool `json:"isMain"`
	Node   struct {
		Name string `json:"name"`
	} `json:"node"`
}

type Trailer struct {
	ID        string `json:"id"`
	Site      string `json:"site"`
	Thumbnail string `json:"thumbnail"`
}

type Characters struct {
	Edges []CharacterEdge `json:"edges"`
}

type CharacterEdge struct {
	Role        string   `json:"role"`
	Node        Person   `json:"node"`
	VoiceActors []Person `json:"voiceActors"`
}

type Person struct {
	Name struct {
		Full string `json:"full"`
	} `json:"name"`
	Image struct {
		Large string `json:"large"`
	} `json:"image"`
}

type Relations struct {
	Edges []RelationEdge `json:"edges"`
}

type RelationEdge struct {
	RelationType string   `json:"relationType"`
	Node         MediaRef `json:"node"`
}

type MediaRef struct {
	ID    int `json:"id"`
	Title struct {
		UserPreferred string `json:"userPreferred"`
	} `json:"title"`
	CoverImage CoverImage `json:"coverImage"`
	Format     string     `json:"format"`
}

type Recommendations struct {
	Nodes []struct {
		MediaRecommendation *MediaRef `json:"mediaRecommendation"`
	} `json:"nodes"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type mediaResponse struct {
	Data struct {
		Media *Media `json:"Media"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type pageResponse struct {
	Data struct {
		Page struct {
			PageInfo struct {
				HasNextPage bool `json:"hasNextPage"`
			} `json:"pageInfo"`
			Media []Media `json:"media"`
		} `json:"Page"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}
