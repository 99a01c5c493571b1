package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/varoOP/animedexdb/internal/anilist"
	"github.com/varoOP/animedexdb/internal/domain"
	"github.com/varoOP/animedexdb/internal/jikan"
)

const aniListPayload = `{
  "id": 16498,
  "averageScore": 85,
  "title": {"romaji": "Shingeki no Kyojin", "english": "Attack on Titan", "native": "進撃の巨人", "userPreferred": "Shingeki no Kyojin"},
  "synonyms": ["AoT"],
  "description": "<p>Humanity <b>fights</b>.</p>",
  "coverImage": {"large": "https://img/cover.jpg"},
  "bannerImage": null,
  "genres": ["Action", "Drama"],
  "episodes": 25,
  "status": "FINISHED",
  "format": "TV",
  "duration": 24,
  "season": "SPRING",
  "seasonYear": 2013,
  "startDate": {"year": 2013, "month": 4, "day": 7},
  "endDate": {"year": 2013, "month": 9, "day": 29},
  "studios": {"edges": [
    {"isMain": false, "node": {"name": "Pony Canyon"}},
    {"isMain": true, "node": {"name": "Wit Studio"}}
  ]},
  "trailer": {"id": "LHtdKWJdif4", "site": "youtube", "thumbnail": "https://i.ytimg.com/vi/x.jpg"},
  "characters": {"edges": [
    {"role": "MAIN", "node": {"name": {"full": "Eren Yeager"}, "image": {"large": "https://img/eren.jpg"}}, "voiceActors": []}
  ]},
  "relations": {"edges": [
    {"relationType": "SEQUEL", "node": {"id": 20958, "title": {"userPreferred": "Shingeki no Kyojin Season 2"}, "coverImage": {"large": ""}, "format": "TV"}}
  ]},
  "recommendations": {"nodes": [
    {"mediaRecommendation": {"id": 1535, "title": {"userPreferred": "Death Note"}, "coverImage": {"large": ""}, "format": "TV"}},
    {"mediaRecommendation": null}
  ]},
  "popularity": 700000,
  "trending": 30
}`

func loadMedia(t *testing.T) *anilist.Media {
	t.Helper()
	m := &anilist.Media{}
	require.NoError(t, json.Unmarshal([]byte(aniListPayload), m))
	return m
}

func TestFromAniList(t *testing.T) {
	t.Parallel()

	a := FromAniList(loadMedia(t), nil)

	require.Equal(t, 16498, a.ID)
	require.Equal(t, 85.0, a.Score)
	require.Equal(t, "Shingeki no Kyojin", a.Title.Resolve())
	require.Equal(t, "Attack on Titan", a.Title.Display())
	require.Equal(t, "Spring 2013", a.Premiered)
	require.Equal(t, "4/7/2013 to 9/29/2013", a.Aired)
	require.Equal(t, []string{"Wit Studio"}, a.Studios)
	require.Equal(t, domain.Views{Monthly: 700000, Weekly: 700060, Daily: 30}, a.Views)
	require.Equal(t, domain.Minutes(24), a.Duration)
	require.True(t, a.HasTrailer())
	require.Len(t, a.Characters, 1)
	require.NotNil(t, a.Characters[0].VoiceActors)
	require.Len(t, a.Relations, 1)
	require.Len(t, a.Recommendations, 1)
	require.Equal(t, 1535, a.Recommendations[0].ID)
	require.Empty(t, a.Producers)
	require.NotNil(t, a.Producers)
	require.NotNil(t, a.EpisodesList)
	require.Equal(t, "https://img/cover.jpg", a.Banner())
}

func TestFromAniListWithJikanExtra(t *testing.T) {
	t.Parallel()

	m := loadMedia(t)
	extra := &jikan.Anime{Score: 8.54, Producers: []jikan.Named{{Name: "Production I.G"}, {Name: "Dentsu"}}}

	a := FromAniList(m, extra)
	require.Equal(t, []string{"Production I.G", "Dentsu"}, a.Producers)
	require.Equal(t, 85.0, a.Score)

	m.AverageScore = 0
	a = FromAniList(m, extra)
	require.Equal(t, 85.0, a.Score)
}

func TestFromAniListEmptyPayload(t *testing.T) {
	t.Parallel()

	a := FromAniList(&anilist.Media{ID: 1, Title: anilist.MediaTitle{Romaji: "Romaji Only"}}, nil)

	require.Equal(t, "Romaji Only", a.Title.UserPreferred)
	require.Equal(t, "? to ?", a.Aired)
	require.Equal(t, "", a.Premiered)
	require.Nil(t, a.Trailer)
	require.Equal(t, domain.Views{}, a.Views)
	require.NotNil(t, a.Genres)
	require.NotNil(t, a.Synonyms)
	require.NotNil(t, a.Studios)
	require.NotNil(t, a.Characters)
	require.NotNil(t, a.Relations)
	require.NotNil(t, a.Recommendations)

	out, err := json.Marshal(a)
	require.NoError(t, err)
	require.Contains(t, string(out), `"genres":[]`)
	require.Contains(t, string(out), `"trailer":null`)
}

func TestStudiosFallBackToFirstThree(t *testing.T) {
	t.Parallel()

	edge := func(name string) anilist.StudioEdge {
		e := anilist.StudioEdge{}
		e.Node.Name = name
		return e
	}

	got := studios([]anilist.StudioEdge{edge("A"), edge("B"), edge("C"), edge("D")})
	require.Equal(t, []string{"A", "B", "C"}, got)
	require.Empty(t, studios(nil))
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   anilist.FuzzyDate
		want string
	}{
		{anilist.FuzzyDate{Year: 2020, Month: 1, Day: 5}, "1/5/2020"},
		{anilist.FuzzyDate{Year: 2020, Month: 10}, "10/?/2020"},
		{anilist.FuzzyDate{Year: 2020}, "?/?/2020"},
		{anilist.FuzzyDate{Month: 3, Day: 2}, "?"},
		{anilist.FuzzyDate{}, "?"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, FormatDate(tc.in))
	}
}

func TestPremiered(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Winter 2024", Premiered("WINTER", 2024))
	require.Equal(t, "Fall 2001", Premiered("fall", 2001))
	require.Equal(t, "2019", Premiered("", 2019))
	require.Equal(t, "Summer", Premiered("SUMMER", 0))
	require.Equal(t, "", Premiered("", 0))
}

func TestViewsHeuristic(t *testing.T) {
	t.Parallel()

	require.Equal(t, domain.Views{Monthly: 100, Weekly: 140, Daily: 20}, Views(100, 20))
	require.Equal(t, domain.Views{}, Views(0, 0))
}

func TestFromJikan(t *testing.T) {
	t.Parallel()

	raw := `{
	  "mal_id": 5114,
	  "title": "Fullmetal Alchemist: Brotherhood",
	  "title_english": "Fullmetal Alchemist: Brotherhood",
	  "title_japanese": "鋼の錬金術師",
	  "title_synonyms": ["FMA:B"],
	  "synopsis": "Two brothers.",
	  "type": "TV",
	  "status": "Finished Airing",
	  "episodes": 64,
	  "duration": "24 min per ep",
	  "score": 9.1,
	  "season": "spring",
	  "year": 2009,
	  "aired": {"string": "Apr 5, 2009 to Jul 4, 2010"},
	  "images": {"jpg": {"large_image_url": "https://cdn/fma.jpg"}},
	  "trailer": {"youtube_id": "--IcmZkvL0Q", "images": {"image_url": "https://i.ytimg.com/x.jpg"}},
	  "genres": [{"mal_id": 1, "name": "Action"}],
	  "studios": [{"mal_id": 4, "name": "Bones"}],
	  "producers": [{"mal_id": 61, "name": "Aniplex"}]
	}`

	j := &jikan.Anime{}
	require.NoError(t, json.Unmarshal([]byte(raw), j))

	a := FromJikan(j)
	require.Equal(t, 5114, a.ID)
	require.Equal(t, 91.0, a.Score)
	require.Equal(t, domain.StatusFinished, a.Status)
	require.True(t, a.IsFinished())
	require.Equal(t, domain.FormatTV, a.Format)
	require.Equal(t, domain.Minutes(24), a.Duration)
	require.Equal(t, "Spring 2009", a.Premiered)
	require.Equal(t, "Apr 5, 2009 to Jul 4, 2010", a.Aired)
	require.Equal(t, []string{"Bones"}, a.Studios)
	require.Equal(t, []string{"Aniplex"}, a.Producers)
	require.Equal(t, []string{"Action"}, a.Genres)
	require.Equal(t, domain.Views{}, a.Views)
	require.True(t, a.HasTrailer())
	require.Equal(t, "--IcmZkvL0Q", a.Trailer.ID)
	require.Empty(t, a.Characters)
}

func TestJikanVocabulary(t *testing.T) {
	t.Parallel()

	require.Equal(t, domain.StatusReleasing, Status("Currently Airing"))
	require.Equal(t, domain.StatusNotYetReleased, Status("Not yet aired"))
	require.Equal(t, "", Status(""))
	require.Equal(t, domain.FormatSpecial, Format("TV Special"))
	require.Equal(t, domain.FormatMovie, Format("Movie"))
	require.Equal(t, "PV", Format("PV"))
	require.Equal(t, "CM_SPOT", Format("cm spot"))
}

func TestNilPayloads(t *testing.T) {
	t.Parallel()

	require.NotNil(t, FromAniList(nil, nil).Genres)
	require.NotNil(t, FromJikan(nil).EpisodesList)
}
