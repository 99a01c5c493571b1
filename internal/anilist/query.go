package anilist

const mediaFields = `
  id
  idMal
  averageScore
  title { romaji english native userPreferred }
  synonyms
  description(asHtml: false)
  coverImage { large }
  bannerImage
  genres
  episodes
  status
  format
  duration
  season
  seasonYear
  startDate { year month day }
  endDate { year month day }
  studios { edges { isMain node { name } } }
  trailer { id site thumbnail }
  characters(sort: ROLE, perPage: 10) { edges { role node { name { full } image { large } } voiceActors(language: JAPANESE, sort: RELEVANCE) { name { full } image { large } } } }
  relations { edges { relationType node { id title { userPreferred } coverImage { large } format } } }
  recommendations(sort: RATING_DESC, perPage: 10) { nodes { mediaRecommendation { id title { userPreferred } coverImage { large } format } } }
  popularity
  trending
`

const mediaByIDQuery = `
query ($id: Int) {
  Media (id: $id, type: ANIME) {` + mediaFields + `  }
}
`

// PerPage is the page size used for season-year imports.
const PerPage = 50

const mediaByYearQuery = `
query ($year: Int, $page: Int, $perPage: Int) {
  Page(page: $page, perPage: $perPage) {
    pageInfo {
      hasNextPage
    }
    media(seasonYear: $year, type: ANIME, sort: POPULARITY_DESC) {` + mediaFields + `    }
  }
}
`
