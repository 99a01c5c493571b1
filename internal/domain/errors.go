package domain

import "errors"

var (
	// ErrMissingParameter means a detail or episode lookup came without its id/ep.
	ErrMissingParameter = errors.New("missing parameter")
	ErrRecordNotFound   = errors.New("anime not found")
	ErrEpisodeNotFound  = errors.New("episode not found")
	// ErrFetchFailure covers an unreachable document or external API.
	ErrFetchFailure = errors.New("fetch failed")
	ErrEmptyCatalog = errors.New("catalog is empty")
)
