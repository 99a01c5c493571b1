package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/varoOP/animedexdb/internal/domain"
)

type errorResponse struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: apiError{Code: code, Message: message, RequestID: RequestIDFromContext(r.Context())}})
}

// fail maps a catalog error onto its HTTP response. A missing parameter sends
// the client back to the home view.
func fail(log zerolog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingParameter):
		http.Redirect(w, r, "/", http.StatusFound)
	case errors.Is(err, domain.ErrRecordNotFound):
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrEpisodeNotFound):
		writeError(w, r, http.StatusNotFound, "EPISODE_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrEmptyCatalog):
		writeError(w, r, http.StatusNotFound, "EMPTY_CATALOG", err.Error())
	case errors.Is(err, domain.ErrFetchFailure):
		log.Error().Err(err).Msg("failed to load catalog document")
		writeError(w, r, http.StatusServiceUnavailable, "UNAVAILABLE", "Failed to load anime data.")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}
