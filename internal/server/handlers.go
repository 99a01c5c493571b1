package server

import (
	"net/http"

	"github.com/varoOP/animedexdb/internal/view"
)

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	doc, err := s.source.Document(r.Context())
	if err != nil {
		fail(s.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view.NewHome(doc))
}

func (s *Server) anime(w http.ResponseWriter, r *http.Request) {
	id, err := view.ParseID(r.URL.Query().Get("id"))
	if err != nil {
		fail(s.log, w, r, err)
		return
	}

	doc, err := s.source.Document(r.Context())
	if err != nil {
		fail(s.log, w, r, err)
		return
	}

	d, err := view.NewDetail(doc, id)
	if err != nil {
		fail(s.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) episode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := view.ParseID(q.Get("id"))
	if err != nil {
		fail(s.log, w, r, err)
		return
	}

	doc, err := s.source.Document(r.Context())
	if err != nil {
		fail(s.log, w, r, err)
		return
	}

	p, err := view.NewEpisodePage(doc, id, q.Get("ep"))
	if err != nil {
		fail(s.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	doc, err := s.source.Document(r.Context())
	if err != nil {
		fail(s.log, w, r, err)
		return
	}

	var p view.SearchPage
	if q := r.URL.Query(); q.Has("genre") {
		p, err = view.NewGenrePage(doc, q.Get("genre"))
	} else {
		p, err = view.NewSearchPage(doc, q.Get("query"))
	}
	if err != nil {
		fail(s.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) suggest(w http.ResponseWriter, r *http.Request) {
	doc, err := s.source.Document(r.Context())
	if err != nil {
		fail(s.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Suggestions(doc, r.URL.Query().Get("query")))
}

func (s *Server) random(w http.ResponseWriter, r *http.Request) {
	doc, err := s.source.Document(r.Context())
	if err != nil {
		fail(s.log, w, r, err)
		return
	}

	id, err := view.RandomID(doc, intNFunc(s.intN))
	if err != nil {
		fail(s.log, w, r, err)
		return
	}
	http.Redirect(w, r, view.DetailURL(id), http.StatusFound)
}
