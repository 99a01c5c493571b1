// Package catalog holds the in-memory collection of an admin session.
package catalog

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/varoOP/animedexdb/internal/domain"
)

// Store keeps records in append order, unique by id, plus the curated
// latest-episodes list. It is not safe for concurrent use.
type Store struct {
	records []domain.Anime
	index   map[int]int
	latest  []int
}

// New builds a store from records. A later duplicate id replaces the earlier
// record in place.
func New(records ...domain.Anime) *Store {
	s := &Store{index: make(map[int]int, len(records))}
	for _, r := range records {
		s.Upsert(r)
	}
	return s
}

// Upsert replaces the record with the same id, or appends it.
func (s *Store) Upsert(a domain.Anime) {
	a = a.WithDefaults()
	if i, ok := s.index[a.ID]; ok {
		s.records[i] = a
		return
	}
	s.index[a.ID] = len(s.records)
	s.records = append(s.records, a)
}

// AppendNew appends the records whose ids are not stored yet and returns how
// many were added. Existing records are left untouched.
func (s *Store) AppendNew(records ...domain.Anime) int {
	added := 0
	for _, r := range records {
		if s.Has(r.ID) {
			continue
		}
		s.Upsert(r)
		added++
	}
	return added
}

// Remove deletes the record and its latest-episodes entry. It reports whether
// the id was present.
func (s *Store) Remove(id int) bool {
	s.latest = slices.DeleteFunc(s.latest, func(v int) bool { return v == id })

	i, ok := s.index[id]
	if !ok {
		return false
	}

	s.records = slices.Delete(s.records, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.records); j++ {
		s.index[s.records[j].ID] = j
	}
	return true
}

func (s *Store) Get(id int) (domain.Anime, bool) {
	i, ok := s.index[id]
	if !ok {
		return domain.Anime{}, false
	}
	return s.records[i], true
}

func (s *Store) Has(id int) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store) Len() int {
	return len(s.records)
}

// All returns a copy of the collection in append order.
func (s *Store) All() []domain.Anime {
	return slices.Clone(s.records)
}

// UpdateEpisodes replaces the playable episodes of a record.
func (s *Store) UpdateEpisodes(id int, episodes []domain.Episode) error {
	i, ok := s.index[id]
	if !ok {
		return errors.Wrapf(domain.ErrRecordNotFound, "id %d", id)
	}
	if episodes == nil {
		episodes = []domain.Episode{}
	}
	s.records[i].EpisodesList = slices.Clone(episodes)
	return nil
}

// SetLatest adds or removes a title from the latest-episodes list. Marking an
// already listed title moves it to the end.
func (s *Store) SetLatest(id int, latest bool) error {
	if latest && !s.Has(id) {
		return errors.Wrapf(domain.ErrRecordNotFound, "id %d", id)
	}

	s.latest = slices.DeleteFunc(s.latest, func(v int) bool { return v == id })
	if latest {
		s.latest = append(s.latest, id)
	}
	return nil
}

func (s *Store) IsLatest(id int) bool {
	return slices.Contains(s.latest, id)
}

// LatestIDs returns the curated ids in curation order.
func (s *Store) LatestIDs() []int {
	return slices.Clone(s.latest)
}

// Latest materializes the curated list from the current records.
func (s *Store) Latest() []domain.Anime {
	out := make([]domain.Anime, 0, len(s.latest))
	for _, id := range s.latest {
		if a, ok := s.Get(id); ok {
			out = append(out, a)
		}
	}
	return out
}
