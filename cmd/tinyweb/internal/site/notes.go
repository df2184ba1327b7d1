package site

import (
	"slices"
	"sync"
)

// Note is a short text entry.
type Note struct {
	ID    int    `json:"id" param:"-"`
	Title string `json:"title" sanitize:"strict"`
	Body  string `json:"body" sanitize:"html"`
}

// NoteStore keeps notes in memory.
type NoteStore struct {
	notes  map[int]Note
	nextID int
	mu     sync.RWMutex
}

func NewNoteStore() *NoteStore {
	return &NoteStore{notes: make(map[int]Note), nextID: 1}
}

// Add stores n and returns its ID.
func (s *NoteStore) Add(n Note) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.nextID
	s.nextID++
	s.notes[n.ID] = n
	return n.ID
}

func (s *NoteStore) Get(id int) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[id]
	return n, ok
}

func (s *NoteStore) Delete(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notes, id)
}

// List returns all notes ordered by ID.
func (s *NoteStore) List() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b Note) int { return a.ID - b.ID })
	return out
}
