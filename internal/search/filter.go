// Package search derives the visible subset of notes from a keyword and keeps
// that keyword in step with the location's "keyword" query parameter.
package search

import (
	"strings"
	"sync"

	"github.com/nzaccagnino/notely/internal/api"
)

const QueryParam = "keyword"

// Filter returns the notes whose title contains keyword, ignoring case.
// An empty keyword returns notes unchanged.
func Filter(notes []api.Note, keyword string) []api.Note {
	if keyword == "" {
		return notes
	}
	needle := strings.ToLower(keyword)
	filtered := make([]api.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), needle) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

// View holds a collection and the keyword-filtered subset of it. The subset
// is recomputed whenever either input changes.
type View struct {
	mu      sync.RWMutex
	all     []api.Note
	keyword string
	visible []api.Note
}

func NewView() *View {
	return &View{}
}

func (v *View) SetNotes(notes []api.Note) {
	v.mu.Lock()
	v.all = notes
	v.recompute()
	v.mu.Unlock()
}

func (v *View) SetKeyword(keyword string) {
	v.mu.Lock()
	v.keyword = keyword
	v.recompute()
	v.mu.Unlock()
}

func (v *View) recompute() {
	v.visible = Filter(v.all, v.keyword)
}

func (v *View) Keyword() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.keyword
}

func (v *View) All() []api.Note {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.all
}

func (v *View) Notes() []api.Note {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visible
}
