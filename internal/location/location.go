// Package location models the application's address bar: a path plus query
// parameters, and a navigation history that can push or replace entries.
package location

import (
	"fmt"
	"net/url"
	"strings"
)

type Location struct {
	path  string
	query url.Values
}

func New(path string) Location {
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	return Location{path: path, query: url.Values{}}
}

func Parse(raw string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Location{}, fmt.Errorf("failed to parse location %q: %w", raw, err)
	}
	loc := New(u.Path)
	loc.query = u.Query()
	return loc, nil
}

func (l Location) Path() string {
	if l.path == "" {
		return "/"
	}
	return l.path
}

func (l Location) Query(key string) string {
	return l.query.Get(key)
}

// WithQuery returns a copy with key set to value. An empty value removes the key.
func (l Location) WithQuery(key, value string) Location {
	q := url.Values{}
	for k, v := range l.query {
		q[k] = append([]string(nil), v...)
	}
	if value == "" {
		q.Del(key)
	} else {
		q.Set(key, value)
	}
	return Location{path: l.Path(), query: q}
}

func (l Location) String() string {
	if len(l.query) == 0 {
		return l.Path()
	}
	return l.Path() + "?" + l.query.Encode()
}

func (l Location) Equal(other Location) bool {
	return l.String() == other.String()
}
