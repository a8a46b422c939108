package search

import (
	"github.com/nzaccagnino/notely/internal/binding"
	"github.com/nzaccagnino/notely/internal/location"
)

// Sync mirrors keyword with the QueryParam of the current location.
//
// The location wins at startup, so a deep link such as "/?keyword=gro"
// pre-populates the keyword. Afterwards a keyword change replaces the current
// history entry (no navigation) and a location change sets the keyword.
// The returned function detaches both directions.
func Sync(keyword *binding.Binding[string], history *location.History) (stop func()) {
	keyword.Set(history.Current().Query(QueryParam))

	removeKeyword := keyword.OnChange(func(k string) {
		cur := history.Current()
		if cur.Query(QueryParam) == k {
			return
		}
		history.Replace(cur.WithQuery(QueryParam, k))
	})
	removeHistory := history.Subscribe(func(loc location.Location) {
		keyword.Set(loc.Query(QueryParam))
	})

	return func() {
		removeKeyword()
		removeHistory()
	}
}
