package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzaccagnino/notely/internal/binding"
	"github.com/nzaccagnino/notely/internal/location"
)

func TestSync_DeepLinkPrepopulatesKeyword(t *testing.T) {
	start, err := location.Parse("/?keyword=gro")
	require.NoError(t, err)

	keyword := binding.New("")
	history := location.NewHistory(start)
	stop := Sync(keyword, history)
	defer stop()

	assert.Equal(t, "gro", keyword.Value())
}

func TestSync_KeywordChangeReplacesLocation(t *testing.T) {
	keyword := binding.New("")
	history := location.NewHistory(location.New("/"))
	stop := Sync(keyword, history)
	defer stop()

	keyword.Set("milk")
	assert.Equal(t, "/?keyword=milk", history.Current().String())
	assert.Equal(t, 1, history.Len(), "typing must not push history entries")

	keyword.Set("")
	assert.Equal(t, "/", history.Current().String())
}

func TestSync_NavigationUpdatesKeyword(t *testing.T) {
	keyword := binding.New("")
	history := location.NewHistory(location.New("/"))
	stop := Sync(keyword, history)
	defer stop()

	history.Push(location.New("/").WithQuery(QueryParam, "eggs"))
	assert.Equal(t, "eggs", keyword.Value())

	history.Back()
	assert.Equal(t, "", keyword.Value())
}

func TestSync_Stop(t *testing.T) {
	keyword := binding.New("")
	history := location.NewHistory(location.New("/"))
	stop := Sync(keyword, history)
	stop()

	keyword.Set("x")
	assert.Equal(t, "/", history.Current().String())

	history.Push(location.New("/").WithQuery(QueryParam, "y"))
	assert.Equal(t, "x", keyword.Value())
}
