package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw      string
		wantPath string
		wantKW   string
		wantStr  string
	}{
		{raw: "/", wantPath: "/", wantStr: "/"},
		{raw: "", wantPath: "/", wantStr: "/"},
		{raw: "/?keyword=gro", wantPath: "/", wantKW: "gro", wantStr: "/?keyword=gro"},
		{raw: "/archived", wantPath: "/archived", wantStr: "/archived"},
		{raw: "notes/7", wantPath: "/notes/7", wantStr: "/notes/7"},
		{raw: "/?keyword=a%20b", wantPath: "/", wantKW: "a b", wantStr: "/?keyword=a+b"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			loc, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, loc.Path())
			assert.Equal(t, tt.wantKW, loc.Query("keyword"))
			assert.Equal(t, tt.wantStr, loc.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("/%zz")
	assert.Error(t, err)
}

func TestWithQuery(t *testing.T) {
	base := New("/")
	withKW := base.WithQuery("keyword", "x")

	assert.Equal(t, "/", base.String(), "original is not modified")
	assert.Equal(t, "/?keyword=x", withKW.String())
	assert.Equal(t, "/", withKW.WithQuery("keyword", "").String())
}

func TestHistory_PushReplaceBack(t *testing.T) {
	h := NewHistory(New("/"))
	var seen []string
	unsubscribe := h.Subscribe(func(l Location) { seen = append(seen, l.String()) })

	h.Push(New("/archived"))
	h.Replace(New("/archived").WithQuery("keyword", "a"))
	h.Replace(New("/archived").WithQuery("keyword", "a"))
	assert.Equal(t, 2, h.Len())

	assert.True(t, h.Back())
	assert.False(t, h.Back())
	assert.Equal(t, "/", h.Current().String())

	unsubscribe()
	h.Push(New("/add"))

	assert.Equal(t, []string{"/archived", "/archived?keyword=a", "/"}, seen)
}
