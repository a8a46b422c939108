package binding

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinding_SetFiresOnChange(t *testing.T) {
	b := New("")
	var got []string
	b.OnChange(func(v string) { got = append(got, v) })

	assert.True(t, b.Set("gro"))
	assert.False(t, b.Set("gro"), "same value must not fire")
	assert.True(t, b.Set(""))

	assert.Equal(t, []string{"gro", ""}, got)
	assert.Equal(t, "", b.Value())
}

func TestBinding_RemoveHandler(t *testing.T) {
	b := New(0)
	calls := 0
	remove := b.OnChange(func(int) { calls++ })

	b.Set(1)
	remove()
	remove()
	b.Set(2)

	assert.Equal(t, 1, calls)
}

func TestBinding_Field(t *testing.T) {
	b := New(3)
	f := b.Field()
	assert.Equal(t, 3, f.Value)

	f.OnChange(7)
	assert.Equal(t, 7, b.Value())
}

func TestBinding_MirroredPairTerminates(t *testing.T) {
	left := New("")
	right := New("")
	left.OnChange(func(v string) { right.Set(v) })
	right.OnChange(func(v string) { left.Set(v) })

	left.Set("x")
	assert.Equal(t, "x", right.Value())

	right.Set("y")
	assert.Equal(t, "y", left.Value())
}

func TestBinding_ConcurrentSetsDeliverLatest(t *testing.T) {
	for round := 0; round < 50; round++ {
		b := New("")
		var mu sync.Mutex
		var last string
		b.OnChange(func(v string) {
			mu.Lock()
			last = v
			mu.Unlock()
		})

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				b.Set(fmt.Sprintf("k%d", i))
			}(i)
		}
		wg.Wait()

		mu.Lock()
		assert.Equal(t, b.Value(), last, "round %d", round)
		mu.Unlock()
	}
}

func TestBinding_HandlerMaySetSameValue(t *testing.T) {
	b := New("")
	calls := 0
	b.OnChange(func(v string) {
		calls++
		b.Set(v)
	})

	assert.True(t, b.Set("gro"))
	assert.Equal(t, 1, calls)
}
