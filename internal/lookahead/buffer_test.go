package lookahead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intStream(n int) (FetchFunc[int], *int) {
	calls := 0
	next := 0
	return func() (int, bool) {
		calls++
		if next >= n {
			return 0, false
		}
		next++
		return next, true
	}, &calls
}

func TestPeekAndConsume(t *testing.T) {
	fetch, _ := intStream(3)
	b := New(fetch, func() int { return -1 })

	assert.Equal(t, 1, b.Current())
	assert.Equal(t, 3, b.Peek(2))
	assert.Equal(t, -1, b.Peek(3))
	assert.Equal(t, -1, b.Peek(10))

	assert.Equal(t, 1, b.Consume())
	assert.Equal(t, 2, b.Current())
	b.ConsumeN(5)
	assert.True(t, b.AtEnd())
	assert.Equal(t, -1, b.Current())
}

func TestFetchIsLazy(t *testing.T) {
	fetch, calls := intStream(100)
	b := New(fetch, func() int { return 0 })

	require.Equal(t, 0, *calls)
	b.Peek(4)
	assert.Equal(t, 5, *calls)
	b.Current()
	assert.Equal(t, 5, *calls)
}

func TestConsumeWithoutPeekFetches(t *testing.T) {
	fetch, _ := intStream(4)
	b := New(fetch, func() int { return 0 })

	b.ConsumeN(2)
	assert.Equal(t, 3, b.Current())
}

func TestSentinelIsBuiltOnce(t *testing.T) {
	var empty FetchFunc[*int] = func() (*int, bool) { return nil, false }
	built := 0
	b := New(empty, func() *int { built++; v := built; return &v })

	first := b.Current()
	second := b.Peek(3)
	assert.Same(t, first, second)
	assert.Equal(t, 1, built)
}

func TestNegativeArgumentsPanic(t *testing.T) {
	fetch, _ := intStream(1)
	b := New(fetch, func() int { return 0 })

	assert.Panics(t, func() { b.Peek(-1) })
	assert.Panics(t, func() { b.ConsumeN(-2) })
}
