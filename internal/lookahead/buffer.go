// Package lookahead provides an arbitrary-offset peek/consume buffer over a
// lazily fetched stream. The lexer uses it for characters and the parser for
// tokens.
package lookahead

import "fmt"

// FetchFunc returns the next item of the stream, or false once the stream is
// exhausted. It is never called again after returning false.
type FetchFunc[T any] func() (T, bool)

// Buffer buffers items produced by a FetchFunc.
type Buffer[T any] struct {
	fetch FetchFunc[T]
	end   func() T

	items      []T
	endReached bool
	endItem    T
	hasEnd     bool
}

// New creates a buffer over fetch. end builds the end-of-input sentinel; it is
// called once, the first time a peek runs past the last item, and the same
// value is returned for every later peek.
func New[T any](fetch FetchFunc[T], end func() T) *Buffer[T] {
	return &Buffer[T]{fetch: fetch, end: end}
}

// Current is Peek(0).
func (b *Buffer[T]) Current() T {
	return b.Peek(0)
}

// Next is Peek(1).
func (b *Buffer[T]) Next() T {
	return b.Peek(1)
}

// Peek returns the item offset positions ahead of the current one.
// A negative offset is a programming error and panics.
func (b *Buffer[T]) Peek(offset int) T {
	if offset < 0 {
		panic(fmt.Sprintf("lookahead: negative offset %d", offset))
	}
	for len(b.items) <= offset && !b.endReached {
		item, ok := b.fetch()
		if !ok {
			b.endReached = true
			break
		}
		b.items = append(b.items, item)
	}
	if offset < len(b.items) {
		return b.items[offset]
	}
	return b.sentinel()
}

// Consume drops the current item and returns it.
func (b *Buffer[T]) Consume() T {
	cur := b.Current()
	b.ConsumeN(1)
	return cur
}

// ConsumeN drops up to n items. A negative n panics.
func (b *Buffer[T]) ConsumeN(n int) {
	if n < 0 {
		panic(fmt.Sprintf("lookahead: negative count %d", n))
	}
	for ; n > 0; n-- {
		if len(b.items) == 0 {
			if b.endReached {
				return
			}
			if _, ok := b.fetch(); !ok {
				b.endReached = true
				return
			}
			continue
		}
		var zero T
		b.items[0] = zero
		b.items = b.items[1:]
	}
}

// AtEnd reports whether the current item is the end-of-input sentinel.
func (b *Buffer[T]) AtEnd() bool {
	b.Peek(0)
	return len(b.items) == 0 && b.endReached
}

func (b *Buffer[T]) sentinel() T {
	if !b.hasEnd {
		b.endItem = b.end()
		b.hasEnd = true
	}
	return b.endItem
}
