package ring

import (
	"errors"
	"fmt"
	"iter"
)

const DefaultCapacity = 5

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrIndexOutOfBounds = errors.New("index out of bounds")
)

// Ring keeps the most recent items up to a fixed capacity. Index 0 is always the newest item.
//
// A Ring is not safe for concurrent use.
type Ring[T any] struct {
	items []T
	tail  int // next slot to write
	size  int
}

func New[T any](capacity int) (*Ring[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: ring capacity %d must be positive", ErrInvalidArgument, capacity)
	}
	return &Ring[T]{items: make([]T, capacity)}, nil
}

// Add writes item at the tail. Once the ring is full the oldest item is overwritten.
func (r *Ring[T]) Add(item T) {
	r.items[r.tail] = item
	r.tail = (r.tail + 1) % len(r.items)
	if r.size < len(r.items) {
		r.size++
	}
}

func (r *Ring[T]) Get(index int) (T, error) {
	if index < 0 || index >= r.size {
		var zero T
		return zero, fmt.Errorf("%w: index %d with size %d", ErrIndexOutOfBounds, index, r.size)
	}
	return r.items[r.slot(index)], nil
}

// slot converts a logical index (0 = newest) into a position in items
func (r *Ring[T]) slot(index int) int {
	return (r.tail - 1 - index + len(r.items)) % len(r.items)
}

func (r *Ring[T]) Size() int {
	return r.size
}

func (r *Ring[T]) Capacity() int {
	return len(r.items)
}

func (r *Ring[T]) CapacityLeft() int {
	return len(r.items) - r.size
}

func (r *Ring[T]) IsEmpty() bool {
	return r.size == 0
}

func (r *Ring[T]) IsFull() bool {
	return r.size == len(r.items)
}

// All yields the items from newest to oldest. Adding while iterating is not supported.
func (r *Ring[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < r.size; i++ {
			if !yield(i, r.items[r.slot(i)]) {
				return
			}
		}
	}
}

// Slice copies the items out, newest first
func (r *Ring[T]) Slice() []T {
	out := make([]T, 0, r.size)
	for _, item := range r.All() {
		out = append(out, item)
	}
	return out
}
