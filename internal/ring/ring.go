// Package ring is a specialized adaption of `container/ring`
// used as a rotating hand over a fixed set of frame slots.
package ring

import "iter"

// A Ring is an element of a circular list, or ring.
// Rings do not have a beginning or end; a pointer to any ring element
// serves as reference to the entire ring. Empty rings are represented
// as nil Ring pointers. The zero value for a Ring is a one-element
// ring with a zero Value.
type Ring[Value any] struct {
	next, prev *Ring[Value]
	Value      Value
}

func (r *Ring[Value]) init() *Ring[Value] {
	r.next = r
	r.prev = r
	return r
}

// Next returns the next ring element. r must not be empty.
func (r *Ring[Value]) Next() *Ring[Value] {
	if r.next == nil {
		return r.init()
	}
	return r.next
}

// Prev returns the previous ring element. r must not be empty.
func (r *Ring[Value]) Prev() *Ring[Value] {
	if r.next == nil {
		return r.init()
	}
	return r.prev
}

// Move moves n % r.Len() elements backward (n < 0) or forward (n >= 0)
// in the ring and returns that ring element. r must not be empty.
func (r *Ring[Value]) Move(n int) *Ring[Value] {
	if r.next == nil {
		return r.init()
	}
	switch {
	case n < 0:
		for ; n < 0; n++ {
			r = r.prev
		}
	case n > 0:
		for ; n > 0; n-- {
			r = r.next
		}
	}
	return r
}

// New creates a ring of n elements.
func New[Value any](n int) *Ring[Value] {
	if n <= 0 {
		return nil
	}
	var (
		r = new(Ring[Value])
		p = r
	)
	for i := 1; i < n; i++ {
		p.next = &Ring[Value]{prev: p}
		p = p.next
	}
	p.next = r
	r.prev = p
	return r
}

// Of creates a ring holding values in order,
// and returns the element holding the first value.
func Of[Value any](values ...Value) *Ring[Value] {
	r := New[Value](len(values))
	p := r
	for _, value := range values {
		p.Value = value
		p = p.next
	}
	return r
}

// Len computes the number of elements in ring r.
// It executes in time proportional to the number of elements.
func (r *Ring[Value]) Len() int {
	n := 0
	if r != nil {
		n = 1
		for p := r.Next(); p != r; p = p.next {
			n++
		}
	}
	return n
}

// Values returns an iterator over the ring's values in forward order,
// starting at r.
func (r *Ring[Value]) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		if r == nil ||
			!yield(r.Value) {
			return
		}
		for p := r.Next(); p != r; p = p.next {
			if !yield(p.Value) {
				return
			}
		}
	}
}
