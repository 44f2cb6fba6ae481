package pagesim

import "slices"

type (
	// positions maps each page to the ascending
	// indices at which it occurs in the reference string.
	// It is built once and only read afterwards.
	positions map[Page][]int
	// optimal looks ahead in the reference string.
	// It keeps no state of its own between decisions.
	optimal struct {
		pool  *pool
		index positions
	}
)

func indexPositions(references []Page) positions {
	index := make(positions)
	for position, page := range references {
		index[page] = append(index[page], position)
	}
	return index
}

// nextUse returns the first position of page strictly after position.
func (index positions) nextUse(page Page, position int) (int, bool) {
	var (
		occurrences = index[page]
		at, _       = slices.BinarySearch(occurrences, position+1)
	)
	if at == len(occurrences) {
		return 0, false
	}
	return occurrences[at], true
}

func newOptimal(pool *pool, index positions) *optimal {
	return &optimal{pool: pool, index: index}
}

func (*optimal) hit(int)  {}
func (*optimal) fill(int) {}

// evict scans slots in order. The first page that never
// recurs is chosen outright; otherwise the page whose next
// use is farthest wins, with earlier slots kept on ties.
func (o *optimal) evict(position int) int {
	var (
		victim   = -1
		farthest = position
	)
	for slot, frame := range o.pool.slots {
		next, recurs := o.index.nextUse(frame.Page, position)
		if !recurs {
			return slot
		}
		if next > farthest {
			farthest = next
			victim = slot
		}
	}
	if victim == -1 {
		return 0
	}
	return victim
}

func (*optimal) stamps() []uint64 { return nil }
