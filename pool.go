package pagesim

import (
	"strconv"
	"strings"
)

type (
	// Page identifies a virtual memory page in a reference string.
	Page = int
	// Frame is a snapshot of one slot of the frame pool.
	Frame struct {
		Page Page
		// Occupied is false for a slot that has never been filled.
		Occupied bool
	}
	// pool is the fixed set of frame slots shared by every worker of a run.
	// All access must happen under the run's lock.
	pool struct {
		slots []Frame
	}
)

func newPool(frames int) *pool {
	return &pool{slots: make([]Frame, frames)}
}

// lookup scans slots low-to-high and stops at the first slot
// that either holds page or is empty.
// Slots are only ever filled in index order and never emptied,
// so empty slots always form a suffix of the pool.
func (p *pool) lookup(page Page) (int, bool) {
	for slot, frame := range p.slots {
		if !frame.Occupied {
			return slot, false
		}
		if frame.Page == page {
			return slot, true
		}
	}
	return -1, false
}

// place stores page in slot and returns the frame it replaced.
func (p *pool) place(slot int, page Page) (previous Frame) {
	previous = p.slots[slot]
	p.slots[slot] = Frame{Page: page, Occupied: true}
	return previous
}

func (p *pool) snapshot() []Frame {
	return append([]Frame(nil), p.slots...)
}

// unique reports whether every occupied slot holds a distinct page.
func (p *pool) unique() bool {
	seen := make(map[Page]struct{}, len(p.slots))
	for _, frame := range p.slots {
		if !frame.Occupied {
			continue
		}
		if _, ok := seen[frame.Page]; ok {
			return false
		}
		seen[frame.Page] = struct{}{}
	}
	return true
}

// String renders the page, or "-" for an empty slot.
func (f Frame) String() string {
	if !f.Occupied {
		return "-"
	}
	return strconv.Itoa(f.Page)
}

// FormatFrames renders frames separated by spaces.
// If stamps is not empty, each frame is followed by its
// recency stamp in parentheses.
func FormatFrames(frames []Frame, stamps []uint64) string {
	var b strings.Builder
	for i, frame := range frames {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(frame.String())
		if i < len(stamps) {
			b.WriteString(" (")
			b.WriteString(strconv.FormatUint(stamps[i], 10))
			b.WriteByte(')')
		}
	}
	return b.String()
}
