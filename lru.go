package pagesim

// lru stamps slots with a logical clock.
// The clock advances on every hit and fill, so no two
// stamps handed out during a run are equal.
type lru struct {
	stamp []uint64
	now   uint64
}

func newLRU(frames int) *lru {
	return &lru{stamp: make([]uint64, frames)}
}

func (l *lru) hit(slot int)  { l.touch(slot) }
func (l *lru) fill(slot int) { l.touch(slot) }

func (l *lru) touch(slot int) {
	l.now++
	l.stamp[slot] = l.now
}

// evict returns the slot with the smallest stamp.
// Ties resolve to the lowest slot.
func (l *lru) evict(int) int {
	least := 0
	for slot, stamp := range l.stamp {
		if stamp < l.stamp[least] {
			least = slot
		}
	}
	return least
}

func (l *lru) stamps() []uint64 {
	return append([]uint64(nil), l.stamp...)
}
