package pagesim

import "github.com/djdv/go-pagesim/internal/ring"

// fifo rotates a hand over the slots.
// The hand only moves when a full pool evicts,
// so the eviction order is the order slots were first filled.
type fifo struct {
	hand *ring.Ring[int]
}

func newFIFO(frames int) *fifo {
	slots := make([]int, frames)
	for i := range slots {
		slots[i] = i
	}
	return &fifo{hand: ring.Of(slots...)}
}

func (*fifo) hit(int)  {}
func (*fifo) fill(int) {}

func (f *fifo) evict(int) int {
	slot := f.hand.Value
	f.hand = f.hand.Next()
	return slot
}

func (*fifo) stamps() []uint64 { return nil }
