package pagesim

import "fmt"

type (
	// Outcome classifies a single reference.
	Outcome uint8
	// Step records the state of the frame pool
	// immediately after one reference was applied.
	Step struct {
		// Index is the reference's position in the reference string.
		Index int
		// Worker is the worker that applied the reference.
		Worker    int
		Reference Page
		Outcome   Outcome
		// Slot is the slot holding Reference after the step.
		Slot int
		// Evicted is the frame that was replaced, if any.
		// It is only occupied when a full pool faulted.
		Evicted Frame
		// Frames is a copy of the whole pool.
		Frames []Frame
		// Stamps holds per-slot recency stamps for [LRU]
		// and is nil for every other policy.
		Stamps []uint64
	}
	// WorkerStats tallies the references applied by one worker.
	WorkerStats struct {
		Worker       int
		Chunk        Chunk
		Faults, Hits int
	}
	// Result is returned by [Simulator.Run].
	Result struct {
		Policy       Policy
		Faults, Hits int
		// Frames is the pool's final contents.
		Frames []Frame
		// Workers holds one entry per dispatched worker, in chunk order.
		Workers []WorkerStats
	}
)

const (
	// Fault means the page was not resident and had to be placed.
	Fault Outcome = iota
	// Hit means the page was already resident.
	Hit
)

func (o Outcome) String() string {
	switch o {
	case Fault:
		return "Fault"
	case Hit:
		return "Hit"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// String renders the step as a single trace line,
// e.g. "  Hit for 2 | 1 (5) 2 (7) - (0)".
func (s Step) String() string {
	return fmt.Sprintf("%5s for %d | %s",
		s.Outcome, s.Reference, FormatFrames(s.Frames, s.Stamps))
}

// References returns the number of references that were applied.
func (r Result) References() int { return r.Faults + r.Hits }

// HitRatio returns hits over applied references,
// or 0 when nothing was applied.
func (r Result) HitRatio() float64 {
	total := r.References()
	if total == 0 {
		return 0
	}
	return float64(r.Hits) / float64(total)
}
