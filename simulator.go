package pagesim

import (
	"log/slog"
	"sync"
)

type (
	// Config describes a simulation.
	Config struct {
		Policy Policy
		// Frames is the fixed size of the frame pool.
		Frames int
		// Workers is the number of goroutines the reference
		// string is split across. 1 yields a deterministic,
		// sequential simulation.
		Workers int
		// Observer, if not nil, is called once per reference
		// while the pool is still locked, so calls never overlap
		// and arrive in the order the pool was mutated.
		// Observer must not call back into the [Simulator].
		Observer func(Step)
		// Logger receives debug records about dispatch.
		// A nil Logger discards them.
		Logger *slog.Logger
	}
	// Simulator applies a replacement policy to a reference string.
	// Constructed by [New].
	Simulator struct {
		references []Page
		index      positions
		observer   func(Step)
		logger     *slog.Logger
		policy     Policy
		frames     int
		workers    int
	}
	// run is the mutable state of a single [Simulator.Run].
	// Every field is guarded by mu.
	run struct {
		mu           sync.Mutex
		pool         *pool
		replacer     replacer
		faults, hits int
	}
)

const (
	// MinimumFrames defines the lowest frame count supported by [New].
	MinimumFrames = 1
	// MinimumWorkers defines the lowest worker count supported by [New].
	MinimumWorkers = 1
)

// New creates a [Simulator] for references.
// The reference string is copied and never modified.
// An empty reference string is valid and produces an empty run.
func New(config Config, references []Page) (*Simulator, error) {
	if config.Frames < MinimumFrames {
		return nil, minFramesError(config.Frames)
	}
	if config.Workers < MinimumWorkers {
		return nil, minWorkersError(config.Workers)
	}
	if !config.Policy.valid() {
		return nil, unknownPolicyError(config.Policy.String())
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var (
		refs  = append([]Page(nil), references...)
		index positions
	)
	if config.Policy == Optimal {
		index = indexPositions(refs)
	}
	return &Simulator{
		references: refs,
		index:      index,
		observer:   config.Observer,
		logger:     logger,
		policy:     config.Policy,
		frames:     config.Frames,
		workers:    config.Workers,
	}, nil
}

// Run simulates the whole reference string against a fresh,
// empty frame pool and returns the totals.
//
// Every worker applies its chunk in order, but workers share the pool
// and interleave at single-reference granularity. With more than one
// worker the outcome therefore depends on scheduling and generally
// differs from a sequential simulation of the same string.
func (s *Simulator) Run() Result {
	var (
		frames = newPool(s.frames)
		state  = &run{pool: frames, replacer: s.policy.newReplacer(frames, s.index)}
		chunks = Partition(len(s.references), s.workers)
		stats  = make([]WorkerStats, len(chunks))
		wg     sync.WaitGroup
	)
	s.logger.Debug("starting run",
		"policy", s.policy,
		"frames", s.frames,
		"workers", s.workers,
		"references", len(s.references),
	)
	for worker, chunk := range chunks {
		wg.Go(func() {
			stats[worker] = s.work(state, worker, chunk)
		})
	}
	wg.Wait()
	result := Result{
		Policy:  s.policy,
		Faults:  state.faults,
		Hits:    state.hits,
		Frames:  state.pool.snapshot(),
		Workers: stats,
	}
	if debugging {
		assert(result.References() == len(s.references),
			"faults and hits do not add up to the reference count")
	}
	s.logger.Debug("run complete",
		"faults", result.Faults,
		"hits", result.Hits,
	)
	return result
}

func (s *Simulator) work(state *run, worker int, chunk Chunk) WorkerStats {
	stats := WorkerStats{Worker: worker, Chunk: chunk}
	for position := chunk.Start; position < chunk.End; position++ {
		switch s.apply(state, worker, position) {
		case Hit:
			stats.Hits++
		case Fault:
			stats.Faults++
		}
	}
	s.logger.Debug("worker finished",
		"worker", worker,
		slog.Group("chunk",
			"start", chunk.Start,
			"end", chunk.End,
		),
		"faults", stats.Faults,
		"hits", stats.Hits,
	)
	return stats
}

// apply decides, mutates, counts and reports one reference
// as a single critical section.
func (s *Simulator) apply(state *run, worker, position int) Outcome {
	state.mu.Lock()
	defer state.mu.Unlock()
	var (
		reference = s.references[position]
		step      = Step{
			Index:     position,
			Worker:    worker,
			Reference: reference,
		}
		slot, hit = state.pool.lookup(reference)
	)
	switch {
	case hit:
		state.replacer.hit(slot)
		state.hits++
		step.Outcome = Hit
	case slot >= 0:
		state.pool.place(slot, reference)
		state.replacer.fill(slot)
		state.faults++
		step.Outcome = Fault
	default:
		slot = state.replacer.evict(position)
		step.Evicted = state.pool.place(slot, reference)
		state.replacer.fill(slot)
		state.faults++
		step.Outcome = Fault
	}
	if debugging {
		assert(state.pool.unique(),
			"a page is resident in more than one slot")
	}
	if s.observer != nil {
		step.Slot = slot
		step.Frames = state.pool.snapshot()
		step.Stamps = state.replacer.stamps()
		s.observer(step)
	}
	return step.Outcome
}
