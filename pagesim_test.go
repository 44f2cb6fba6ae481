package pagesim_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/stretchr/testify/require"

	"github.com/djdv/go-pagesim"
)

// beladySequence is the classic reference string that
// exhibits Belady's anomaly under FIFO.
var beladySequence = []pagesim.Page{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}

var policies = []pagesim.Policy{pagesim.FIFO, pagesim.LRU, pagesim.Optimal}

func TestSimulator(t *testing.T) {
	t.Run("invalid config", invalidConfig)
	t.Run("parse policy", parsePolicy)
	t.Run("empty references", emptyReferences)
	t.Run("fifo regression", fifoRegression)
	t.Run("known totals", knownTotals)
	t.Run("fifo trace", fifoTrace)
	t.Run("lru trace", lruTrace)
	t.Run("optimal evictions", optimalEvictions)
	t.Run("fifo eviction order", fifoEvictionOrder)
	t.Run("lru matches oracle", lruOracle)
	t.Run("optimal bound", optimalBound)
	t.Run("deterministic", deterministic)
	t.Run("references copied", referencesCopied)
}

func invalidConfig(t *testing.T) {
	for _, test := range []struct {
		name   string
		config pagesim.Config
		want   error
	}{
		{"negative frames", pagesim.Config{Policy: pagesim.FIFO, Frames: -1, Workers: 1}, pagesim.ErrInvalidFrames},
		{"zero frames", pagesim.Config{Policy: pagesim.FIFO, Frames: 0, Workers: 1}, pagesim.ErrInvalidFrames},
		{"zero workers", pagesim.Config{Policy: pagesim.LRU, Frames: 3, Workers: 0}, pagesim.ErrInvalidWorkers},
		{"unset policy", pagesim.Config{Frames: 3, Workers: 1}, pagesim.ErrUnknownPolicy},
		{"out of range policy", pagesim.Config{Policy: 42, Frames: 3, Workers: 1}, pagesim.ErrUnknownPolicy},
	} {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			sim, err := pagesim.New(test.config, beladySequence)
			require.Nil(t, sim)
			require.ErrorIs(t, err, test.want)
		})
	}
}

func parsePolicy(t *testing.T) {
	t.Parallel()
	for name, want := range map[string]pagesim.Policy{
		"FIFO":    pagesim.FIFO,
		"lru":     pagesim.LRU,
		"Optimal": pagesim.Optimal,
		"OPTIMAL": pagesim.Optimal,
	} {
		got, err := pagesim.ParsePolicy(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}
	_, err := pagesim.ParsePolicy("Clock")
	require.ErrorIs(t, err, pagesim.ErrUnknownPolicy)

	var policy pagesim.Policy
	require.NoError(t, policy.UnmarshalText([]byte("lru")))
	text, err := policy.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "LRU", string(text))
}

func emptyReferences(t *testing.T) {
	for _, policy := range policies {
		t.Run(policy.String(), func(t *testing.T) {
			t.Parallel()
			const workers = 3
			steps, result := record(t, pagesim.Config{
				Policy:  policy,
				Frames:  pagesim.MinimumFrames,
				Workers: workers,
			}, nil)
			require.Zero(t, result.Faults)
			require.Zero(t, result.Hits)
			require.Empty(t, steps)
			require.Len(t, result.Workers, workers)
			require.Equal(t, []pagesim.Frame{{}}, result.Frames)
		})
	}
}

func fifoRegression(t *testing.T) {
	t.Parallel()
	references := []pagesim.Page{1, 2, 3, 4, 1, 2, 5, 1, 2, 3}
	result := simulate(t, pagesim.FIFO, 3, references)
	checkTotals(t, result, 8, 2)
}

func knownTotals(t *testing.T) {
	for _, test := range []struct {
		policy       pagesim.Policy
		frames       int
		faults, hits int
	}{
		{pagesim.FIFO, 3, 9, 3},
		{pagesim.FIFO, 4, 10, 2}, // Belady's anomaly.
		{pagesim.LRU, 3, 10, 2},
		{pagesim.LRU, 4, 8, 4},
		{pagesim.Optimal, 3, 7, 5},
		{pagesim.Optimal, 4, 6, 6},
		{pagesim.Optimal, 5, 5, 7},
	} {
		name := fmt.Sprintf("%s/%d frames", test.policy, test.frames)
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			result := simulate(t, test.policy, test.frames, beladySequence)
			checkTotals(t, result, test.faults, test.hits)
		})
	}
}

func fifoTrace(t *testing.T) {
	t.Parallel()
	steps, _ := record(t, pagesim.Config{
		Policy:  pagesim.FIFO,
		Frames:  3,
		Workers: 1,
	}, []pagesim.Page{1, 2, 3, 4, 1, 2, 5, 1, 2, 3})
	want := []string{
		"Fault for 1 | 1 - -",
		"Fault for 2 | 1 2 -",
		"Fault for 3 | 1 2 3",
		"Fault for 4 | 4 2 3",
		"Fault for 1 | 4 1 3",
		"Fault for 2 | 4 1 2",
		"Fault for 5 | 5 1 2",
		"  Hit for 1 | 5 1 2",
		"  Hit for 2 | 5 1 2",
		"Fault for 3 | 5 3 2",
	}
	require.Equal(t, want, traceLines(steps))
	for i, step := range steps {
		require.Equal(t, i, step.Index)
		require.Zero(t, step.Worker)
		require.Nil(t, step.Stamps, "FIFO steps must not carry stamps")
	}
}

func lruTrace(t *testing.T) {
	t.Parallel()
	steps, result := record(t, pagesim.Config{
		Policy:  pagesim.LRU,
		Frames:  3,
		Workers: 1,
	}, []pagesim.Page{1, 2, 1, 3, 4})
	want := []string{
		"Fault for 1 | 1 (1) - (0) - (0)",
		"Fault for 2 | 1 (1) 2 (2) - (0)",
		"  Hit for 1 | 1 (3) 2 (2) - (0)",
		"Fault for 3 | 1 (3) 2 (2) 3 (4)",
		"Fault for 4 | 1 (3) 4 (5) 3 (4)",
	}
	require.Equal(t, want, traceLines(steps))
	last := steps[len(steps)-1]
	require.Equal(t, pagesim.Frame{Page: 2, Occupied: true}, last.Evicted)
	require.Equal(t, 1, last.Slot)
	require.Equal(t, last.Frames, result.Frames)
}

func optimalEvictions(t *testing.T) {
	t.Parallel()
	steps, _ := record(t, pagesim.Config{
		Policy:  pagesim.Optimal,
		Frames:  3,
		Workers: 1,
	}, beladySequence)
	var evicted []pagesim.Page
	for _, step := range steps {
		if step.Evicted.Occupied {
			evicted = append(evicted, step.Evicted.Page)
		}
	}
	// 3 is used last of {1,2,3}; then 4 is farthest of {1,2,4};
	// then 1 and 3 never recur and the first such slot goes.
	want := []pagesim.Page{3, 4, 1, 3}
	require.Equal(t, want, evicted)
}

func fifoEvictionOrder(t *testing.T) {
	rng := newReproducibleRNG()
	for frames := 1; frames <= 6; frames++ {
		references := makeRandomSequence(rng, frames*3, 512)
		t.Run(fmt.Sprintf("%d frames", frames), func(t *testing.T) {
			t.Parallel()
			var (
				steps, _ = record(t, pagesim.Config{
					Policy:  pagesim.FIFO,
					Frames:  frames,
					Workers: 1,
				}, references)
				loaded []pagesim.Page
			)
			for _, step := range steps {
				if step.Outcome == pagesim.Hit {
					continue
				}
				if step.Evicted.Occupied {
					require.NotEmpty(t, loaded)
					require.Equal(t, loaded[0], step.Evicted.Page,
						"step %d evicted out of load order", step.Index)
					loaded = loaded[1:]
				}
				loaded = append(loaded, step.Reference)
			}
		})
	}
}

func lruOracle(t *testing.T) {
	rng := newReproducibleRNG()
	for frames := 1; frames <= 6; frames++ {
		references := makeRandomSequence(rng, frames*2, 512)
		t.Run(fmt.Sprintf("%d frames", frames), func(t *testing.T) {
			t.Parallel()
			var (
				oracleEvicted []pagesim.Page
				oracle, err   = simplelru.NewLRU[pagesim.Page, struct{}](frames,
					func(page pagesim.Page, _ struct{}) {
						oracleEvicted = append(oracleEvicted, page)
					})
			)
			require.NoError(t, err)
			steps, _ := record(t, pagesim.Config{
				Policy:  pagesim.LRU,
				Frames:  frames,
				Workers: 1,
			}, references)
			var (
				evicted    []pagesim.Page
				mostRecent pagesim.Page
			)
			for i, step := range steps {
				_, resident := oracle.Get(step.Reference)
				require.Equal(t, resident, step.Outcome == pagesim.Hit,
					"step %d disagrees with oracle", step.Index)
				if !resident {
					oracle.Add(step.Reference, struct{}{})
				}
				if step.Evicted.Occupied {
					evicted = append(evicted, step.Evicted.Page)
					if i > 0 && frames > 1 {
						require.NotEqual(t, mostRecent, step.Evicted.Page,
							"step %d evicted the most recently used page", step.Index)
					}
				}
				mostRecent = step.Reference
				require.ElementsMatch(t, oracle.Keys(), residents(step.Frames))
			}
			require.Equal(t, oracleEvicted, evicted)
		})
	}
}

func optimalBound(t *testing.T) {
	rng := newReproducibleRNG()
	for frames := 1; frames <= 8; frames++ {
		for _, universe := range []int{frames + 1, frames * 2, frames * 4} {
			references := makeRandomSequence(rng, universe, 256)
			name := fmt.Sprintf("%d frames/%d pages", frames, universe)
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				var (
					optimal = simulate(t, pagesim.Optimal, frames, references)
					fifo    = simulate(t, pagesim.FIFO, frames, references)
					lru     = simulate(t, pagesim.LRU, frames, references)
				)
				require.LessOrEqual(t, optimal.Faults, fifo.Faults)
				require.LessOrEqual(t, optimal.Faults, lru.Faults)
			})
		}
	}
}

func deterministic(t *testing.T) {
	references := makeRandomSequence(newReproducibleRNG(), 12, 400)
	for _, policy := range policies {
		t.Run(policy.String(), func(t *testing.T) {
			t.Parallel()
			var (
				steps []pagesim.Step
				sim   = newSimulator(t, pagesim.Config{
					Policy:  policy,
					Frames:  4,
					Workers: 1,
					Observer: func(step pagesim.Step) {
						steps = append(steps, step)
					},
				}, references)
				first      = sim.Run()
				firstSteps = steps
			)
			steps = nil
			second := sim.Run()
			require.Equal(t, first, second)
			require.Equal(t, firstSteps, steps)
		})
	}
}

func referencesCopied(t *testing.T) {
	t.Parallel()
	var (
		references = []pagesim.Page{1, 1, 1}
		sim        = newSimulator(t, pagesim.Config{
			Policy:  pagesim.FIFO,
			Frames:  1,
			Workers: 1,
		}, references)
	)
	references[1] = 2
	references[2] = 3
	checkTotals(t, sim.Run(), 1, 2)
}

func TestPartition(t *testing.T) {
	t.Parallel()
	for _, test := range []struct {
		length, workers int
		want            []pagesim.Chunk
	}{
		{10, 1, []pagesim.Chunk{{0, 10}}},
		{10, 3, []pagesim.Chunk{{0, 4}, {4, 7}, {7, 10}}},
		{12, 4, []pagesim.Chunk{{0, 3}, {3, 6}, {6, 9}, {9, 12}}},
		{2, 4, []pagesim.Chunk{{0, 1}, {1, 2}, {2, 2}, {2, 2}}},
		{0, 2, []pagesim.Chunk{{0, 0}, {0, 0}}},
		{5, 0, nil},
		{-1, 2, nil},
	} {
		got := pagesim.Partition(test.length, test.workers)
		require.Equal(t, test.want, got,
			"Partition(%d, %d)", test.length, test.workers)
	}
	for length := range 40 {
		for workers := 1; workers <= 9; workers++ {
			checkPartition(t, length, workers)
		}
	}
}

func TestResult(t *testing.T) {
	t.Parallel()
	require.Zero(t, pagesim.Result{}.HitRatio())
	result := pagesim.Result{Faults: 3, Hits: 1}
	require.Equal(t, 4, result.References())
	require.InDelta(t, 0.25, result.HitRatio(), 1e-9)
}

func checkPartition(tb testing.TB, length, workers int) {
	tb.Helper()
	var (
		chunks = pagesim.Partition(length, workers)
		next   = 0
	)
	require.Len(tb, chunks, workers)
	for i, chunk := range chunks {
		require.Equal(tb, next, chunk.Start, "gap or overlap before chunk %d", i)
		want := length / workers
		if i < length%workers {
			want++
		}
		require.Equal(tb, want, chunk.Len())
		next = chunk.End
	}
	require.Equal(tb, length, next)
}

func newSimulator(tb testing.TB, config pagesim.Config, references []pagesim.Page) *pagesim.Simulator {
	tb.Helper()
	sim, err := pagesim.New(config, references)
	if err != nil {
		tb.Fatal(err)
	}
	return sim
}

func simulate(tb testing.TB, policy pagesim.Policy, frames int, references []pagesim.Page) pagesim.Result {
	tb.Helper()
	return newSimulator(tb, pagesim.Config{
		Policy:  policy,
		Frames:  frames,
		Workers: 1,
	}, references).Run()
}

// record runs the simulation and collects every step.
// The observer is serialized by the simulator,
// so appending needs no further locking.
func record(tb testing.TB, config pagesim.Config, references []pagesim.Page) ([]pagesim.Step, pagesim.Result) {
	tb.Helper()
	var steps []pagesim.Step
	config.Observer = func(step pagesim.Step) {
		steps = append(steps, step)
	}
	result := newSimulator(tb, config, references).Run()
	return steps, result
}

func checkTotals(tb testing.TB, result pagesim.Result, faults, hits int) {
	tb.Helper()
	if result.Faults == faults && result.Hits == hits {
		return
	}
	tb.Fatalf(
		"%s: unexpected totals"+
			"\n\tgot: %d faults, %d hits"+
			"\n\twant: %d faults, %d hits",
		result.Policy, result.Faults, result.Hits, faults, hits)
}

func traceLines(steps []pagesim.Step) []string {
	lines := make([]string, len(steps))
	for i, step := range steps {
		lines[i] = step.String()
	}
	return lines
}

func residents(frames []pagesim.Frame) []pagesim.Page {
	pages := make([]pagesim.Page, 0, len(frames))
	for _, frame := range frames {
		if frame.Occupied {
			pages = append(pages, frame.Page)
		}
	}
	return slices.Clip(pages)
}
