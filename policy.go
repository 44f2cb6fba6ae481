package pagesim

import (
	"fmt"
	"strings"
)

// Policy selects the replacement algorithm of a [Simulator].
type Policy uint8

const (
	// FIFO evicts pages in the order they were loaded.
	// Hits do not change a page's position.
	FIFO Policy = iota + 1
	// LRU evicts the page with the oldest recency stamp.
	LRU
	// Optimal evicts the page whose next use lies farthest
	// ahead in the reference string (Belady's algorithm).
	Optimal
)

// replacer holds the auxiliary state of a policy
// and chooses victims once the pool is full.
// Calls are serialized by the run's lock.
type replacer interface {
	// hit is called when the page in slot was referenced again.
	hit(slot int)
	// fill is called after a page was placed in slot,
	// either into an empty slot or over a victim.
	fill(slot int)
	// evict returns the slot to overwrite for the
	// reference at position. The pool must be full.
	evict(position int) (slot int)
	// stamps returns per-slot recency stamps,
	// or nil if the policy does not keep them.
	stamps() []uint64
}

// ParsePolicy returns the [Policy] named by name.
// Names are matched case-insensitively.
func ParsePolicy(name string) (Policy, error) {
	for _, policy := range []Policy{FIFO, LRU, Optimal} {
		if strings.EqualFold(name, policy.String()) {
			return policy, nil
		}
	}
	return 0, unknownPolicyError(name)
}

func (p Policy) String() string {
	switch p {
	case FIFO:
		return "FIFO"
	case LRU:
		return "LRU"
	case Optimal:
		return "Optimal"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (p Policy) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, unknownPolicyError(p.String())
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *Policy) UnmarshalText(text []byte) error {
	policy, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = policy
	return nil
}

func (p Policy) valid() bool {
	return p >= FIFO && p <= Optimal
}

func (p Policy) newReplacer(pool *pool, index positions) replacer {
	switch p {
	case FIFO:
		return newFIFO(len(pool.slots))
	case LRU:
		return newLRU(len(pool.slots))
	case Optimal:
		return newOptimal(pool, index)
	default:
		panic("unreachable: policy validated by New")
	}
}
