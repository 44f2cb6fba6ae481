// Package pagesim simulates page replacement over a reference string
// using a fixed-size frame pool shared by concurrent workers.
//
// The following is a summary (intended for maintainers)
// of the model and the behaviour each policy must preserve.
//
// Glossary:
//
//   - Frame / slot
//
//     One unit of the fixed-size pool; holds at most one resident page.
//     Slots are filled lowest index first and never emptied during a run.
//
//   - Fault
//
//     A reference to a page that is not resident.
//     The page is placed in the first empty slot, or over a victim once the pool is full.
//
//   - Hit
//
//     A reference to a resident page.
//
//   - Recency stamp
//
//     A value from a logical clock recorded per slot by [LRU].
//     The clock advances on every hit and fill, so stamps are strictly increasing.
//
//   - Look-ahead
//
//     [Optimal] scans the rest of the reference string for each resident page's next use.
//
// Policies:
//
//   - [FIFO]
//
//     A hand rotates over the slots and only advances when a full pool evicts.
//     Hits never change a page's position, so pages leave in the order they arrived.
//
//   - [LRU]
//
//     Evicts the slot with the smallest stamp. Equal stamps resolve to the lowest slot.
//
//   - [Optimal]
//
//     Evicts the first resident page that never recurs; otherwise the page
//     whose next use is farthest away. Earlier slots win ties.
//
// Dispatch:
//
// The reference string is split by [Partition] into contiguous chunks, one per worker.
// Each worker applies its chunk in order, and every reference is applied
// as one critical section: look up, mutate the pool and policy state,
// count, and report the [Step] to the observer.
//
// Workers interleave at the granularity of single references, and every policy
// assumes a single, globally ordered stream. With more than one worker, counts and
// traces therefore vary from run to run and are not those of a sequential simulation.
// This is intentional; use a single worker for deterministic results.
// What does hold for any worker count:
//
//   - Faults + Hits == number of references.
//
//   - No page is resident in two slots at once.
//
//   - Each chunk is applied in index order.
package pagesim
