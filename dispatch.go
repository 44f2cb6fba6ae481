package pagesim

// Chunk is the half-open range [Start, End) of
// reference string positions assigned to one worker.
type Chunk struct {
	Start, End int
}

// Len returns the number of positions in the chunk.
func (c Chunk) Len() int { return c.End - c.Start }

// Partition splits length positions into workers contiguous chunks.
// Each chunk holds length/workers positions and the first
// length%workers chunks hold one extra. Chunks are returned in order,
// cover [0, length) without gaps or overlap, and may be empty when
// there are more workers than positions.
// Partition returns nil if workers is less than 1 or length is negative.
func Partition(length, workers int) []Chunk {
	if workers < 1 || length < 0 {
		return nil
	}
	var (
		chunks    = make([]Chunk, workers)
		size      = length / workers
		remaining = length % workers
		start     = 0
	)
	for i := range chunks {
		end := start + size
		if i < remaining {
			end++
		}
		chunks[i] = Chunk{Start: start, End: end}
		start = end
	}
	return chunks
}
