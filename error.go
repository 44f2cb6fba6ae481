package pagesim

import "fmt"

type constError string

const (
	// ErrInvalidFrames may be returned from [New].
	ErrInvalidFrames = constError("invalid frame count")
	// ErrInvalidWorkers may be returned from [New].
	ErrInvalidWorkers = constError("invalid worker count")
	// ErrUnknownPolicy may be returned from [ParsePolicy] and [New].
	ErrUnknownPolicy = constError("unknown replacement policy")
)

func (errStr constError) Error() string { return string(errStr) }

func minFramesError(frames int) error {
	return fmt.Errorf(
		"%w: must be >=%d but %d was requested",
		ErrInvalidFrames, MinimumFrames, frames)
}

func minWorkersError(workers int) error {
	return fmt.Errorf(
		"%w: must be >=%d but %d was requested",
		ErrInvalidWorkers, MinimumWorkers, workers)
}

func unknownPolicyError(name string) error {
	return fmt.Errorf(
		"%w: %q (want one of %s, %s, %s)",
		ErrUnknownPolicy, name, FIFO, LRU, Optimal)
}
