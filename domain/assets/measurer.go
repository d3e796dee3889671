package assets

import "context"

// Measurer defines the interface for collecting asset sizes from a build output.
// This is a port that can be implemented by different infrastructure adapters
type Measurer interface {
	// Measure returns the size of every asset matching the configured patterns
	Measure(ctx context.Context, dir string) (SizeMap, error)
}
