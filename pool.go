package md2html

import "runtime"

// Worker sizing constants for batch conversion.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent conversions; each may spawn a renderer
	// process tree (npx, node, headless Chromium).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for renderer child processes.
	cpuDivisor = 2
)

// ResolvePoolSize determines the number of concurrent conversions.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
