package schema

import "errors"

// Sentinel errors for the two failure classes of the analysis core.
// Wrap these with %w so callers can classify with errors.Is.
var (
	// ErrInvalidTrajectory marks a rejected trajectory pair: mismatched
	// lengths, fewer than two frames, or non-finite positions. The failure
	// is isolated to the affected pair; other pairs continue.
	ErrInvalidTrajectory = errors.New("invalid trajectory")

	// ErrInvalidConfig marks an invalid analysis configuration. Configuration
	// failures are fatal to the whole run and surface before any analysis.
	ErrInvalidConfig = errors.New("invalid configuration")
)
