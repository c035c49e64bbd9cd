package stats

import (
	"errors"
	"fmt"

	"scurve-mcp/internal/schedule"
)

// Error classes. Every error returned by this package wraps exactly one of
// them, so callers can branch with errors.Is.
var (
	// ErrConfiguration marks a request the engine cannot honor as configured.
	ErrConfiguration = errors.New("configuration error")
	// ErrDomain marks input data outside the engine's mathematical domain.
	// It is the same sentinel the schedule package uses for invalid tasks.
	ErrDomain = schedule.ErrDomain
	// ErrInternal marks a broken internal invariant.
	ErrInternal = errors.New("internal consistency error")
)

var (
	ErrUnsupportedGranularity = fmt.Errorf("%w: unsupported granularity", ErrConfiguration)
	ErrInvalidShape           = fmt.Errorf("%w: invalid curve shape", ErrConfiguration)
	ErrInvalidTarget          = fmt.Errorf("%w: invalid curve target", ErrConfiguration)

	ErrNoTasks             = fmt.Errorf("%w: no tasks to analyze", ErrDomain)
	ErrInsufficientBuckets = fmt.Errorf("%w: at least two buckets are required", ErrDomain)
	ErrZeroTotalCost       = fmt.Errorf("%w: total cost is zero", ErrDomain)

	ErrOutsideDomain = fmt.Errorf("%w: date outside the business-day domain", ErrInternal)
)
