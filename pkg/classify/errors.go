package classify

import "fmt"

// FeatureOutOfRangeError is raised when a registered feature returns a
// value outside [0,1]. Per spec.md §7 this is a programmer error and is
// always fatal; the driver surfaces it immediately with enough context to
// reproduce.
type FeatureOutOfRangeError struct {
	Feature string
	Level   string
	Value   float64
}

func (e *FeatureOutOfRangeError) Error() string {
	return fmt.Sprintf("feature %q at level %s returned out-of-range score %v", e.Feature, e.Level, e.Value)
}
