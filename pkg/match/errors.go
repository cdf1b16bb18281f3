package match

import (
	"errors"
	"fmt"

	"github.com/relabel/classmatch/pkg/model"
)

// ImageInconsistentError wraps the model.InconsistencyError (which names
// the image, the violated invariant and the offending entities) that
// Driver.Run returns as a fatal error when an image fails validation.
type ImageInconsistentError struct {
	Cause error
}

func (e *ImageInconsistentError) Error() string {
	return fmt.Sprintf("image inconsistent, aborting run: %v", e.Cause)
}

func (e *ImageInconsistentError) Unwrap() error { return e.Cause }

// FeatureErrorContext wraps a classify.FeatureOutOfRangeError with the
// level and the anchor entity (AID) being ranked when it occurred. The
// driver does not set BID, since Rank does not report which candidate
// produced the error.
type FeatureErrorContext struct {
	Cause error
	Level model.Level
	AID   string
	BID   string
}

func (e *FeatureErrorContext) Error() string {
	return fmt.Sprintf("scoring %s vs %s at level %s: %v", e.AID, e.BID, e.Level, e.Cause)
}

func (e *FeatureErrorContext) Unwrap() error { return e.Cause }

// Cancelled is returned by Driver.Run when cooperative cancellation was
// observed between passes or levels; it is not an error in the ordinary
// sense, but a distinguished terminal state (spec.md §7).
var Cancelled = errors.New("match run cancelled")
