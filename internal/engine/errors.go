package engine

import (
	"fmt"
	"time"
)

// SourceKind identifies the pricing path of a water purchase.
type SourceKind string

const (
	KindVendor   SourceKind = "vendor"
	KindInternal SourceKind = "internal"
	KindPipeline SourceKind = "pipeline"
)

// RateNotConfiguredError means no rate record was effective on the target
// date. Callers must surface it; an entry is never saved with a guessed or
// zero cost.
type RateNotConfiguredError struct {
	Kind SourceKind
	Date time.Time
}

func (e *RateNotConfiguredError) Error() string {
	return fmt.Sprintf("no %s rate configured for %s", e.Kind, e.Date.Format("2006-01-02"))
}

// InvalidReadingError means a meter reading decreased. The row is rejected
// rather than clamped so data-entry errors surface.
type InvalidReadingError struct {
	Current  int
	Previous int
}

func (e *InvalidReadingError) Error() string {
	return fmt.Sprintf("current reading %d is below previous reading %d", e.Current, e.Previous)
}
