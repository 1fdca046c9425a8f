// Package check is the validation framework run against every cleaned
// dataset. Checks are plain functions registered by name; the runner
// executes a standard suite plus any per-cleaner custom checks, isolates
// crashes, and aggregates outcomes into a Report.
package check

import (
	"github.com/wdm0006/custodian/pkg/frame"
)

// Severity classifies a failed check.
type Severity string

const (
	// SeverityError fails the run.
	SeverityError Severity = "error"
	// SeverityWarning is recorded but never blocks persistence.
	SeverityWarning Severity = "warning"
)

// Outcome is the result of one check invocation.
type Outcome struct {
	Name     string
	Passed   bool
	Message  string
	Severity Severity
	Details  map[string]any
}

// Func is a check implementation. Params come from the standard suite or a
// per-cleaner spec document and may be nil. Checks are read-only contracts:
// a Func must not mutate the frame it receives.
type Func func(f *frame.Frame, params map[string]any) Outcome

// Report aggregates the outcomes of one run.
type Report struct {
	Passed      bool
	Total       int
	PassedCount int
	FailedCount int
	Standard    map[string]Outcome
	Custom      map[string]Outcome
}

// Outcomes returns standard then custom outcomes as a single slice, sorted
// by name within each category.
func (r Report) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(r.Standard)+len(r.Custom))
	for _, name := range sortedKeys(r.Standard) {
		out = append(out, r.Standard[name])
	}
	for _, name := range sortedKeys(r.Custom) {
		out = append(out, r.Custom[name])
	}
	return out
}

func (r *Report) record(m map[string]Outcome, o Outcome) {
	m[o.Name] = o
	r.Total++
	if o.Passed {
		r.PassedCount++
		return
	}
	r.FailedCount++
	if o.Severity == SeverityError {
		r.Passed = false
	}
}
