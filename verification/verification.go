// Package verification provides an accumulating verification result: a
// boolean verdict paired with an ordered list of failure messages, built
// so a verifier can check every sub-condition of a proof and report all of
// them, rather than stopping at the first failed check.
//
// This mirrors how takakv-msc-poc's voteproof.Verify reports a single bool
// but, unlike it, never short-circuits: every zkproof/ verifier in this
// module accumulates into a Result instead of returning early, so a caller
// debugging a failed proof sees every violated check, not just the first.
package verification

import (
	"fmt"
	"strings"
)

// Result accumulates the outcome of a verification procedure across
// multiple checks. The zero value is a passing, empty Result.
type Result struct {
	failures []string
}

// NewResult returns a fresh, passing Result.
func NewResult() *Result {
	return &Result{}
}

// Fail appends a failure message and flips the verdict to false. It never
// panics or stops further checks from being added.
func (r *Result) Fail(message string) {
	r.failures = append(r.failures, message)
}

// Failf appends a formatted failure message.
func (r *Result) Failf(format string, args ...any) {
	r.Fail(fmt.Sprintf(format, args...))
}

// Merge appends another Result's failures into r, preserving order. It is
// the monoid operation combining sub-proof results into one overall
// verdict: any single false input propagates to a false combined result,
// and every message from every input survives the merge.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.failures = append(r.failures, other.failures...)
}

// IsValid reports whether no failures have been recorded.
func (r *Result) IsValid() bool {
	return len(r.failures) == 0
}

// Failures returns the ordered list of recorded failure messages.
func (r *Result) Failures() []string {
	cp := make([]string, len(r.failures))
	copy(cp, r.failures)
	return cp
}

// String renders a human-readable summary.
func (r *Result) String() string {
	if r.IsValid() {
		return "verification passed"
	}
	return "verification failed: " + strings.Join(r.failures, "; ")
}
