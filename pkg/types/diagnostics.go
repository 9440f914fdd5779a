package types

import (
	"fmt"
	"sort"
)

// -----------------------------------------------------------------------------
// Diagnostic System
// -----------------------------------------------------------------------------
//
// Diagnostics are advisory records of allocation-layer events: out-of-memory
// reports, deferred-teardown notices, and caller logic errors. They never
// change control flow. Collection is cheap (append under a mutex) and the
// report can be queried after a statement batch or at context close.

// Severity classifies how serious a diagnostic event is.
type Severity uint8

const (
	SevInfo    Severity = iota // informational (deferral notice, forced clear)
	SevWarning                 // caller logic error, execution continues
	SevError                   // allocation failure surfaced to the caller
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", uint8(s))
	}
}

// DiagCategory classifies the kind of event recorded.
type DiagCategory uint8

const (
	DiagAlloc     DiagCategory = iota // raw allocation failures
	DiagLifecycle                     // registry teardown / flag events
)

// String returns the human-readable category name.
func (c DiagCategory) String() string {
	switch c {
	case DiagAlloc:
		return "alloc"
	case DiagLifecycle:
		return "lifecycle"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// Diagnostic is a single recorded event.
type Diagnostic struct {
	Severity Severity     `json:"severity"`
	Category DiagCategory `json:"category"`

	// Op names the operation that recorded the event (e.g. "alloc",
	// "register", "free_all").
	Op string `json:"op"`

	// Origin is the opaque source-position token threaded through by
	// generated statement code; zero when unknown.
	Origin int `json:"origin,omitempty"`

	// SQLState carries the five-character SQLSTATE for error diagnostics,
	// empty otherwise.
	SQLState string `json:"sqlstate,omitempty"`

	Message string `json:"message"`
}

// String formats the diagnostic for log output.
func (d Diagnostic) String() string {
	if d.Origin != 0 {
		return fmt.Sprintf("[%s] %s: %s (origin %d)", d.Severity, d.Op, d.Message, d.Origin)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Op, d.Message)
}

// DiagnosticReport collects all diagnostics recorded by a context.
type DiagnosticReport struct {
	Diagnostics []Diagnostic `json:"diagnostics"`

	Summary DiagSummary `json:"summary"`

	// BySeverity is populated by Finalize for efficient querying.
	BySeverity map[Severity][]Diagnostic `json:"by_severity,omitempty"`
}

// DiagSummary provides quick statistics.
type DiagSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// NewDiagnosticReport creates an empty report.
func NewDiagnosticReport() *DiagnosticReport {
	return &DiagnosticReport{
		BySeverity: make(map[Severity][]Diagnostic),
	}
}

// Add appends a diagnostic to the report.
func (r *DiagnosticReport) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Finalize computes the summary and groupings. Call after collection is done.
func (r *DiagnosticReport) Finalize() {
	r.Summary = DiagSummary{}
	r.BySeverity = make(map[Severity][]Diagnostic)

	for _, d := range r.Diagnostics {
		switch d.Severity {
		case SevError:
			r.Summary.Errors++
		case SevWarning:
			r.Summary.Warnings++
		case SevInfo:
			r.Summary.Info++
		}
		r.BySeverity[d.Severity] = append(r.BySeverity[d.Severity], d)
	}

	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		return r.Diagnostics[i].Severity > r.Diagnostics[j].Severity
	})
}

// Count returns the number of diagnostics at the given severity.
func (r *DiagnosticReport) Count(s Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == s {
			n++
		}
	}
	return n
}
