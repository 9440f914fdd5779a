package diag

import (
	"log/slog"
	"sync"

	"github.com/embeddedsql/memkit/pkg/types"
)

// Collector accumulates diagnostics recorded during allocation and teardown
// operations. A nil *Collector is valid and records nothing, so callers on
// the hot path never branch on configuration.
type Collector struct {
	report *types.DiagnosticReport
	logger *slog.Logger // optional; forwarded a line per diagnostic
	mu     sync.Mutex
}

// NewCollector creates a collector. logger may be nil to collect silently.
func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{
		report: types.NewDiagnosticReport(),
		logger: logger,
	}
}

// Record adds a diagnostic to the collection and forwards it to the logger
// when one is configured.
func (c *Collector) Record(d types.Diagnostic) {
	if c == nil {
		return // hot path: no-op when collector is nil
	}

	c.mu.Lock()
	c.report.Add(d)
	logger := c.logger
	c.mu.Unlock()

	if logger == nil {
		return
	}
	attrs := []any{
		slog.String("op", d.Op),
		slog.String("category", d.Category.String()),
	}
	if d.Origin != 0 {
		attrs = append(attrs, slog.Int("origin", d.Origin))
	}
	if d.SQLState != "" {
		attrs = append(attrs, slog.String("sqlstate", d.SQLState))
	}
	switch d.Severity {
	case types.SevError:
		logger.Error(d.Message, attrs...)
	case types.SevWarning:
		logger.Warn(d.Message, attrs...)
	default:
		logger.Info(d.Message, attrs...)
	}
}

// Report returns the diagnostic report, finalizing it first.
func (c *Collector) Report() *types.DiagnosticReport {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.report.Finalize()
	return c.report
}

// Reset discards all collected diagnostics.
func (c *Collector) Reset() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.report = types.NewDiagnosticReport()
}

// Helper constructors for the events this runtime records.

// OutOfMemory builds the diagnostic recorded when a backend cannot satisfy a
// request.
func OutOfMemory(op string, origin int) types.Diagnostic {
	return types.Diagnostic{
		Severity: types.SevError,
		Category: types.DiagAlloc,
		Op:       op,
		Origin:   origin,
		SQLState: types.SQLStateOutOfMemory,
		Message:  "out of memory",
	}
}

// Lifecycle builds an advisory diagnostic for registry teardown and flag
// events.
func Lifecycle(sev types.Severity, op, msg string) types.Diagnostic {
	return types.Diagnostic{
		Severity: sev,
		Category: types.DiagLifecycle,
		Op:       op,
		Message:  msg,
	}
}
