package resolve

import "log"

// Diagnostics receives the two informational channels the search driver
// produces: one summary per iteration of the combination-enumeration loop,
// and one message per edge validated along the way. Implementations must
// not retain the byte slices backing the strings beyond the call, though
// in practice the resolver only ever hands over freshly formatted values.
//
// Most callers don't need anything fancier than NewLogDiagnostics; Iteration
// and Edge exist as a seam so that, for example, a test can capture the
// messages structurally instead of scraping log output.
type Diagnostics interface {
	// Iteration is called once per pass of the search loop with a summary
	// line listing every tracked package, its currently selected
	// configuration, and a marker on positions at or beyond the conflict
	// index.
	Iteration(summary string)

	// Edge is called, at lower verbosity than Iteration, for each edge the
	// validation pass finds unsatisfied: a mismatched configuration or a
	// child with no known configurations. Satisfied edges produce no call.
	Edge(message string)
}

// noopDiagnostics discards everything. It's the default when the caller
// supplies no logger and no explicit Diagnostics.
type noopDiagnostics struct{}

func (noopDiagnostics) Iteration(string) {}
func (noopDiagnostics) Edge(string)      {}

// logDiagnostics adapts a *log.Logger to Diagnostics: iteration summaries
// always print if a logger is configured, edge-level detail only when
// trace is requested.
type logDiagnostics struct {
	l     *log.Logger
	trace bool
}

// NewLogDiagnostics returns a Diagnostics that writes iteration summaries
// to l, and additionally writes per-edge messages when trace is true.
func NewLogDiagnostics(l *log.Logger, trace bool) Diagnostics {
	return &logDiagnostics{l: l, trace: trace}
}

func (d *logDiagnostics) Iteration(summary string) {
	if d.l != nil {
		d.l.Print(summary)
	}
}

func (d *logDiagnostics) Edge(message string) {
	if d.l != nil && d.trace {
		d.l.Print(message)
	}
}

// firstMessageRecorder wraps a Diagnostics and remembers the first non-empty
// Edge message it forwards, so the search driver can surface it as the
// UnresolvableError text if the search exhausts without success. This must
// be retained across the whole search, not reset per iteration - unlike the
// validation pass's visited set.
type firstMessageRecorder struct {
	inner Diagnostics
	first string
}

func (r *firstMessageRecorder) Iteration(summary string) {
	r.inner.Iteration(summary)
}

func (r *firstMessageRecorder) Edge(message string) {
	if r.first == "" && message != "" {
		r.first = message
	}
	r.inner.Edge(message)
}
