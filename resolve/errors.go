package resolve

import "fmt"

// traceError is implemented by errors that can render a fuller, trace-level
// description than Error() normally gives. A caller with access to a
// Diagnostics sink can use it to surface more than the short message.
type traceError interface {
	traceString() string
}

// InvalidRootError reports that one of the root node's own edges references
// a package with an empty candidate list. (An empty package reached further
// down is an ordinary conflict for the search, not this error.) It is
// always fatal, regardless of
// the NonFatal option, because it indicates a malformed request rather
// than an ordinary unsatisfiable constraint set.
type InvalidRootError struct {
	Parent string
	Child  string
}

func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("resolve: root references package %q (via %q), which has no known configurations", e.Child, e.Parent)
}

// UnresolvableError reports that the search exhausted every combination of
// the discovered candidate table without finding a consistent selection.
// Message carries the first non-empty diagnostic observed during the
// search, so that repeated failed runs over unrelated later changes to
// candidate ordering produce a stable error string.
type UnresolvableError struct {
	Message string
}

func (e *UnresolvableError) Error() string {
	if e.Message == "" {
		return "resolve: no combination of candidate configurations satisfies every dependency edge"
	}
	return "resolve: " + e.Message
}

// traceString returns a fuller rendering of the failure for trace-level
// diagnostics, which here is the same text as Error - the resolver core
// keeps no richer structure than the single retained diagnostic string,
// unlike a host that might attach per-package trace trees of its own.
func (e *UnresolvableError) traceString() string {
	return e.Error()
}
