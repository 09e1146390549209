package resolve

import (
	"fmt"
	"log"
	"strings"
)

// options holds Resolve's tunables. Only Resolve itself ever sees this
// struct; callers configure it through functional Options instead of
// setting fields directly.
type options struct {
	throwOnFailure bool
	diag           Diagnostics
}

func defaultOptions() options {
	return options{throwOnFailure: true, diag: noopDiagnostics{}}
}

// Option configures a Resolve call.
type Option func(*options)

// NonFatal makes Resolve return an empty mapping instead of an error when
// the search space is exhausted without finding a consistent selection.
// It has no effect on InvalidRootError, which is always fatal.
func NonFatal() Option {
	return func(o *options) { o.throwOnFailure = false }
}

// WithDiagnostics routes the search driver's iteration summaries and
// per-edge messages to d instead of discarding them.
func WithDiagnostics(d Diagnostics) Option {
	return func(o *options) { o.diag = d }
}

// WithLogger is a convenience over WithDiagnostics for the common case of
// wanting plain log output. Iteration summaries are always logged; per-edge
// detail only when trace is true.
func WithLogger(l *log.Logger, trace bool) Option {
	return func(o *options) { o.diag = NewLogDiagnostics(l, trace) }
}

// Resolve selects one configuration per package transitively reachable
// from root such that every parent-to-child edge is satisfied.
//
// On success, the returned map holds one entry per base package with a
// non-empty candidate list that was reachable from root; subpackages do
// not appear separately. Root's own package is a key only if some
// dependency refers back to it, since only then does discovery give it a
// candidate list. On failure: if the search space is exhausted and
// NonFatal was not given, Resolve returns an *UnresolvableError carrying
// the first diagnostic observed during the search. If one of root's own
// edges references a package with an empty candidate list, Resolve always
// fails with an *InvalidRootError, regardless of NonFatal.
func Resolve[C comparable, S any](root Node[C], host Host[C, S], opts ...Option) (map[string]C, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	rec := &firstMessageRecorder{inner: o.diag}

	table, err := discover[C, S](root, host)
	if err != nil {
		return nil, err
	}

	selection := make([]int, table.len())

	for {
		c, err := validate[C, S](root, table, selection, host, rec)
		if err != nil {
			return nil, err
		}

		rec.Iteration(summarize(table, selection, c.index))

		if c.index == consistent {
			return buildResult(table, selection), nil
		}

		if advance(selection, table, c.index) {
			// The vector wrapped back to all-zero: every combination in
			// the discovered table has been tried.
			if o.throwOnFailure {
				return nil, &UnresolvableError{Message: rec.first}
			}
			return map[string]C{}, nil
		}
	}
}

// advance performs the conflict-driven increment: a little-endian counter
// restricted to positions at or below idx, with positions above idx reset
// to zero since they're immaterial to the conflict just found and must be
// reconsidered from scratch. It reports whether the vector wrapped all the
// way back to zero, meaning the combination space is exhausted.
//
// A position with an empty candidate list can never hold a real digit (there
// is nothing to select), so it is always reset to zero and the carry passes
// straight through it, regardless of where it sits relative to idx.
func advance[C comparable](selection []int, table *candidateTable[C], idx int) (wrapped bool) {
	for pi := len(selection) - 1; pi >= 0; pi-- {
		n := len(table.at(pi))
		if n == 0 || pi > idx {
			selection[pi] = 0
			continue
		}

		selection[pi]++
		if selection[pi] == n {
			selection[pi] = 0
			continue
		}
		return false
	}
	return true
}

func buildResult[C comparable](table *candidateTable[C], selection []int) map[string]C {
	out := make(map[string]C, table.len())
	for i, base := range table.order {
		list := table.at(i)
		if len(list) == 0 {
			continue
		}
		out[base] = list[selection[i]]
	}
	return out
}

// summarize renders the per-iteration diagnostic line: every tracked
// package, its currently selected configuration, and a marker on
// positions at or beyond the conflict index.
func summarize[C comparable](table *candidateTable[C], selection []int, conflictIdx int) string {
	var b strings.Builder
	b.WriteString("iteration:")
	for i, base := range table.order {
		marker := ' '
		if conflictIdx >= 0 && i >= conflictIdx {
			marker = '*'
		}
		list := table.at(i)
		if len(list) == 0 {
			fmt.Fprintf(&b, " %c%s=<none>", marker, base)
			continue
		}
		fmt.Fprintf(&b, " %c%s=%v", marker, base, list[selection[i]])
	}
	return b.String()
}
