// Package resolve implements a dependency configuration resolver: given a
// root package at a chosen configuration and a host that can enumerate a
// package's children, candidate configurations, and the "matches" relation
// between a constraint and a configuration, it selects exactly one
// configuration per reachable package such that every parent-to-child edge
// is satisfied.
//
// The package knows nothing about any particular package ecosystem. It
// never parses a version string, never talks to a registry, and never
// touches a filesystem; all of that is the host's job (see the Host
// interface). What lives here is the search: candidate discovery, the
// validation walk that checks a selection for consistency, and the
// backtracking loop that advances the selection using the conflict index
// the validation walk reports.
package resolve
