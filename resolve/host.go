package resolve

// Host is the capability set the resolver needs from its caller: a way to
// enumerate a base package's known configurations, a way to inject
// configurations that take priority over the general list, a way to
// enumerate a node's outgoing edges, and a way to test whether a
// configuration satisfies a constraint.
//
// Host is the only contact point between the resolver and a concrete
// package ecosystem. Everything ecosystem-specific - version parsing,
// registry access, archive handling - belongs on the other side of this
// interface.
//
// C (configuration) and S (configuration set) are opaque to the resolver.
// C must be comparable so that Node[C] values can be tracked in a visited
// set; S is unconstrained since the resolver never compares configuration
// sets directly; it only ever asks the host to decide Matches.
type Host[C comparable, S any] interface {
	// AllConfigs returns the known configurations of a base package, in
	// host-defined priority order (typically best-first).
	AllConfigs(base string) ([]C, error)

	// SpecificConfigs returns configurations that should be prepended to
	// edge.Pack's base package's candidate list - e.g. path-based
	// overrides. May return an empty slice.
	SpecificConfigs(edge Edge[S]) ([]C, error)

	// Children returns node's outgoing edges. May return an empty slice.
	// Edge order affects diagnostic output but not correctness.
	Children(node Node[C]) ([]Edge[S], error)

	// Matches reports whether config satisfies the constraint set.
	Matches(configs S, config C) (bool, error)
}
