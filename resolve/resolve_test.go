package resolve

import (
	"reflect"
	"testing"
)

// depdep is one outgoing edge in a bestiary fixture: "this package depends
// on pack, and will accept any configuration in allow."
type depdep struct {
	pack  string
	allow []int
}

// bestiaryHost is a tiny in-memory Host[int, []int] built directly from Go
// literals rather than a parsed mini-language: integers stand in for
// configurations, and a configuration set is just the slice of integers it
// admits. It exists purely to drive the fixtures below; it does not
// pretend to model a real ecosystem (see adapter/semver for that).
type bestiaryHost struct {
	all      map[string][]int
	specific map[string][]int
	deps     map[string]map[int][]depdep
}

func (h *bestiaryHost) AllConfigs(base string) ([]int, error) {
	return append([]int(nil), h.all[base]...), nil
}

func (h *bestiaryHost) SpecificConfigs(edge Edge[[]int]) ([]int, error) {
	return append([]int(nil), h.specific[edge.Pack]...), nil
}

func (h *bestiaryHost) Children(node Node[int]) ([]Edge[[]int], error) {
	dd := h.deps[node.Pack][node.Config]
	edges := make([]Edge[[]int], len(dd))
	for i, d := range dd {
		edges[i] = Edge[[]int]{Pack: d.pack, Configs: d.allow}
	}
	return edges, nil
}

func (h *bestiaryHost) Matches(set []int, v int) (bool, error) {
	for _, s := range set {
		if s == v {
			return true, nil
		}
	}
	return false, nil
}

func checkResolve(t *testing.T, name string, root Node[int], host *bestiaryHost, want map[string]int, opts ...Option) {
	t.Helper()
	got, err := Resolve[int, []int](root, host, opts...)
	if err != nil {
		t.Fatalf("%s: Resolve returned error: %v", name, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}

// Scenario 1: backtracking across a shared dependency.
func TestResolveBacktracksAcrossSharedDependency(t *testing.T) {
	host := &bestiaryHost{
		all: map[string][]int{
			"b": {2, 1},
			"c": {3, 2, 1},
			"d": {2, 1},
			"e": {2, 1},
		},
		deps: map[string]map[int][]depdep{
			"a": {0: {
				{pack: "b", allow: []int{2, 1}},
				{pack: "d", allow: []int{1}},
				{pack: "e", allow: []int{2, 1}},
			}},
			"b": {
				1: {{pack: "c", allow: []int{2, 1}}, {pack: "d", allow: []int{1}}},
				2: {{pack: "c", allow: []int{3, 2}}, {pack: "d", allow: []int{2, 1}}},
			},
		},
	}

	checkResolve(t, "shared dependency", Node[int]{Pack: "a", Config: 0}, host,
		map[string]int{"b": 2, "c": 3, "d": 1, "e": 2})
}

// Scenario 2: a cycle, including a package depending on itself.
func TestResolveHandlesCycles(t *testing.T) {
	host := &bestiaryHost{
		all: map[string][]int{"b": {1}},
		deps: map[string]map[int][]depdep{
			"a": {0: {{pack: "b", allow: []int{1}}}},
			"b": {1: {{pack: "b", allow: []int{1}}}},
		},
	}

	checkResolve(t, "self cycle", Node[int]{Pack: "a", Config: 0}, host,
		map[string]int{"b": 1})
}

// Scenario 3: an unsatisfiable root edge, both modes.
func TestResolveUnsatisfiableRootEdge(t *testing.T) {
	host := &bestiaryHost{
		all: map[string][]int{"b": {2, 1}},
		deps: map[string]map[int][]depdep{
			"a": {0: {{pack: "b", allow: []int{3}}}},
		},
	}
	root := Node[int]{Pack: "a", Config: 0}

	_, err := Resolve[int, []int](root, host)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if _, ok := err.(*UnresolvableError); !ok {
		t.Errorf("expected *UnresolvableError, got %T: %v", err, err)
	}

	got, err := Resolve[int, []int](root, host, NonFatal())
	if err != nil {
		t.Fatalf("NonFatal: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("NonFatal: expected an empty mapping, got %v", got)
	}
}

// Scenario 4: the root references a package with no known configurations,
// which is fatal regardless of NonFatal.
func TestResolveInvalidRootReference(t *testing.T) {
	host := &bestiaryHost{
		all: map[string][]int{"z": {}},
		deps: map[string]map[int][]depdep{
			"a": {0: {{pack: "z", allow: []int{1}}}},
		},
	}
	root := Node[int]{Pack: "a", Config: 0}

	for _, opts := range [][]Option{nil, {NonFatal()}} {
		_, err := Resolve[int, []int](root, host, opts...)
		if err == nil {
			t.Fatal("expected an error, got nil")
		}
		if _, ok := err.(*InvalidRootError); !ok {
			t.Errorf("expected *InvalidRootError, got %T: %v", err, err)
		}
	}
}

// Scenario 5: subpackages share their base package's candidate list and
// don't appear as separate keys in the result.
func TestResolveSubpackageSharing(t *testing.T) {
	host := &bestiaryHost{
		all: map[string][]int{"x": {1, 2}},
		deps: map[string]map[int][]depdep{
			"a": {0: {{pack: "x:sub", allow: []int{1}}}},
		},
	}

	checkResolve(t, "subpackage sharing", Node[int]{Pack: "a", Config: 0}, host,
		map[string]int{"x": 1})
}

// Scenario 6: configurations injected via SpecificConfigs take priority
// over the general candidate list.
func TestResolveSpecificConfigPriority(t *testing.T) {
	host := &bestiaryHost{
		all:      map[string][]int{"p": {1, 2}},
		specific: map[string][]int{"p": {99}},
		deps: map[string]map[int][]depdep{
			"a": {0: {{pack: "p", allow: []int{99, 1, 2}}}},
		},
	}

	checkResolve(t, "specific config priority", Node[int]{Pack: "a", Config: 0}, host,
		map[string]int{"p": 99})
}

// Discovering twice from the same root, against the same host, must
// produce identical table contents - the idempotence-of-discovery property.
func TestDiscoveryIsIdempotent(t *testing.T) {
	host := &bestiaryHost{
		all: map[string][]int{"b": {2, 1}, "c": {1}},
		deps: map[string]map[int][]depdep{
			"a": {0: {{pack: "b", allow: []int{2, 1}}}},
			"b": {1: {{pack: "c", allow: []int{1}}}, 2: {{pack: "c", allow: []int{1}}}},
		},
	}
	root := Node[int]{Pack: "a", Config: 0}

	t1, err := discover[int, []int](root, host)
	if err != nil {
		t.Fatal(err)
	}
	t2, err := discover[int, []int](root, host)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(t1.order, t2.order) || !reflect.DeepEqual(t1.lists, t2.lists) {
		t.Errorf("discovery not idempotent: %v/%v vs %v/%v", t1.order, t1.lists, t2.order, t2.lists)
	}
}

// TestAdvanceCarriesThroughEmptyCandidateList covers a table where a
// conflict index sits beyond a position with an empty candidate list (X's
// child Z, which has no known configurations). Before the carry-through fix,
// advance would increment that position's single phantom digit once and
// then report "not wrapped" forever, so validate kept reproducing the same
// conflict between Y and W and Resolve never terminated. Discovery order
// here is [X, Z, Y, W], putting the empty slot strictly between the
// unsatisfiable Y/W conflict (index 3) and the otherwise-untouched X
// (index 0) that the search must eventually reach and exhaust.
func TestAdvanceCarriesThroughEmptyCandidateList(t *testing.T) {
	host := &bestiaryHost{
		all: map[string][]int{
			"X": {10},
			"Y": {1, 2},
			"W": {1, 2},
		},
		deps: map[string]map[int][]depdep{
			"a": {0: {
				{pack: "X", allow: []int{10}},
				{pack: "Y", allow: []int{1, 2}},
			}},
			"X": {10: {{pack: "Z", allow: []int{1}}}},
			"Y": {
				1: {{pack: "W", allow: []int{99}}},
				2: {{pack: "W", allow: []int{99}}},
			},
		},
	}
	root := Node[int]{Pack: "a", Config: 0}

	_, err := Resolve[int, []int](root, host)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if _, ok := err.(*UnresolvableError); !ok {
		t.Errorf("expected *UnresolvableError, got %T: %v", err, err)
	}
}
