package semver

import (
	"sort"

	mmsemver "github.com/Masterminds/semver"
	"github.com/pkg/errors"

	"github.com/depconf/confsolve/resolve"
)

// Adapter implements resolve.Host[*semver.Version, semver.Constraint] over a
// parsed Manifest: Masterminds/semver does all version parsing and
// constraint checking, Masterminds/vcs enumerates tags for packages backed
// by a repository, and overrides feed SpecificConfigs.
type Adapter struct {
	byName    map[string]RawPackage
	overrides map[string][]string
	edges     map[string][]RawDependency
	repos     *repoIndex
	tags      *tagLister
}

// NewAdapter builds an Adapter from m. cacheDir is where repositories backing
// any package with a configured repo URL are checked out and updated; it may
// be shared across adapters.
func NewAdapter(m *Manifest, cacheDir string) *Adapter {
	byName := make(map[string]RawPackage, len(m.Packages))
	for _, p := range m.Packages {
		byName[p.Name] = p
	}

	overrides := make(map[string][]string)
	for _, o := range m.Overrides {
		overrides[o.Name] = append(overrides[o.Name], o.Version)
	}

	edges := make(map[string][]RawDependency)
	for _, d := range m.Dependencies {
		edges[d.From] = append(edges[d.From], d)
	}

	return &Adapter{
		byName:    byName,
		overrides: overrides,
		edges:     edges,
		repos:     newRepoIndex(m.Packages),
		tags:      newTagLister(cacheDir),
	}
}

// Root builds the resolve.Node for m's [root] table.
func Root(m *Manifest) (resolve.Node[*mmsemver.Version], error) {
	v, err := mmsemver.NewVersion(m.RootVersion)
	if err != nil {
		return resolve.Node[*mmsemver.Version]{}, errors.Wrapf(err, "invalid root version %q", m.RootVersion)
	}
	return resolve.Node[*mmsemver.Version]{Pack: m.RootName, Config: v}, nil
}

func (a *Adapter) AllConfigs(base string) ([]*mmsemver.Version, error) {
	pkg, known := a.byName[base]
	if !known {
		return nil, nil
	}

	var literals []string
	if repo, ok := a.repos.lookup(base); ok {
		tags, err := a.tags.tags(base, repo)
		if err != nil {
			return nil, err
		}
		literals = tags
	} else {
		literals = pkg.Versions
	}

	versions := parseVersions(literals)
	sort.Slice(versions, func(i, j int) bool {
		return versions[j].LessThan(versions[i])
	})
	return versions, nil
}

func (a *Adapter) SpecificConfigs(edge resolve.Edge[mmsemver.Constraint]) ([]*mmsemver.Version, error) {
	base := resolve.BasePackage(edge.Pack)
	return parseVersions(a.overrides[base]), nil
}

func (a *Adapter) Children(node resolve.Node[*mmsemver.Version]) ([]resolve.Edge[mmsemver.Constraint], error) {
	deps := a.edges[edgeKey(node.Pack, node.Config)]
	if len(deps) == 0 {
		return nil, nil
	}

	out := make([]resolve.Edge[mmsemver.Constraint], len(deps))
	for i, d := range deps {
		c, err := mmsemver.NewConstraint(d.Constraint)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid constraint %q for %s -> %s", d.Constraint, d.From, d.To)
		}
		out[i] = resolve.Edge[mmsemver.Constraint]{Pack: d.To, Configs: c}
	}
	return out, nil
}

func (a *Adapter) Matches(cs mmsemver.Constraint, v *mmsemver.Version) (bool, error) {
	return cs.Admits(v) == nil, nil
}

func edgeKey(pack string, v *mmsemver.Version) string {
	return pack + "@" + v.String()
}

// parseVersions parses each literal as a semver version, skipping (not
// erroring on) entries that aren't valid versions - tag lists from real
// repositories routinely include non-version tags.
func parseVersions(literals []string) []*mmsemver.Version {
	out := make([]*mmsemver.Version, 0, len(literals))
	for _, lit := range literals {
		v, err := mmsemver.NewVersion(lit)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
