package semver

import (
	"io"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Manifest is the parsed form of a TOML file describing a root package, the
// packages reachable from it, and the edges between their configurations.
//
//	[root]
//	  name = "example"
//	  version = "0.0.0"
//
//	[[package]]
//	  name = "github.com/foo/bar"
//	  repo = "https://github.com/foo/bar"
//
//	[[package]]
//	  name = "github.com/baz/qux"
//	  versions = ["1.0.0", "1.1.0", "2.0.0"]
//
//	[[override]]
//	  name = "github.com/baz/qux"
//	  version = "1.1.0"
//
//	[[dependency]]
//	  from = "example@0.0.0"
//	  to = "github.com/foo/bar"
//	  constraint = ">=1.0.0, <2.0.0"
type Manifest struct {
	RootName    string
	RootVersion string
	Packages    []RawPackage
	Overrides   []RawOverride
	Dependencies []RawDependency
}

// RawPackage declares one package's source of configurations: either a
// repository to enumerate tags from, or a fixed list of version literals.
type RawPackage struct {
	Name     string
	Repo     string
	Versions []string
}

// RawOverride gives a package a configuration that, via
// Host.SpecificConfigs, is tried before the ones AllConfigs offers; those
// remain candidates after it.
type RawOverride struct {
	Name    string
	Version string
}

// RawDependency is one edge: the package+configuration in From depends on
// package To, admitting only configurations that satisfy Constraint.
type RawDependency struct {
	From       string
	To         string
	Constraint string
}

// tomlMapper accumulates the first error encountered while walking a
// *toml.TomlTree, so callers can chain reads without checking err after
// every one.
type tomlMapper struct {
	Tree  *toml.TomlTree
	Error error
}

// LoadManifest reads and validates a Manifest from r.
func LoadManifest(r io.Reader) (*Manifest, error) {
	tree, err := toml.LoadReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse manifest")
	}

	mapper := &tomlMapper{Tree: tree}

	m := &Manifest{
		RootName:     readKeyAsString(mapper, "root.name"),
		RootVersion:  readKeyAsString(mapper, "root.version"),
		Packages:     readPackages(mapper),
		Overrides:    readOverrides(mapper),
		Dependencies: readDependencies(mapper),
	}

	if mapper.Error != nil {
		return nil, mapper.Error
	}
	if m.RootName == "" {
		return nil, errors.New("manifest is missing [root] name")
	}
	return m, nil
}

func readPackages(mapper *tomlMapper) []RawPackage {
	tables := readTableArray(mapper, "package")
	pkgs := make([]RawPackage, len(tables))
	for i, sub := range tables {
		pkgs[i] = RawPackage{
			Name:     readKeyAsString(sub, "name"),
			Repo:     readKeyAsString(sub, "repo"),
			Versions: readKeyAsStringList(sub, "versions"),
		}
	}
	return pkgs
}

func readOverrides(mapper *tomlMapper) []RawOverride {
	tables := readTableArray(mapper, "override")
	ovr := make([]RawOverride, len(tables))
	for i, sub := range tables {
		ovr[i] = RawOverride{
			Name:    readKeyAsString(sub, "name"),
			Version: readKeyAsString(sub, "version"),
		}
	}
	return ovr
}

func readDependencies(mapper *tomlMapper) []RawDependency {
	tables := readTableArray(mapper, "dependency")
	deps := make([]RawDependency, len(tables))
	for i, sub := range tables {
		deps[i] = RawDependency{
			From:       readKeyAsString(sub, "from"),
			To:         readKeyAsString(sub, "to"),
			Constraint: readKeyAsString(sub, "constraint"),
		}
	}
	return deps
}

// readTableArray queries for "[[table]]" and returns one sub-mapper per
// entry. A missing table is not an error - it just yields no entries.
func readTableArray(mapper *tomlMapper, table string) []*tomlMapper {
	if mapper.Error != nil {
		return nil
	}

	query, err := mapper.Tree.Query("$." + table)
	if err != nil {
		mapper.Error = errors.Wrapf(err, "unable to query for [[%s]]", table)
		return nil
	}

	matches := query.Values()
	if len(matches) == 0 {
		return nil
	}

	trees, ok := matches[0].([]*toml.TomlTree)
	if !ok {
		mapper.Error = errors.Errorf("invalid query result for [[%s]], expected an array of tables, got %T", table, matches[0])
		return nil
	}

	subs := make([]*tomlMapper, len(trees))
	for i, t := range trees {
		subs[i] = &tomlMapper{Tree: t}
	}
	return subs
}

func readKeyAsString(mapper *tomlMapper, key string) string {
	if mapper.Error != nil {
		return ""
	}

	raw := mapper.Tree.GetDefault(key, "")
	value, ok := raw.(string)
	if !ok {
		mapper.Error = errors.Errorf("invalid type for %s, expected a string, got %T", key, raw)
		return ""
	}
	return value
}

func readKeyAsStringList(mapper *tomlMapper, key string) []string {
	if mapper.Error != nil {
		return nil
	}

	query, err := mapper.Tree.Query("$." + key)
	if err != nil {
		mapper.Error = errors.Wrapf(err, "unable to query for %s", key)
		return nil
	}

	matches := query.Values()
	if len(matches) == 0 {
		return nil
	}

	list, ok := matches[0].([]interface{})
	if !ok {
		mapper.Error = errors.Errorf("invalid query result for %s, expected a list, got %T", key, matches[0])
		return nil
	}

	out := make([]string, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			mapper.Error = errors.Errorf("invalid entry in %s, expected a string, got %T", key, v)
			return nil
		}
		out[i] = s
	}
	return out
}
