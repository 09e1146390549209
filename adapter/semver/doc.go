// Package semver adapts resolve.Host to a small, runnable ecosystem: a TOML
// manifest names packages, the repositories (if any) that hold their tagged
// releases, and the constraints one package's configuration places on
// another's. Configurations are *semver.Version, configuration sets are
// semver.Constraint.
//
// It exists to prove the four-method Host contract is satisfiable with
// ordinary libraries, not to be a production package manager; it has none of
// a real tool's auth or vendor-tree-writing concerns, and its only caching is
// the repository checkouts it keeps, and updates on every use, under the
// cache directory given to NewAdapter.
package semver
