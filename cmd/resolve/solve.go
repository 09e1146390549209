// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	mmsemver "github.com/Masterminds/semver"

	"github.com/depconf/confsolve/adapter/semver"
	"github.com/depconf/confsolve/log"
	"github.com/depconf/confsolve/resolve"
)

const solveShortHelp = `Resolve the configurations named by a manifest`
const solveLongHelp = `
Reads a TOML manifest describing a root package, the packages reachable from
it, and the constraints between their configurations, then prints the
resolved configuration for each reachable package.
`

type solveCommand struct {
	manifest string
	cacheDir string
	nonFatal bool
}

func (cmd *solveCommand) Name() string      { return "solve" }
func (cmd *solveCommand) Args() string      { return "-m <manifest.toml>" }
func (cmd *solveCommand) ShortHelp() string { return solveShortHelp }
func (cmd *solveCommand) LongHelp() string  { return solveLongHelp }

func (cmd *solveCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.manifest, "m", "manifest.toml", "path to the manifest file")
	fs.StringVar(&cmd.cacheDir, "cachedir", "", "directory to check out repository-backed packages into (default: a temp dir)")
	fs.BoolVar(&cmd.nonFatal, "non-fatal", false, "return an empty mapping instead of failing when unresolvable")
}

func (cmd *solveCommand) Run(args []string) error {
	f, err := os.Open(cmd.manifest)
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := semver.LoadManifest(f)
	if err != nil {
		return err
	}

	cacheDir := cmd.cacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "resolve-cache")
	}

	root, err := semver.Root(m)
	if err != nil {
		return err
	}

	adapter := semver.NewAdapter(m, cacheDir)

	l := log.New(os.Stderr)
	l.LogResolvefln("resolving %s@%s using %s", root.Pack, m.RootVersion, cmd.manifest)

	opts := []resolve.Option{
		resolve.WithLogger(stdlog.New(l, "", 0), *verbose),
	}
	if cmd.nonFatal {
		opts = append(opts, resolve.NonFatal())
	}

	result, err := resolve.Resolve[*mmsemver.Version, mmsemver.Constraint](root, adapter, opts...)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

func printResult(result map[string]*mmsemver.Version) {
	names := make([]string, 0, len(result))
	for name := range result {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PACKAGE\tCONFIGURATION")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%s\n", name, result[name].String())
	}
	w.Flush()
}
