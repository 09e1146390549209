// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

var verbose = flag.Bool("v", false, "enable verbose logging")

type command interface {
	Name() string
	Args() string
	ShortHelp() string
	LongHelp() string
	Register(*flag.FlagSet)
	Run([]string) error
}

func main() {
	commands := []command{
		&solveCommand{},
	}

	usage := func() {
		fmt.Fprintln(os.Stderr, "Usage: resolve <command>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr)
		w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
		for _, cmd := range commands {
			fmt.Fprintf(w, "\t%s\t%s\n", cmd.Name(), cmd.ShortHelp())
		}
		w.Flush()
		fmt.Fprintln(os.Stderr)
	}

	if len(os.Args) <= 1 || strings.ToLower(os.Args[1]) == "-h" || strings.ToLower(os.Args[1]) == "help" {
		usage()
		os.Exit(1)
	}

	for _, cmd := range commands {
		if cmd.Name() != os.Args[1] {
			continue
		}

		fs := flag.NewFlagSet(cmd.Name(), flag.ExitOnError)
		fs.BoolVar(verbose, "v", false, "enable verbose logging")
		cmd.Register(fs)
		resetUsage(fs, cmd.Name(), cmd.Args(), cmd.LongHelp())

		if err := fs.Parse(os.Args[2:]); err != nil {
			fs.Usage()
			os.Exit(1)
		}

		if err := cmd.Run(fs.Args()); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Fprintf(os.Stderr, "%s: no such command\n", os.Args[1])
	usage()
	os.Exit(1)
}

func resetUsage(fs *flag.FlagSet, name, args, longHelp string) {
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: resolve %s %s\n\n", name, args)
		fmt.Fprintln(os.Stderr, strings.TrimSpace(longHelp))
		fmt.Fprintln(os.Stderr)
		fs.PrintDefaults()
	}
}
