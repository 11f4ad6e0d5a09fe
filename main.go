// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/ghorg/internal/cacheutil"
	"github.com/staranto/ghorg/internal/command"
	"github.com/staranto/ghorg/internal/config"
	mylog "github.com/staranto/ghorg/internal/log"
	"github.com/staranto/ghorg/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Best-effort cache upkeep. Failures are reported and ignored.
	store := cacheutil.NewStore(0)
	if err := store.EnsureBaseDir(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	clean, _ := config.GetInt("cache.clean", 0)
	if err := store.Purge(clean); err != nil {
		log.WithError(err).Warn("cache purge failed")
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands an argument set from the config file into args.
// "@name" directly after the command, and followed by more arguments,
// selects <command>.name; without one, <command>.defaults is used if
// present. Any other "@" argument is passed through untouched. The set's entries are inserted right after the command so
// that explicit arguments still win.
func mangleArguments(args []string) []string {
	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	set := "defaults"
	rest := args[2:]
	if len(rest) > 1 && strings.HasPrefix(rest[0], "@") && len(rest[0]) > 1 {
		set = rest[0][1:]
		rest = rest[1:]
	}

	setArgs, _ := config.GetStringSlice(args[1] + "." + set)

	out := preamble
	for _, arg := range setArgs {
		out = append(out, strings.Fields(arg)...)
	}
	out = append(out, rest...)

	log.Debugf("set=%s, args=%v", set, out)
	return out
}
