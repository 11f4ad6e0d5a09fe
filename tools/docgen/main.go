// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/ghorg/internal/command"
	"github.com/staranto/ghorg/internal/meta"
)

// Doc generator:
// - Walks the ghorg command tree
// - Generates:
//   - docs/commands/ghorg-<cmd>.md, the markdown source
//   - docs/man/share/man1/ghorg-<cmd>.1 via md2man

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	mdOutDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")

	for _, dir := range []string{mdOutDir, manOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("creating output dir %s: %v", dir, err)
		}
	}

	app := command.NewApp(meta.Meta{})

	var processed int
	for _, cmd := range app.Commands {
		if cmd.Hidden {
			continue
		}
		md := renderMarkdown(cmd)

		mdPath := filepath.Join(mdOutDir, fmt.Sprintf("ghorg-%s.md", cmd.Name))
		if err := writeFileIfChanged(mdPath, md, writeOnlyIfChanged); err != nil {
			fatalf("writing markdown for %s: %v", cmd.Name, err)
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("ghorg-%s.1", cmd.Name))
		if err := writeFileIfChanged(manPath, md2man.Render(md), writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", cmd.Name, err)
		}

		processed++
	}

	if processed == 0 {
		fatalf("no commands found")
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

// renderMarkdown produces the md2man flavored page of one command.
func renderMarkdown(cmd *cli.Command) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "%% GHORG-%s(1)\n\n", strings.ToUpper(cmd.Name))
	fmt.Fprintf(&b, "# NAME\n\nghorg-%s - %s\n\n", cmd.Name, cmd.Usage)

	if cmd.UsageText != "" {
		fmt.Fprintf(&b, "# SYNOPSIS\n\n**%s**\n\n", cmd.UsageText)
	}

	if len(cmd.Flags) > 0 {
		b.WriteString("# OPTIONS\n\n")
		for _, f := range cmd.Flags {
			names := make([]string, 0, len(f.Names()))
			for _, n := range f.Names() {
				if len(n) == 1 {
					names = append(names, "-"+n)
				} else {
					names = append(names, "--"+n)
				}
			}
			fmt.Fprintf(&b, "**%s**\n:   %s\n\n", strings.Join(names, ", "), flagUsage(f))
		}
	}

	return b.Bytes()
}

func flagUsage(f cli.Flag) string {
	if df, ok := f.(cli.DocGenerationFlag); ok {
		return df.GetUsage()
	}
	return ""
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}
