// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/staranto/ghorg/internal/meta"
)

// ErrNotComparable is returned when two documents are not both objects or
// both arrays.
var ErrNotComparable = errors.New("documents must both be objects or both be arrays")

// DiffCommandAction prints the structural difference between two JSON
// documents, each optionally narrowed with --path.
func DiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return errors.New("diff: need exactly two URLs")
	}

	f := NewFetcher(cmd)
	var docs [2]any
	for i := range docs {
		url := cmd.Args().Get(i)
		if err := URLValidator(url); err != nil {
			return fmt.Errorf("diff: %w", err)
		}
		doc, err := f.GetJSON(ctx, url)
		if err != nil {
			return err
		}
		if docs[i], err = Pick(doc, cmd.String("path")); err != nil {
			return fmt.Errorf("diff %s: %w", url, err)
		}
	}

	return WriteDiff(Out(cmd), docs[0], docs[1], cmd.Bool("color"))
}

// WriteDiff renders the difference between left and right to w.
func WriteDiff(w io.Writer, left, right any, color bool) error {
	differ := gojsondiff.New()

	var d gojsondiff.Diff
	switch l := left.(type) {
	case map[string]any:
		r, ok := right.(map[string]any)
		if !ok {
			return ErrNotComparable
		}
		d = differ.CompareObjects(l, r)
	case []any:
		r, ok := right.([]any)
		if !ok {
			return ErrNotComparable
		}
		d = differ.CompareArrays(l, r)
	default:
		return ErrNotComparable
	}

	if !d.Modified() {
		_, err := fmt.Fprintln(w, "no differences")
		return err
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	})
	s, err := f.Format(d)
	if err != nil {
		return fmt.Errorf("failed to format diff: %w", err)
	}
	_, err = io.WriteString(w, s)
	return err
}

func DiffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "compare two JSON documents",
		UsageText: "ghorg diff [options] <url> <url>",
		Flags: []cli.Flag{
			NewPathFlag(),
			NewColorFlag("diff", meta.Config.Source),
		},
		Action: DiffCommandAction,
		Meta:   meta,
	}).Build()
}
