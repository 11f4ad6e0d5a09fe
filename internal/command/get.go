// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/ghorg/internal/meta"
	"github.com/staranto/ghorg/internal/output"
)

// GetCommandAction fetches any JSON URL and prints it, or the value at
// --path inside it.
func GetCommandAction(ctx context.Context, cmd *cli.Command) error {
	url := cmd.Args().First()
	if url == "" {
		return errors.New("get: missing URL")
	}
	if err := URLValidator(url); err != nil {
		return fmt.Errorf("get: %w", err)
	}

	doc, err := NewFetcher(cmd).GetJSON(ctx, url)
	if err != nil {
		return err
	}

	v, err := Pick(doc, cmd.String("path"))
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}

	return output.Document(v, cmd.String("output"), Out(cmd))
}

func GetCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "get",
		Usage:     "fetch a JSON document",
		UsageText: "ghorg get [options] <url>",
		Flags:     []cli.Flag{NewPathFlag()},
		Action:    GetCommandAction,
		Meta:      meta,
	}).Build()
}
