// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/ghorg/internal/meta"
	"github.com/staranto/ghorg/internal/output"
)

// OrgCommandAction prints the organization payload, or the value at --path
// inside it.
func OrgCommandAction(ctx context.Context, cmd *cli.Command) error {
	c, err := NewOrgClient(cmd)
	if err != nil {
		return err
	}

	org, err := c.Org(ctx)
	if err != nil {
		return err
	}

	v, err := Pick(org, cmd.String("path"))
	if err != nil {
		return fmt.Errorf("org %s: %w", c.Name(), err)
	}
	log.Debugf("org %s: printing %q", c.Name(), cmd.String("path"))

	return output.Document(v, cmd.String("output"), Out(cmd))
}

func OrgCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "org",
		Usage:     "show a GitHub organization",
		UsageText: "ghorg org [options] <org>",
		Flags:     []cli.Flag{NewPathFlag()},
		Action:    OrgCommandAction,
		Meta:      meta,
	}).Build()
}
