// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/ghorg/internal/client"
	"github.com/staranto/ghorg/internal/meta"
	"github.com/staranto/ghorg/internal/output"
)

var reposDefaultAttrs = []string{"name,license.key:license,stargazers_count:stars"}

// ReposCommandAction lists the public repos of an organization, optionally
// only those carrying --license.
func ReposCommandAction(ctx context.Context, cmd *cli.Command) error {
	c, err := NewOrgClient(cmd)
	if err != nil {
		return err
	}
	license := cmd.String("license")
	w := Out(cmd)

	if cmd.Bool("names") {
		names, err := c.PublicRepos(ctx, license)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(w, n)
		}
		return nil
	}

	al, err := BuildAttrs(cmd, reposDefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())

	repos, err := c.Repos(ctx)
	if err != nil {
		return err
	}

	selected := repos[:0:0]
	for _, repo := range repos {
		if license != "" {
			if ok, _ := client.HasLicense(repo, license); !ok {
				continue
			}
		}
		selected = append(selected, repo)
	}

	raw, err := json.Marshal(selected)
	if err != nil {
		return fmt.Errorf("failed to marshal repos: %w", err)
	}

	return output.SliceDiceSpit(raw, al, OutputOptions(cmd), w)
}

func ReposCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "repos",
		Usage:     "list the public repositories of an organization",
		UsageText: "ghorg repos [options] <org>",
		Flags: []cli.Flag{
			NewLicenseFlag(meta.Config.Source),
			&cli.BoolFlag{
				Name:        "names",
				Aliases:     []string{"n"},
				Usage:       "print only repository names, one per line",
				HideDefault: true,
			},
		},
		ListFlags: true,
		Action:    ReposCommandAction,
		Meta:      meta,
	}).Build()
}
