// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/ghorg/internal/attrs"
	"github.com/staranto/ghorg/internal/cacheutil"
	"github.com/staranto/ghorg/internal/client"
	"github.com/staranto/ghorg/internal/config"
	"github.com/staranto/ghorg/internal/fetch"
	"github.com/staranto/ghorg/internal/meta"
	"github.com/staranto/ghorg/internal/nested"
	"github.com/staranto/ghorg/internal/output"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Out is the writer command output goes to.
func Out(cmd *cli.Command) io.Writer {
	if m := GetMeta(cmd); m.Out != nil {
		return m.Out
	}
	return os.Stdout
}

// NewFetcher returns the fetcher for a command: the one injected through
// meta, or an HTTP client honoring --token whose transport goes through the
// payload cache unless --no-cache is set.
func NewFetcher(cmd *cli.Command) fetch.JSONFetcher {
	if m := GetMeta(cmd); m.Fetcher != nil {
		return m.Fetcher
	}

	var opts []fetch.Option
	if token := cmd.String("token"); token != "" {
		opts = append(opts, fetch.WithHeader("Authorization", "Bearer "+token))
	}

	if !cmd.Bool("no-cache") {
		ttl, _ := config.GetInt("cache.ttl", 1)
		opts = append(opts, fetch.WithCache(cacheutil.NewStore(time.Duration(ttl)*time.Hour)))
	}

	return fetch.NewClient(opts...)
}

// NewOrgClient builds an org client for the first argument of cmd.
func NewOrgClient(cmd *cli.Command) (*client.OrgClient, error) {
	org := strings.TrimSpace(cmd.Args().First())
	if org == "" {
		return nil, fmt.Errorf("%s: missing organization name", cmd.Name)
	}
	host := strings.TrimRight(cmd.String("host"), "/")
	log.Debugf("org=%s host=%s", org, host)

	return client.New(org, NewFetcher(cmd), client.WithOrgURL(host+"/orgs/%s")), nil
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	al.SetGlobalTransformSpec()
	return al, nil
}

// OutputOptions collects the output flags of cmd.
func OutputOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format: cmd.String("output"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Titles: cmd.Bool("titles"),
		Color:  cmd.Bool("color"),
	}
}

// Pick returns the value at the dotted path inside v. v must be an object
// unless path is empty.
func Pick(v any, path string) (any, error) {
	keys := nested.Split(path)
	if len(keys) == 0 {
		return v, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &nested.KeyError{Key: keys[0]}
	}
	return nested.Access(m, keys)
}

// CommandBuilder constructs a cli.Command for a ghorg subcommand using a
// consistent pattern: metadata, global flags and the action.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	ListFlags bool
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (b *CommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{}, b.Flags...)
	flags = append(flags, NewGlobalFlags(b.Name, b.Meta.Config.Source)...)
	if b.ListFlags {
		flags = append(flags, NewListFlags(b.Name, b.Meta.Config.Source)...)
	}

	return &cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
		Flags:  flags,
		Action: b.Action,
	}
}
