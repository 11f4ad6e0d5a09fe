// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/ghorg/internal/output"
)

// DefaultHost is the GitHub API root.
const DefaultHost = "https://api.github.com"

// configSources returns a value source chain that looks up key in the config
// file, first under the command namespace and then at the top level.
func configSources(ns, key, cfgSource string, envs ...string) cli.ValueSourceChain {
	var sources []cli.ValueSource
	for _, e := range envs {
		sources = append(sources, cli.EnvVar(e))
	}
	if cfgSource != "" {
		sources = append(sources,
			yaml.YAML(ns+"."+key, altsrc.StringSourcer(cfgSource)),
			yaml.YAML(key, altsrc.StringSourcer(cfgSource)),
		)
	}
	return cli.NewValueSourceChain(sources...)
}

// NewGlobalFlags returns the flags every subcommand accepts. ns is the
// command name, used to namespace config lookups.
func NewGlobalFlags(ns, cfgSource string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Usage:   "GitHub API root",
			Sources: configSources(ns, "host", cfgSource, "GHORG_HOST"),
			Value:   DefaultHost,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, URLValidator)
			},
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token sent as a bearer token",
			Sources: cli.NewValueSourceChain(cli.EnvVar("GHORG_TOKEN"), cli.EnvVar("GITHUB_TOKEN")),
		},
		&cli.BoolFlag{
			Name:        "no-cache",
			Usage:       "bypass the payload cache",
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, raw)",
			Sources: configSources(ns, "output", cfgSource),
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
	}
}

// NewListFlags returns the flags of commands that print a list of rows.
func NewListFlags(ns, cfgSource string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: configSources(ns, "sort", cfgSource),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: configSources(ns, "titles", cfgSource),
			Value:   false,
		},
		NewColorFlag(ns, cfgSource),
	}
}

// NewColorFlag returns --color/--no-color, on by default for terminals.
func NewColorFlag(ns, cfgSource string) *cli.BoolWithInverseFlag {
	return &cli.BoolWithInverseFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored text output",
		Sources: configSources(ns, "color", cfgSource),
		Value:   output.ColorDefault(os.Stdout),
	}
}

// NewPathFlag returns the --path flag used to pick a value out of a
// document.
func NewPathFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "path",
		Aliases: []string{"p"},
		Usage:   "dotted path of the value to print (e.g. owner.login)",
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator)
		},
	}
}

// NewLicenseFlag returns the --license flag of the repos command.
func NewLicenseFlag(cfgSource string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "license",
		Aliases: []string{"l"},
		Usage:   "only repos with this license key (e.g. apache-2.0)",
		Sources: configSources("repos", "license", cfgSource),
		Validator: func(value string) error {
			return FlagValidators(value, JammedFlagValidator)
		},
	}
}
