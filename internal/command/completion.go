// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/ghorg/internal/meta"
)

const bashCompletionScript = `# bash completion for ghorg
_ghorg()
{
    local cur prev cmd
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff get org repos completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local global="--host --token --no-cache --output -o"
    local list="--attrs -a --color -c --filter -f --sort -s --titles -t"

    case "$cmd" in
        diff)
            local opts="$global --path -p --color --no-color -c"
            ;;
        get|org)
            local opts="$global --path -p"
            ;;
        repos)
            local opts="$global $list --license -l --names -n"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$global"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    fi
    return 0
}

complete -F _ghorg ghorg
`

const zshCompletionScript = `#compdef ghorg

_ghorg() {
  local -a cmds
  cmds=(
    'diff:compare two JSON documents'
    'get:fetch a JSON document'
    'org:show a GitHub organization'
    'repos:list the public repositories of an organization'
    'completion:generate shell completion script'
  )

  local -a global
  global=(
  '--host[GitHub API root]:url'
  '--token[API token]:token'
  '--no-cache[bypass the payload cache]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  )

  local -a list
  list=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'ghorg commands' cmds
    return
  fi

  case $words[2] in
    diff)
      _arguments -C $global \
        '(-p --path)'{-p,--path}'[dotted path]:path' \
        '(-c --color --no-color)'{-c,--color}'[color the diff]' \
        '--no-color[plain diff]' \
        '1:url' '2:url'
      ;;
    get)
      _arguments -C $global '(-p --path)'{-p,--path}'[dotted path]:path' '1:url'
      ;;
    org)
      _arguments -C $global '(-p --path)'{-p,--path}'[dotted path]:path' '1:organization'
      ;;
    repos)
      _arguments -C $global $list \
        '(-l --license)'{-l,--license}'[license key]:license' \
        '(-n --names)'{-n,--names}'[names only]' \
        '1:organization'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _ghorg ghorg
`

// CompletionCommandAction prints the completion script for the shell named by
// the first argument, falling back to $SHELL.
func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := Out(cmd)

	shell := cmd.Args().First()
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(os.Stderr, "usage: ghorg completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "ghorg completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
