// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"
	"io"

	"github.com/staranto/ghorg/internal/config"
	"github.com/staranto/ghorg/internal/fetch"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// Fetcher, when set, replaces the fetcher commands build from their
	// flags.
	Fetcher fetch.JSONFetcher
	// Out is where command output goes. Defaults to stdout.
	Out io.Writer
}
