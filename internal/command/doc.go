// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command wires the ghorg CLI: one builder and action per
// subcommand plus the flags and helpers they share.
package command
