// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package config loads ghorg.yaml and resolves dotted keys from it, with an
// optional per-command namespace.
package config
