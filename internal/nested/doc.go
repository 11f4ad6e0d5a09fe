// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package nested looks values up in decoded JSON and YAML documents by
// walking a path of keys through nested mappings.
package nested
