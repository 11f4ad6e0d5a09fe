// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package filters applies --filter expressions to rows of JSON results.
package filters
