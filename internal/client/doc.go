// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package client reads GitHub organizations and their public repositories
// through a fetch.JSONFetcher.
package client
