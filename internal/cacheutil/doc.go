// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cacheutil provides a file-based cache for fetched payloads so that
// repeated lookups of the same URL can skip the network.
package cacheutil
