// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package fetch retrieves JSON documents over HTTP. The network boundary is
// the Doer interface so that callers and tests can substitute their own
// transport.
package fetch
