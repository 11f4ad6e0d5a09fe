// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package driller digs values out of raw JSON payloads by dotted path for
// commands that filter, sort or print individual attributes.
package driller
