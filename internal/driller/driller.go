// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRegex splits a path segment into its key and optional [n] index.
var segmentRegex = regexp.MustCompile(`^(.*?)(?:\[(\d+)\])?$`)

// Driller follows a dotted path (a.b[0].c) through a raw JSON document. A
// single element array met along the way, or at the end, is unwrapped so that
// callers don't need to know the path crosses it. A multi element array at
// the end is returned as is.
func Driller(json string, path string) gjson.Result {
	current := gjson.Parse(json)
	if path == "" {
		return current
	}

	for _, segment := range strings.Split(path, ".") {
		key, index, hasIndex := parseSegment(segment)

		if key != "" {
			if current.IsArray() {
				elems := current.Array()
				if len(elems) != 1 {
					return gjson.Result{}
				}
				current = elems[0]
			}
			current = current.Get(escapeKey(key))
		}

		if hasIndex {
			if !current.IsArray() {
				return gjson.Result{}
			}
			elems := current.Array()
			if index >= len(elems) {
				return gjson.Result{}
			}
			current = elems[index]
		}

		if !current.Exists() {
			return current
		}
	}

	if current.IsArray() {
		if elems := current.Array(); len(elems) == 1 {
			return elems[0]
		}
	}

	return current
}

func parseSegment(segment string) (key string, index int, hasIndex bool) {
	m := segmentRegex.FindStringSubmatch(segment)
	if m == nil || m[2] == "" {
		return segment, 0, false
	}
	i, err := strconv.Atoi(m[2])
	if err != nil {
		return segment, 0, false
	}
	return m[1], i, true
}

// escapeKey makes key safe to use as a single gjson path component.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '\\', '.', '*', '?', '|', '#', '@', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
