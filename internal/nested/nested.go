// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package nested

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKeyNotFound is matched by every *KeyError via errors.Is.
var ErrKeyNotFound = errors.New("key not found")

// KeyError reports the key at which a traversal failed. The key is either
// absent from its level or sits below a value that is not a mapping.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%s: %q", ErrKeyNotFound, e.Key)
}

func (e *KeyError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// Access walks path through m, one level per key, and returns the value found
// at the final key. An empty path returns m itself.
func Access(m map[string]any, path []string) (any, error) {
	var current any = m

	for _, key := range path {
		switch level := current.(type) {
		case map[string]any:
			v, ok := level[key]
			if !ok {
				return nil, &KeyError{Key: key}
			}
			current = v
		// YAML v2 and untyped YAML v3 decodes can produce these.
		case map[any]any:
			v, ok := level[key]
			if !ok {
				return nil, &KeyError{Key: key}
			}
			current = v
		default:
			return nil, &KeyError{Key: key}
		}
	}

	return current, nil
}

// Split turns a dotted key spec (a.b.c) into a path. The empty spec is the
// empty path.
func Split(dotted string) []string {
	if dotted == "" {
		return nil
	}
	return strings.Split(dotted, ".")
}
