// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package memo holds values that are computed on first read and reused for
// the lifetime of their owner.
package memo

import "sync"

// Value is a lazily computed field. The zero value is ready to use and must
// not be copied after first use.
type Value[T any] struct {
	mu       sync.Mutex
	computed bool
	value    T
	err      error
}

// Get returns the stored result, running compute only if nothing has been
// stored yet. Both the value and the error of the first run are kept.
func (v *Value[T]) Get(compute func() (T, error)) (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.computed {
		v.value, v.err = compute()
		v.computed = true
	}
	return v.value, v.err
}

// Computed reports whether Get has already run compute.
func (v *Value[T]) Computed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.computed
}
