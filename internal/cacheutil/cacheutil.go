// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
)

// Entry represents a cached payload on disk.
// Key is the clear-text key (usually a URL); EncodedKey is the hashed filename.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
	ModTime    time.Time
}

// Store is an on-disk cache rooted at Base. A Store with an empty Base is
// disabled: reads miss and writes are dropped.
type Store struct {
	Base string
	// MaxAge, when positive, makes entries older than it read as misses.
	MaxAge time.Duration
}

// Dir resolves the base cache directory.
// Precedence:
//  1. GHORG_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/ghorg
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("GHORG_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "ghorg"), true
	}
	return "", false
}

// Enabled returns true unless GHORG_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("GHORG_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// NewStore returns a Store at the resolved cache directory, or a disabled
// Store when caching is turned off or no directory can be resolved.
func NewStore(maxAge time.Duration) *Store {
	if !Enabled() {
		return &Store{}
	}
	base, ok := Dir()
	if !ok {
		return &Store{}
	}
	return &Store{Base: base, MaxAge: maxAge}
}

// Disabled reports whether the store drops everything.
func (s *Store) Disabled() bool {
	return s == nil || s.Base == ""
}

// EnsureBaseDir creates the base directory. It is a no-op for a disabled
// Store.
func (s *Store) EnsureBaseDir() error {
	if s.Disabled() {
		return nil
	}
	if err := os.MkdirAll(s.Base, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return nil
}

// EntryPath returns where the entry for clearKey lives beneath subdirs, and
// whether a file currently exists there.
func (s *Store) EntryPath(subdirs []string, clearKey string) (string, bool) {
	if s.Disabled() {
		return "", false
	}
	p := filepath.Join(append([]string{s.Base}, append(subdirs, encodeKey(clearKey))...)...)
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Read returns the entry for clearKey. Expired entries are misses.
func (s *Store) Read(subdirs []string, clearKey string) (*Entry, bool) {
	p, ok := s.EntryPath(subdirs, clearKey)
	if !ok {
		return nil, false
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	if s.MaxAge > 0 && time.Since(info.ModTime()) > s.MaxAge {
		log.Debugf("cache entry expired: %s", p)
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	return &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		Data:       bytes.TrimSpace(b),
		ModTime:    info.ModTime(),
	}, true
}

// Write stores data for clearKey beneath subdirs, creating directories as
// needed.
func (s *Store) Write(subdirs []string, clearKey string, data []byte) error {
	if s.Disabled() {
		return nil
	}
	dir := filepath.Join(append([]string{s.Base}, subdirs...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	p := filepath.Join(dir, encodeKey(clearKey))
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 or the store is disabled, it is a no-op.
func (s *Store) Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}
	if s.Disabled() {
		return nil
	}
	maxAge := time.Duration(hours) * time.Hour
	err := filepath.WalkDir(s.Base, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil || time.Since(info.ModTime()) <= maxAge {
			return nil
		}
		if err := os.Remove(path); err == nil {
			log.Debugf("removed cache file %s", path)
		} else {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
