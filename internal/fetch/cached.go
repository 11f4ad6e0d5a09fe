// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/apex/log"

	"github.com/staranto/ghorg/internal/cacheutil"
)

const cacheRoot = "json"

// Cached is a Doer that serves GET bodies from a cacheutil.Store and only
// falls through to Next on a miss. Only 2xx bodies are written back.
// Entries are scoped by the request's Authorization header.
type Cached struct {
	Next  Doer
	Store *cacheutil.Store
}

func (c *Cached) Do(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet || c.Store.Disabled() {
		return c.Next.Do(req)
	}

	subdirs := cacheScope(req)
	key := req.URL.String()

	if entry, ok := c.Store.Read(subdirs, key); ok && len(entry.Data) > 0 {
		log.Debugf("cache hit: %s", entry.Path)
		return cachedResponse(req, entry.Data), nil
	}

	resp, err := c.Next.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := c.Store.Write(subdirs, key, body); err != nil {
			log.WithError(err).Warn("failed to write payload to cache")
		}
	} else {
		log.Debugf("not caching %s: status %d", key, resp.StatusCode)
	}

	return resp, nil
}

// cacheScope returns the subdirectories entries for req live in. Requests
// with different credentials never share an entry.
func cacheScope(req *http.Request) []string {
	auth := req.Header.Get("Authorization")
	if auth == "" {
		return []string{cacheRoot, "anonymous"}
	}
	sum := sha256.Sum256([]byte(auth))
	return []string{cacheRoot, "auth-" + hex.EncodeToString(sum[:8])}
}

func cachedResponse(req *http.Request, data []byte) *http.Response {
	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Length": {strconv.Itoa(len(data))}},
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: int64(len(data)),
		Request:       req,
	}
}

var _ Doer = (*Cached)(nil)
