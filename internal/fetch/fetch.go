// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/apex/log"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"

	"github.com/staranto/ghorg/internal/cacheutil"
)

// ErrInvalidJSON is returned when a response body does not decode as JSON.
var ErrInvalidJSON = errors.New("response is not valid JSON")

// Doer performs a single HTTP round trip. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// JSONFetcher returns the decoded JSON document found at a URL.
type JSONFetcher interface {
	GetJSON(ctx context.Context, url string) (any, error)
}

// Client fetches JSON documents through a Doer.
type Client struct {
	doer   Doer
	header http.Header
	store  *cacheutil.Store
}

type Option func(*Client)

// WithDoer replaces the HTTP transport.
func WithDoer(d Doer) Option {
	return func(c *Client) {
		c.doer = d
	}
}

// WithHeader sets a header on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

// WithCache fronts the transport with a Cached Doer backed by store.
func WithCache(store *cacheutil.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		doer:   cleanhttp.DefaultPooledClient(),
		header: http.Header{},
	}
	c.header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(c)
	}
	if !c.store.Disabled() {
		c.doer = &Cached{Next: c.doer, Store: c.store}
	}
	return c
}

// GetJSON issues exactly one GET for url and returns the decoded body.
// Objects decode to map[string]any, arrays to []any and numbers to float64.
func (c *Client) GetJSON(ctx context.Context, url string) (any, error) {
	doc, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	return Decode(doc.Bytes())
}

func (c *Client) get(ctx context.Context, url string) (bytes.Buffer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return bytes.Buffer{}, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range c.header {
		req.Header[k] = v
	}

	log.Debugf("GET %s", url)
	resp, err := c.doer.Do(req)
	if err != nil {
		return bytes.Buffer{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return bytes.Buffer{}, fmt.Errorf("failed to read response: %w", err)
	}
	log.Debugf("GET %s -> %d (%d bytes)", url, resp.StatusCode, doc.Len())

	return doc, nil
}

// Decode parses a raw JSON document.
func Decode(raw []byte) (any, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	return gjson.ParseBytes(raw).Value(), nil
}

var defaultClient = NewClient()

// GetJSON fetches url with the default client.
func GetJSON(ctx context.Context, url string) (any, error) {
	return defaultClient.GetJSON(ctx, url)
}

var _ JSONFetcher = (*Client)(nil)
