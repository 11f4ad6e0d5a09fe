// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"

	"github.com/staranto/ghorg/internal/fetch"
	"github.com/staranto/ghorg/internal/memo"
	"github.com/staranto/ghorg/internal/nested"
)

// OrgURL is the GitHub API endpoint for an organization; %s is the org login.
const OrgURL = "https://api.github.com/orgs/%s"

var (
	ErrEmptyLicenseKey    = errors.New("license key must not be empty")
	ErrUnexpectedPayload  = errors.New("unexpected payload shape")
	errReposURLNotAString = fmt.Errorf("%w: repos_url is not a string", ErrUnexpectedPayload)
)

// OrgClient reads an organization and its public repositories. The org and
// repos payloads are each fetched at most once per client.
type OrgClient struct {
	name    string
	orgURL  string
	fetcher fetch.JSONFetcher

	org   memo.Value[map[string]any]
	repos memo.Value[[]any]
}

type Option func(*OrgClient)

// WithOrgURL overrides OrgURL, e.g. for GitHub Enterprise. The format must
// contain a single %s for the org login.
func WithOrgURL(format string) Option {
	return func(c *OrgClient) {
		c.orgURL = format
	}
}

func New(org string, f fetch.JSONFetcher, opts ...Option) *OrgClient {
	c := &OrgClient{
		name:    org,
		orgURL:  OrgURL,
		fetcher: f,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name is the org login the client was created for.
func (c *OrgClient) Name() string {
	return c.name
}

// URL is the API URL of the organization.
func (c *OrgClient) URL() string {
	return fmt.Sprintf(c.orgURL, c.name)
}

// Org returns the organization payload.
func (c *OrgClient) Org(ctx context.Context) (map[string]any, error) {
	return c.org.Get(func() (map[string]any, error) {
		v, err := c.fetcher.GetJSON(ctx, c.URL())
		if err != nil {
			return nil, fmt.Errorf("failed to fetch org %s: %w", c.name, err)
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: org %s is %T", ErrUnexpectedPayload, c.name, v)
		}
		return m, nil
	})
}

// PublicReposURL is the repos_url advertised by the org payload.
func (c *OrgClient) PublicReposURL(ctx context.Context) (string, error) {
	org, err := c.Org(ctx)
	if err != nil {
		return "", err
	}
	v, err := nested.Access(org, []string{"repos_url"})
	if err != nil {
		return "", fmt.Errorf("org %s: %w", c.name, err)
	}
	s, ok := v.(string)
	if !ok {
		return "", errReposURLNotAString
	}
	return s, nil
}

// ReposPayload returns the raw list found at PublicReposURL.
func (c *OrgClient) ReposPayload(ctx context.Context) ([]any, error) {
	return c.repos.Get(func() ([]any, error) {
		url, err := c.PublicReposURL(ctx)
		if err != nil {
			return nil, err
		}
		v, err := c.fetcher.GetJSON(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch repos for %s: %w", c.name, err)
		}
		l, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: repos for %s is %T", ErrUnexpectedPayload, c.name, v)
		}
		return l, nil
	})
}

// Repos returns the repository objects of the org, skipping any entry that
// is not an object.
func (c *OrgClient) Repos(ctx context.Context) ([]map[string]any, error) {
	payload, err := c.ReposPayload(ctx)
	if err != nil {
		return nil, err
	}
	repos := make([]map[string]any, 0, len(payload))
	for _, r := range payload {
		if m, ok := r.(map[string]any); ok {
			repos = append(repos, m)
		}
	}
	return repos, nil
}

// PublicRepos returns the names of the org's public repositories. A non-empty
// license keeps only repos whose license.key equals it.
func (c *OrgClient) PublicRepos(ctx context.Context, license string) ([]string, error) {
	repos, err := c.Repos(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(repos))
	for _, repo := range repos {
		if license != "" {
			// license is non-empty, so HasLicense cannot fail.
			if ok, _ := HasLicense(repo, license); !ok {
				continue
			}
		}
		name, ok := repo["name"].(string)
		if !ok {
			log.Debugf("skipping repo without a name: %v", repo["id"])
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// HasLicense reports whether repo.license.key equals key. A repo without a
// license, or with a null one, has no license.
func HasLicense(repo map[string]any, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyLicenseKey
	}
	v, err := nested.Access(repo, []string{"license", "key"})
	if err != nil {
		if errors.Is(err, nested.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return v == key, nil
}
