// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher returns canned payloads by URL and records every call.
type stubFetcher struct {
	payloads map[string]any
	err      error
	calls    []string
}

func (s *stubFetcher) GetJSON(_ context.Context, url string) (any, error) {
	s.calls = append(s.calls, url)
	if s.err != nil {
		return nil, s.err
	}
	return s.payloads[url], nil
}

func TestOrgClient_Org(t *testing.T) {
	for _, org := range []string{"google", "abc"} {
		t.Run(org, func(t *testing.T) {
			url := "https://api.github.com/orgs/" + org
			payload := map[string]any{"org": org}
			f := &stubFetcher{payloads: map[string]any{url: payload}}

			c := New(org, f)
			got, err := c.Org(context.Background())
			require.NoError(t, err)
			assert.Equal(t, payload, got)

			// Second read is served from the memoized value.
			_, _ = c.Org(context.Background())
			assert.Equal(t, []string{url}, f.calls)
		})
	}
}

func TestOrgClient_Org_Errors(t *testing.T) {
	boom := errors.New("boom")
	f := &stubFetcher{err: boom}
	_, err := New("google", f).Org(context.Background())
	assert.ErrorIs(t, err, boom)

	f = &stubFetcher{payloads: map[string]any{"https://api.github.com/orgs/google": []any{}}}
	_, err = New("google", f).Org(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedPayload)
}

func TestOrgClient_PublicReposURL(t *testing.T) {
	want := "https://api.github.com/orgs/test/repos"
	f := &stubFetcher{payloads: map[string]any{
		"https://api.github.com/orgs/test": map[string]any{"repos_url": want},
	}}

	got, err := New("test", f).PublicReposURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOrgClient_PublicReposURL_Missing(t *testing.T) {
	f := &stubFetcher{payloads: map[string]any{
		"https://api.github.com/orgs/test": map[string]any{},
	}}

	_, err := New("test", f).PublicReposURL(context.Background())
	assert.ErrorContains(t, err, `"repos_url"`)
}

func TestOrgClient_PublicRepos(t *testing.T) {
	reposURL := "https://api.github.com/orgs/test/repos"
	f := &stubFetcher{payloads: map[string]any{
		"https://api.github.com/orgs/test": map[string]any{"repos_url": reposURL},
		reposURL: []any{
			map[string]any{"name": "a", "license": map[string]any{"key": "mit"}},
			map[string]any{"name": "b", "license": nil},
			map[string]any{"name": "c"},
			"not-a-repo",
		},
	}}
	c := New("test", f)

	names, err := c.PublicRepos(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)

	names, err = c.PublicRepos(context.Background(), "mit")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names)

	// One org fetch and one repos fetch across both calls.
	assert.Equal(t, []string{"https://api.github.com/orgs/test", reposURL}, f.calls)
}

func TestOrgClient_WithOrgURL(t *testing.T) {
	c := New("acme", &stubFetcher{}, WithOrgURL("https://ghe.example.com/api/v3/orgs/%s"))
	assert.Equal(t, "https://ghe.example.com/api/v3/orgs/acme", c.URL())
	assert.Equal(t, "acme", c.Name())
}

func TestHasLicense(t *testing.T) {
	tests := []struct {
		name string
		repo map[string]any
		key  string
		want bool
	}{
		{
			name: "matching key",
			repo: map[string]any{"license": map[string]any{"key": "my_license"}},
			key:  "my_license",
			want: true,
		},
		{
			name: "other key",
			repo: map[string]any{"license": map[string]any{"key": "other_license"}},
			key:  "my_license",
			want: false,
		},
		{
			name: "no license",
			repo: map[string]any{},
			key:  "my_license",
			want: false,
		},
		{
			name: "null license",
			repo: map[string]any{"license": nil},
			key:  "my_license",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HasLicense(tt.repo, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasLicense_EmptyKey(t *testing.T) {
	_, err := HasLicense(map[string]any{}, "")
	assert.ErrorIs(t, err, ErrEmptyLicenseKey)
}
