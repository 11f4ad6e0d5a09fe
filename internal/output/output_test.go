// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/staranto/ghorg/internal/attrs"
)

const reposJSON = `[
  {"name": "Zebra", "stargazers_count": 3, "license": {"key": "mit"}},
  {"name": "alpha", "stargazers_count": 1, "license": null},
  {"name": "beta", "stargazers_count": 2, "license": {"key": "apache-2.0"}}
]`

func testAttrs(t *testing.T, spec string) attrs.AttrList {
	t.Helper()
	var al attrs.AttrList
	require.NoError(t, al.Set(spec))
	al.SetGlobalTransformSpec()
	return al
}

func TestSortDataset(t *testing.T) {
	testData := []map[string]any{
		{"name": "zebra", "count": 3.0, "kind": "b"},
		{"name": "Alpha", "count": 1.0, "kind": "a"},
		{"name": "beta", "count": 20.0, "kind": "a"},
		{"name": "gamma", "count": nil, "kind": "b"},
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{name: "ascending by name", spec: "name", wantOrder: []string{"Alpha", "beta", "gamma", "zebra"}},
		{name: "descending by name", spec: "-name", wantOrder: []string{"zebra", "gamma", "beta", "Alpha"}},
		{name: "numeric, nil first", spec: "count", wantOrder: []string{"gamma", "Alpha", "zebra", "beta"}},
		{name: "descending numeric", spec: "-count", wantOrder: []string{"beta", "zebra", "Alpha", "gamma"}},
		{name: "case sensitive", spec: "!name", wantOrder: []string{"Alpha", "beta", "gamma", "zebra"}},
		{name: "multiple fields", spec: "kind,-name", wantOrder: []string{"beta", "Alpha", "zebra", "gamma"}},
		{name: "empty spec", spec: "", wantOrder: []string{"zebra", "Alpha", "beta", "gamma"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]any, len(testData))
			copy(data, testData)
			SortDataset(data, tt.spec)
			for i, expectedName := range tt.wantOrder {
				assert.Equal(t, expectedName, data[i]["name"], "at index %d", i)
			}
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		emptyVal []string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 42, want: "42"},
		{name: "whole float64", value: 42.0, want: "42"},
		{name: "float64 with decimal", value: 42.5, want: "42.5"},
		{name: "zero", value: 0.0, want: "0"},
		{name: "bool false", value: false, want: "false"},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: []string{"-"}, want: "-"},
		{name: "slice", value: []any{"a", "b"}, want: `["a","b"]`},
		{name: "map", value: map[string]any{"x": 1.0}, want: `{"x":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.emptyVal...))
		})
	}
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	al := testAttrs(t, "name,stargazers_count:stars,license.key:license,*::u")

	var buf bytes.Buffer
	err := SliceDiceSpit([]byte(reposJSON), al, Options{Format: "json", Sort: "stars", Filter: "stars>1"}, &buf)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []map[string]any{
		{"name": "BETA", "stars": 2.0, "license": "APACHE-2.0"},
		{"name": "ZEBRA", "stars": 3.0, "license": "MIT"},
	}, got)
}

func TestSliceDiceSpit_JSONEmpty(t *testing.T) {
	al := testAttrs(t, "name")

	var buf bytes.Buffer
	require.NoError(t, SliceDiceSpit([]byte(reposJSON), al, Options{Format: "json", Filter: "name=nope"}, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestSliceDiceSpit_YAMLDropsExcluded(t *testing.T) {
	al := testAttrs(t, "name,!stargazers_count:stars")

	var buf bytes.Buffer
	require.NoError(t, SliceDiceSpit([]byte(reposJSON), al, Options{Format: "yaml", Sort: "-stars"}, &buf))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, map[string]any{"name": "Zebra"}, got[0])
	assert.Equal(t, map[string]any{"name": "alpha"}, got[2])
}

func TestSliceDiceSpit_Raw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SliceDiceSpit([]byte(reposJSON), nil, Options{Format: "raw"}, &buf))
	assert.Equal(t, reposJSON, buf.String())
}

func TestSliceDiceSpit_Text(t *testing.T) {
	t.Setenv("GHORG_CFG", "/nonexistent/ghorg.yaml")
	al := testAttrs(t, "name,license.key:license")

	var buf bytes.Buffer
	require.NoError(t, SliceDiceSpit([]byte(reposJSON), al, Options{Format: "text", Titles: true, Sort: "name"}, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "name")
	assert.Contains(t, lines[0], "license")
	assert.Contains(t, lines[1], "alpha")
	assert.Contains(t, lines[1], "-")
	assert.Contains(t, lines[2], "beta")
	assert.Contains(t, lines[2], "apache-2.0")
	assert.Contains(t, lines[3], "Zebra")
}

func TestTableWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableWriter(nil, nil, Options{}, &buf))
	assert.Empty(t, buf.String())
}

func TestDocument(t *testing.T) {
	doc := map[string]any{"login": "google", "public_repos": 5.0}

	tests := []struct {
		name   string
		v      any
		format string
		want   string
	}{
		{name: "text object", v: doc, format: "text", want: "{\n  \"login\": \"google\",\n  \"public_repos\": 5\n}\n"},
		{name: "text scalar", v: "https://api.github.com/orgs/google/repos", format: "text", want: "https://api.github.com/orgs/google/repos\n"},
		{name: "text null", v: nil, format: "text", want: "null\n"},
		{name: "raw", v: doc, format: "raw", want: `{"login":"google","public_repos":5}` + "\n"},
		{name: "yaml", v: doc, format: "yaml", want: "login: google\npublic_repos: 5\n"},
		{name: "json scalar", v: 2.0, format: "json", want: "2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Document(tt.v, tt.format, &buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestGetColors(t *testing.T) {
	t.Setenv("GHORG_CFG", "/nonexistent/ghorg.yaml")
	header, even, odd := getColors("colors")
	assert.Equal(t, "#f6be00", header)
	assert.Equal(t, "#ffffff", even)
	assert.Equal(t, "#00c8f0", odd)
}

func BenchmarkSortDataset(b *testing.B) {
	testData := []map[string]any{
		{"name": "zebra", "count": 3.0},
		{"name": "alpha", "count": 1.0},
		{"name": "beta", "count": 2.0},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data := make([]map[string]any, len(testData))
		copy(data, testData)
		SortDataset(data, "name")
	}
}
