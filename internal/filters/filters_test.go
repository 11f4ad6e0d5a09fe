// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/ghorg/internal/attrs"
)

const reposJSON = `[
  {"name": "episodes.dart", "fork": false, "stargazers_count": 12, "topics": [], "license": null},
  {"name": "cpp-netlib", "fork": true, "stargazers_count": 87, "topics": ["cpp"], "license": {"key": "bsl-1.0"}},
  {"name": "dagger", "fork": true, "stargazers_count": 17000, "topics": ["android", "java"], "license": {"key": "apache-2.0"}},
  {"name": "kratu", "fork": false, "stargazers_count": 250, "topics": ["java"], "license": {"key": "apache-2.0"}}
]`

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name  string
		spec  string
		delim string
		want  []Filter
	}{
		{
			name: "empty spec",
			spec: "",
		},
		{
			name: "single exact match",
			spec: "name=dagger",
			want: []Filter{{Key: "name", Operand: "=", Target: "dagger"}},
		},
		{
			name: "negated",
			spec: "license!=mit",
			want: []Filter{{Key: "license", Operand: "=", Target: "mit", Negate: true}},
		},
		{
			name: "several",
			spec: "name^k,stars>100,name/^[a-z]+$",
			want: []Filter{
				{Key: "name", Operand: "^", Target: "k"},
				{Key: "stars", Operand: ">", Target: "100"},
				{Key: "name", Operand: "/", Target: "^[a-z]+$"},
			},
		},
		{
			name: "invalid specs skipped",
			spec: "nooperator,=novalue,name~Dagger",
			want: []Filter{{Key: "name", Operand: "~", Target: "Dagger"}},
		},
		{
			name:  "custom delimiter",
			spec:  "name^d;stars<100",
			delim: ";",
			want: []Filter{
				{Key: "name", Operand: "^", Target: "d"},
				{Key: "stars", Operand: "<", Target: "100"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GHORG_FILTER_DELIM", tt.delim)
			assert.Equal(t, tt.want, BuildFilters(tt.spec))
		})
	}
}

func TestFilter_Match(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		value  any
		want   bool
	}{
		{"string equal", Filter{Operand: "=", Target: "dagger"}, "dagger", true},
		{"string not equal", Filter{Operand: "=", Target: "dagger", Negate: true}, "dagger", false},
		{"fold case", Filter{Operand: "~", Target: "DAGGER"}, "dagger", true},
		{"prefix", Filter{Operand: "^", Target: "dag"}, "dagger", true},
		{"contains", Filter{Operand: "@", Target: "gg"}, "dagger", true},
		{"regex", Filter{Operand: "/", Target: `^d.*r$`}, "dagger", true},
		{"bad regex", Filter{Operand: "/", Target: `(`}, "dagger", false},
		{"bool", Filter{Operand: "=", Target: "true"}, true, true},
		{"number greater", Filter{Operand: ">", Target: "100"}, float64(250), true},
		{"number less", Filter{Operand: "<", Target: "100"}, float64(250), false},
		{"number equal negated", Filter{Operand: "=", Target: "12", Negate: true}, float64(12), false},
		{"number prefix as text", Filter{Operand: "^", Target: "17"}, float64(17000), true},
		{"list contains", Filter{Operand: "@", Target: "java"}, []any{"android", "java"}, true},
		{"list not contains", Filter{Operand: "@", Target: "go", Negate: true}, []any{"java"}, true},
		{"object has key", Filter{Operand: "@", Target: "key"}, map[string]any{"key": "mit"}, true},
		{"list with equal", Filter{Operand: "=", Target: "java"}, []any{"java"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.value))
		})
	}
}

func TestFilterDataset(t *testing.T) {
	var al attrs.AttrList
	require.NoError(t, al.Set("name,stargazers_count:stars,license.key:license,!topics"))

	tests := []struct {
		name string
		spec string
		want []string
	}{
		{"no filter", "", []string{"episodes.dart", "cpp-netlib", "dagger", "kratu"}},
		{"by title", "license=apache-2.0", []string{"dagger", "kratu"}},
		{"negated keeps missing", "license!=apache-2.0", []string{"episodes.dart", "cpp-netlib"}},
		{"numeric", "stars>100", []string{"dagger", "kratu"}},
		{"raw json path", "fork=true", []string{"cpp-netlib", "dagger"}},
		{"excluded attr still filters", "topics@java", []string{"dagger", "kratu"}},
		{"all must match", "license=apache-2.0,fork=false", []string{"kratu"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := FilterDataset(gjson.Parse(reposJSON), al, tt.spec)

			var names []string
			for _, r := range rows {
				names = append(names, r["name"].(string))
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilterDataset_Projection(t *testing.T) {
	var al attrs.AttrList
	require.NoError(t, al.Set("name,license.key:license"))

	rows := FilterDataset(gjson.Parse(reposJSON), al, "name=episodes.dart")
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]any{"name": "episodes.dart", "license": nil}, rows[0])
}
