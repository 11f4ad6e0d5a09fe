// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/ghorg/internal/attrs"
	"github.com/staranto/ghorg/internal/driller"
)

// filterRegex splits an expression into key, operator and target. Operators
// are one of = ^ ~ < > @ or /, optionally prefixed with '!'.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>@/])(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed expressions are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override.
	delim := ","
	if d, ok := os.LookupEnv("GHORG_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil || parts[1] == "" {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(parts[2], "!")

		filters = append(filters, Filter{
			Key:     parts[1],
			Negate:  negate,
			Operand: strings.TrimPrefix(parts[2], "!"),
			Target:  parts[3],
		})
	}

	return filters
}

// FilterDataset keeps the candidate rows that pass every filter in spec and
// projects each onto attrs. Values are left untransformed.
func FilterDataset(candidates gjson.Result, al attrs.AttrList, spec string) []map[string]any {
	//nolint:prealloc
	var filtered []map[string]any

	filters := BuildFilters(spec)

	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, al, filters) {
			continue
		}

		row := make(map[string]any, len(al))
		for _, attr := range al {
			if attr.Key == "*" {
				continue
			}
			row[attr.OutputKey] = driller.Driller(candidate.Raw, attr.Key).Value()
		}
		filtered = append(filtered, row)
	}

	return filtered
}

// applyFilters returns true if candidate matches all filters. A filter key
// is either an attr title or, failing that, a JSON path into the row.
func applyFilters(candidate gjson.Result, al attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		key := filter.Key
		for _, attr := range al {
			if attr.OutputKey == filter.Key {
				key = attr.Key
				break
			}
		}

		value := driller.Driller(candidate.Raw, key).Value()
		if value == nil {
			if filter.Negate {
				continue
			}
			return false
		}

		if !filter.Match(value) {
			return false
		}
	}

	return true
}

// Match reports whether value satisfies the filter.
func (f Filter) Match(value any) bool {
	switch v := value.(type) {
	case string:
		return f.matchString(v)
	case bool:
		return f.matchString(strconv.FormatBool(v))
	case float64:
		return f.matchNumber(v)
	case []any, map[string]any:
		if f.Operand == "@" {
			return f.matchContains(v)
		}
	}
	log.Error(fmt.Sprintf("unsupported type for %q filtering: %T", f.Operand, value))
	return false
}

// matchContains evaluates '@' against a list or an object's keys.
func (f Filter) matchContains(value any) bool {
	found := false
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if fmt.Sprint(item) == f.Target {
				found = true
				break
			}
		}
	case map[string]any:
		_, found = v[f.Target]
	}
	return found != f.Negate
}

func (f Filter) matchNumber(value float64) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(f.Target), 64)
	if err != nil {
		// Not a number, so compare as text.
		return f.matchString(strconv.FormatFloat(value, 'f', -1, 64))
	}

	var result bool
	switch f.Operand {
	case "=":
		result = value == tgt
	case ">":
		result = value > tgt
	case "<":
		result = value < tgt
	default:
		return f.matchString(strconv.FormatFloat(value, 'f', -1, 64))
	}
	return result != f.Negate
}

func (f Filter) matchString(value string) bool {
	var result bool
	switch f.Operand {
	case "=":
		result = value == f.Target
	case "~":
		result = strings.EqualFold(value, f.Target)
	case "^":
		result = strings.HasPrefix(value, f.Target)
	case ">":
		result = value > f.Target
	case "<":
		result = value < f.Target
	case "@":
		result = strings.Contains(value, f.Target)
	case "/":
		matched, err := regexp.MatchString(f.Target, value)
		if err != nil {
			log.Error("invalid regex: " + f.Target)
			return false
		}
		result = matched
	default:
		log.Error("unsupported filtering operand: " + f.Operand)
		return false
	}
	return result != f.Negate
}
