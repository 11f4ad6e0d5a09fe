// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/staranto/ghorg/internal/attrs"
	"github.com/staranto/ghorg/internal/config"
	"github.com/staranto/ghorg/internal/filters"
)

// Formats accepted by --output.
var Formats = []string{"text", "json", "yaml", "raw"}

// Options carry the output related flags of a command.
type Options struct {
	Format string
	Filter string
	Sort   string
	Titles bool
	Color  bool
}

// SliceDiceSpit filters, transforms, sorts and renders the rows found in raw
// (a JSON array) according to attrs and opts.
func SliceDiceSpit(raw []byte, al attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	if opts.Format == "raw" {
		_, err := w.Write(raw)
		return err
	}

	rows := filters.FilterDataset(gjson.ParseBytes(raw), al, opts.Filter)

	for _, row := range rows {
		for _, attr := range al {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(rows, opts.Sort)

	// Excluded attrs were only needed up to here.
	included := al.Included()
	for _, row := range rows {
		for _, attr := range al {
			if !attr.Include {
				delete(row, attr.OutputKey)
			}
		}
	}

	switch opts.Format {
	case "json":
		if rows == nil {
			rows = []map[string]any{}
		}
		return writeJSON(w, rows)
	case "yaml":
		return writeYAML(w, rows)
	default:
		return TableWriter(rows, included, opts, w)
	}
}

// Document renders a single decoded JSON value. Scalars are printed bare in
// text format; everything else is printed as indented JSON.
func Document(v any, format string, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	switch format {
	case "yaml":
		return writeYAML(w, v)
	case "raw":
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "json":
		return writeJSON(w, v)
	default:
		switch v.(type) {
		case map[string]any, []any:
			return writeJSON(w, v)
		default:
			_, err := fmt.Fprintln(w, InterfaceToString(v, "null"))
			return err
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeYAML(w io.Writer, v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// TableWriter renders rows as an aligned text table.
func TableWriter(rows []map[string]any, included []attrs.Attr, opts Options, w io.Writer) error {
	if len(rows) == 0 {
		return nil
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 2)

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cell := make([]string, 0, len(included))
		for _, attr := range included {
			cell = append(cell, InterfaceToString(row[attr.OutputKey], "-"))
		}
		cells = append(cells, cell)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(pad)
			}
			return style
		}).
		Rows(cells...)

	if opts.Titles {
		headers := make([]string, 0, len(included))
		for _, attr := range included {
			headers = append(headers, attr.OutputKey)
		}
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(key+".title", "#f6be00")
	even, _ = config.GetString(key+".even", "#ffffff")
	odd, _ = config.GetString(key+".odd", "#00c8f0")
	return
}

// ColorDefault is the --color default: on for terminals unless NO_COLOR is
// set.
func ColorDefault(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// SortDataset sorts rows in place by a comma separated list of keys. A
// leading - sorts descending and a leading ! compares strings case
// sensitively.
func SortDataset(rows []map[string]any, spec string) {
	if spec == "" {
		return
	}

	type sortKey struct {
		key           string
		desc          bool
		caseSensitive bool
	}

	var keys []sortKey
	for _, field := range strings.Split(spec, ",") {
		k := sortKey{key: strings.TrimSpace(field)}
		for len(k.key) > 0 && (k.key[0] == '-' || k.key[0] == '!') {
			if k.key[0] == '-' {
				k.desc = true
			} else {
				k.caseSensitive = true
			}
			k.key = k.key[1:]
		}
		if k.key != "" {
			keys = append(keys, k)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compare(rows[i][k.key], rows[j][k.key], k.caseSensitive)
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	log.Debugf("sorted %d rows by %v", len(rows), keys)
}

// compare orders nils first, numbers numerically and anything else as text.
func compare(a, b any, caseSensitive bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if fa, ok := a.(float64); ok {
		if fb, ok := b.(float64); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}

	sa, sb := InterfaceToString(a), InterfaceToString(b)
	if !caseSensitive {
		sa, sb = strings.ToLower(sa), strings.ToLower(sb)
	}
	return strings.Compare(sa, sb)
}

// InterfaceToString converts a decoded JSON value to display text. nil
// becomes the optional empty value.
func InterfaceToString(value any, emptyValue ...string) string {
	if value == nil {
		if len(emptyValue) > 0 {
			return emptyValue[0]
		}
		return ""
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
