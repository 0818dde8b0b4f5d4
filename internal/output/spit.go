// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/resfilter/internal/attrs"
	"github.com/tfctl/resfilter/internal/config"
	"github.com/tfctl/resfilter/internal/log"
)

// Formats accepted by --output.
var Formats = []string{"text", "json", "yaml", "raw"}

// Options controls how a snapshot is emitted.
type Options struct {
	Format  string
	Sort    string
	Titles  bool
	Color   bool
	Padding int
	Header  string
}

// OptionsFromCommand reads the output flags of a parsed command. Flags the
// command does not define keep their zero value.
func OptionsFromCommand(cmd *cli.Command) Options {
	opts := Options{
		Format:  cmd.String("output"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: int(cmd.Int("padding")),
	}
	if h, ok := cmd.Metadata["header"].(string); ok {
		opts.Header = h
	}
	return opts
}

// row is one attr/value pair of the report.
type row struct {
	Attr  string
	Value interface{}
}

// SliceDiceSpit extracts the requested attributes from a request snapshot,
// transforms and sorts them, and renders them to w in the selected format.
// When no attribute is included, every top-level snapshot key is reported.
func SliceDiceSpit(raw []byte, al attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	// If raw, just dump it and go home.
	if opts.Format == "raw" {
		_, err := w.Write(raw)
		return err
	}

	if !gjson.ValidBytes(raw) {
		return errors.New("invalid request snapshot")
	}

	rows := extract(raw, al)
	if opts.Sort != "" {
		SortRows(rows, opts.Sort)
	}

	switch opts.Format {
	case "json":
		return writeJSON(rows, w)
	case "yaml":
		ms := make(yaml.MapSlice, 0, len(rows))
		for _, r := range rows {
			ms = append(ms, yaml.MapItem{Key: r.Attr, Value: r.Value})
		}
		out, err := yaml.Marshal(ms)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "", "text":
		TableWriter(rows, opts, w)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", opts.Format)
	}
}

// extract pulls every included attr out of the snapshot and applies its
// transform.
func extract(raw []byte, al attrs.AttrList) []row {
	included := al.Included()
	if len(included) == 0 {
		gjson.ParseBytes(raw).ForEach(func(key, _ gjson.Result) bool {
			included = append(included, attrs.Attr{Key: key.String(), OutputKey: key.String(), Include: true})
			return true
		})
	}

	rows := make([]row, 0, len(included))
	for _, attr := range included {
		result := gjson.GetBytes(raw, attr.Key)
		var value interface{}
		if result.Exists() {
			value = result.Value()
		} else {
			log.Debugf("attr not in snapshot: key=%s", attr.Key)
		}
		rows = append(rows, row{Attr: attr.OutputKey, Value: attr.Transform(value)})
	}
	return rows
}

// writeJSON writes the rows as a single object, keeping row order.
func writeJSON(rows []row, w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(r.Attr)
		v, err := json.Marshal(r.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", r.Attr, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')

	_, err := w.Write(pretty.Pretty(buf.Bytes()))
	return err
}

// TableWriter renders the rows as a two-column attr/value table honoring
// color, titles and padding options.
func TableWriter(rows []row, opts Options, w io.Writer) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color && isTerminal(w) {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Attr, InterfaceToString(r.Value, "-")})
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	pad := opts.Padding
	if pad <= 0 {
		pad = 2
	}
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
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
		Headers().
		Rows(cells...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers("ATTR", "VALUE").BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// InterfaceToString converts a snapshot value to its display form. Lists of
// scalars are comma joined; objects are rendered as compact JSON. A custom
// empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch value := value.(type) {
	case nil:
		return emptyValue[0]
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case []interface{}:
		if len(value) == 0 {
			return emptyValue[0]
		}
		parts := make([]string, 0, len(value))
		for _, v := range value {
			switch v.(type) {
			case map[string]interface{}, []interface{}:
				return marshalCompact(value)
			}
			parts = append(parts, InterfaceToString(v))
		}
		return strings.Join(parts, ", ")
	default:
		return marshalCompact(value)
	}
}

func marshalCompact(value interface{}) string {
	jsonBytes, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(jsonBytes)
}

// isTerminal reports whether w is a terminal. Colors are never written to
// pipes or files.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme. If not found, pick a
	// reasonable default based on terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil && colorCfg != "" {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
