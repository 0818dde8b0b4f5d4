// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/resfilter/internal/log"
)

// IdenticalMessage is written when two requests do not differ.
const IdenticalMessage = "The requests are identical."

// DefaultIgnore lists the snapshot paths that change on every run.
var DefaultIgnore = []string{"session.startTime"}

// Diff compares two request snapshots and writes the differences to w. Paths
// in ignore (dotted, e.g. "session.startTime") are removed from both sides
// before comparing. It reports whether the requests differ.
func Diff(w io.Writer, previous, current []byte, ignore []string, coloring bool) (bool, error) {
	if len(previous) == 0 || len(current) == 0 {
		return false, errors.New("nothing to compare: empty request snapshot")
	}
	log.Debugf("diff sizes: previous=%d current=%d", len(previous), len(current))

	var left, right map[string]interface{}
	if err := json.Unmarshal(previous, &left); err != nil {
		return false, fmt.Errorf("failed to unmarshal previous request: %w", err)
	}
	if err := json.Unmarshal(current, &right); err != nil {
		return false, fmt.Errorf("failed to unmarshal current request: %w", err)
	}

	for _, path := range ignore {
		if path = strings.TrimSpace(path); path != "" {
			deletePath(left, path)
			deletePath(right, path)
		}
	}

	delta := gojsondiff.New().CompareObjects(left, right)
	if !delta.Modified() {
		fmt.Fprintln(w, IdenticalMessage)
		return false, nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	}
	diffString, err := formatter.NewAsciiFormatter(left, config).Format(delta)
	if err != nil {
		return true, fmt.Errorf("failed to format diff: %w", err)
	}

	fmt.Fprint(w, diffString)
	return true, nil
}

// deletePath removes a dotted path from a decoded JSON object. Missing
// segments are ignored.
func deletePath(doc map[string]interface{}, path string) {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		delete(doc, head)
		return
	}
	if child, ok := doc[head].(map[string]interface{}); ok {
		deletePath(child, rest)
	}
}
