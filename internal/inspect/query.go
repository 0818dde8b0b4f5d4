// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/tfctl/resfilter/internal/driller"
)

// NoResults is returned when a query matches nothing.
const NoResults = "No results found."

// Evaluate runs one console query against the snapshot and returns the text
// to display.
//
//   - "/expr" or anything with balanced parentheses is an HCL expression
//   - ".path" prints the JSON found at a gjson path
//   - "path" lists the keys, elements or value found at a gjson path
//
// Paths written with [n] or [*] indexes are resolved by the driller instead
// of gjson.
func Evaluate(doc []byte, query string) string {
	query = strings.TrimSpace(query)

	if strings.HasPrefix(query, "/") {
		return evaluateFunction(strings.TrimPrefix(query, "/"), doc)
	}
	if hasBalancedParens(query) {
		return evaluateFunction(query, doc)
	}

	if result := handleSpecialQueries(doc, query); result != "" {
		return result
	}

	if strings.HasPrefix(query, ".") {
		path := strings.TrimPrefix(query, ".")
		if path == "" {
			return strings.TrimSuffix(string(pretty.Pretty(doc)), "\n")
		}
		r := get(doc, path)
		if !r.Exists() {
			return NoResults
		}
		return strings.TrimSuffix(string(pretty.Pretty([]byte(r.Raw))), "\n")
	}

	r := get(doc, query)
	if !r.Exists() {
		return NoResults
	}
	return listResult(r)
}

func get(doc []byte, path string) gjson.Result {
	if driller.IsBracketPath(path) {
		return driller.Drill(doc, path)
	}
	return gjson.GetBytes(doc, path)
}

// listResult renders an object as its sorted keys, an array as one element
// per line, and a scalar as its value.
func listResult(r gjson.Result) string {
	var lines []string
	switch {
	case r.IsObject():
		r.ForEach(func(key, _ gjson.Result) bool {
			lines = append(lines, key.String())
			return true
		})
		sort.Strings(lines)
	case r.IsArray():
		for _, item := range r.Array() {
			if item.IsObject() || item.IsArray() {
				lines = append(lines, string(pretty.Ugly([]byte(item.Raw))))
			} else {
				lines = append(lines, item.String())
			}
		}
	default:
		if r.Type == gjson.Null {
			return "null"
		}
		return r.String()
	}

	if len(lines) == 0 {
		return NoResults
	}
	return strings.Join(lines, "\n")
}

// hasBalancedParens checks if a string has balanced parentheses.
func hasBalancedParens(s string) bool {
	openCount := 0
	closeCount := 0

	for _, char := range s {
		switch char {
		case '(':
			openCount++
		case ')':
			closeCount++
		}
	}

	// Must have at least one pair of parens and they must be balanced
	return openCount > 0 && openCount == closeCount
}

// handleSpecialQueries answers the built-in shortcuts, or returns "".
func handleSpecialQueries(doc []byte, query string) string {
	switch query {
	case "coordinates":
		p := gjson.GetBytes(doc, "project")
		if !p.Exists() || p.Type == gjson.Null {
			return "no project"
		}
		return p.Get("groupId").String() + ":" + p.Get("artifactId").String() + ":" + p.Get("version").String()
	case "delimiters":
		var tokens []string
		for _, d := range gjson.GetBytes(doc, "delimiters.#.token").Array() {
			tokens = append(tokens, d.String())
		}
		return strings.Join(tokens, ", ")
	}
	return ""
}

// decode unmarshals the snapshot for expression evaluation.
func decode(doc []byte) map[string]interface{} {
	var data map[string]interface{}
	if err := json.Unmarshal(doc, &data); err != nil {
		return nil
	}
	return data
}
