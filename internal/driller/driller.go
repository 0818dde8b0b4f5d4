// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var segment = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+|\*)?\])?$`)

// IsBracketPath reports whether path uses the [n] or [*] index syntax.
func IsBracketPath(path string) bool {
	return strings.Contains(path, "[")
}

// Drill navigates a request snapshot with a dot path whose segments may carry
// an array index, as in "delimiters[1].begin". A segment naming an array
// without an index unwraps a single element list, and [] or [*] keeps the
// whole list.
func Drill(doc []byte, path string) gjson.Result {
	current := gjson.ParseBytes(doc)

	for _, p := range strings.Split(path, ".") {
		matches := segment.FindStringSubmatch(p)
		if len(matches) == 0 {
			return gjson.Result{}
		}

		key := matches[1]

		// matches[2] is the [], which we can throw away.

		index := -1
		whole := matches[2] != "" && (matches[3] == "" || matches[3] == "*")
		if matches[3] != "" && matches[3] != "*" {
			i, err := strconv.Atoi(matches[3])
			if err != nil {
				return gjson.Result{}
			}
			index = i
		}

		val := current.Get(key)
		if val.IsArray() && !whole {
			arr := val.Array()
			switch {
			case index == -1:
				if len(arr) == 1 {
					val = arr[0]
				}
				// Otherwise do nothing. We'll return the whole list.
			case index < len(arr):
				val = arr[index]
			default:
				return gjson.Result{}
			}
		}

		current = val
	}

	return current
}
