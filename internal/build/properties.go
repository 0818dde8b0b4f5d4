// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"sort"
	"strings"

	"github.com/tfctl/resfilter/internal/log"
)

// Properties is a flat key/value property table.
type Properties map[string]string

// ParseProperties turns key=value assignments into Properties. A bare key
// without '=' is set to "true". Entries with an empty key are skipped. Later
// assignments of the same key win.
func ParseProperties(assignments []string) Properties {
	if len(assignments) == 0 {
		return nil
	}

	props := make(Properties, len(assignments))
	for _, a := range assignments {
		key, value, found := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			log.Warnf("ignoring property with empty key: %q", a)
			continue
		}
		if !found {
			value = "true"
		}
		props[key] = value
	}
	return props
}

// Merge returns a new Properties holding p overlaid with each of others in
// order. Neither p nor others are modified. The result is nil only when every
// input is empty.
func (p Properties) Merge(others ...Properties) Properties {
	size := len(p)
	for _, o := range others {
		size += len(o)
	}
	if size == 0 {
		return nil
	}

	merged := make(Properties, size)
	for k, v := range p {
		merged[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			merged[k] = v
		}
	}
	return merged
}

// Keys returns the property names in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
