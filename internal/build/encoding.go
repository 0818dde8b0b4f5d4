// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// ResolveEncoding returns the canonical name for an encoding label and
// whether the label is known. Unknown or empty labels come back unchanged with
// known=false. This is informational only; callers must not reject a request
// because of it.
func ResolveEncoding(label string) (canonical string, known bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", false
	}

	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return label, false
	}

	// Prefer the MIME name ("ISO-8859-1") over the registry name
	// ("ISO_8859-1:1987") when one exists.
	if name, err := ianaindex.MIME.Name(enc); err == nil && name != "" {
		return name, true
	}
	name, err := ianaindex.IANA.Name(enc)
	if err != nil {
		return label, false
	}
	return name, true
}
