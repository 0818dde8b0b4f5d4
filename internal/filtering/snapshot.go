// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filtering

import (
	"encoding/json"

	"github.com/tfctl/resfilter/internal/build"
)

// Snapshot is a serializable, deterministic view of a Request. Slices are
// copied so that later changes to the request do not leak into a snapshot
// already taken.
type Snapshot struct {
	Project                   *build.Project   `json:"project"`
	Session                   *build.Session   `json:"session"`
	Filters                   []string         `json:"filters"`
	EffectiveFilters          []string         `json:"effectiveFilters"`
	Encoding                  string           `json:"encoding"`
	EncodingCanonical         string           `json:"encodingCanonical,omitempty"`
	EncodingKnown             bool             `json:"encodingKnown"`
	EscapeString              string           `json:"escapeString"`
	EscapeWindowsPaths        bool             `json:"escapeWindowsPaths"`
	InjectProjectBuildFilters bool             `json:"injectProjectBuildFilters"`
	ProjectStartExpressions   []string         `json:"projectStartExpressions"`
	Delimiters                []DelimiterSpec  `json:"delimiters"`
	AdditionalProperties      build.Properties `json:"additionalProperties"`
}

// Snapshot captures the current state of the request.
func (r *Request) Snapshot() Snapshot {
	s := Snapshot{
		Project:                   r.project,
		Session:                   r.session,
		Filters:                   cloneStrings(r.filters),
		EffectiveFilters:          cloneStrings(r.EffectiveFilters()),
		Encoding:                  r.encoding,
		EscapeString:              r.escapeString,
		EscapeWindowsPaths:        r.escapeWindowsPaths,
		InjectProjectBuildFilters: r.injectProjectBuildFilters,
		ProjectStartExpressions:   cloneStrings(r.projectStartExpressions),
		Delimiters:                r.delimiters.Specs(),
		AdditionalProperties:      r.additionalProperties.Merge(),
	}
	if canonical, known := build.ResolveEncoding(r.encoding); known {
		s.EncodingCanonical = canonical
		s.EncodingKnown = true
	}
	return s
}

// MarshalJSON renders the request through its Snapshot.
func (r *Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Snapshot())
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
