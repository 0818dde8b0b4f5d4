// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filtering

import (
	"os"
	"sort"
	"strings"
)

// DefaultDelimiter is the delimiter a request falls back to when it is given
// an empty delimiter set.
const DefaultDelimiter = "${*}"

// DelimiterSet is an unordered set of delimiter tokens such as "${*}" or "@".
// A "*" inside a token separates the begin and end markers; a token without
// "*" uses the same marker on both sides.
type DelimiterSet map[string]struct{}

// NewDelimiterSet returns a set holding the given tokens.
func NewDelimiterSet(tokens ...string) DelimiterSet {
	set := make(DelimiterSet, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// defaultDelimiters is built fresh on every call so that requests never
// share a set.
func defaultDelimiters() DelimiterSet {
	return NewDelimiterSet(DefaultDelimiter, "@")
}

// Contains reports whether token is in the set.
func (d DelimiterSet) Contains(token string) bool {
	_, ok := d[token]
	return ok
}

// Len returns the number of tokens.
func (d DelimiterSet) Len() int { return len(d) }

// Sorted returns the tokens in lexical order.
func (d DelimiterSet) Sorted() []string {
	tokens := make([]string, 0, len(d))
	for t := range d {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// String renders the set as a comma-separated, sorted token list.
func (d DelimiterSet) String() string {
	return strings.Join(d.Sorted(), ",")
}

// DelimiterSpec is a delimiter token split into its begin and end markers.
type DelimiterSpec struct {
	Token string `json:"token" yaml:"token"`
	Begin string `json:"begin" yaml:"begin"`
	End   string `json:"end" yaml:"end"`
}

// ParseDelimiterSpec splits a token on its first "*". "${*}" yields "${" and
// "}", "@" yields "@" and "@".
func ParseDelimiterSpec(token string) DelimiterSpec {
	begin, end, found := strings.Cut(token, "*")
	if !found {
		end = begin
	}
	return DelimiterSpec{Token: token, Begin: begin, End: end}
}

// Specs returns the parsed spec of every token, in sorted token order.
func (d DelimiterSet) Specs() []DelimiterSpec {
	specs := make([]DelimiterSpec, 0, len(d))
	for _, t := range d.Sorted() {
		specs = append(specs, ParseDelimiterSpec(t))
	}
	return specs
}

// ParseDelimiters builds a set from a separated token list. The separator is
// "," unless RESFILTER_DELIMITER_SEP overrides it, which is needed when a
// token itself contains a comma. Blank tokens are dropped, so an empty spec
// yields an empty set.
func ParseDelimiters(spec string) DelimiterSet {
	sep := ","
	if s, ok := os.LookupEnv("RESFILTER_DELIMITER_SEP"); ok && s != "" {
		sep = s
	}

	set := DelimiterSet{}
	for _, t := range strings.Split(spec, sep) {
		if t = strings.TrimSpace(t); t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}
