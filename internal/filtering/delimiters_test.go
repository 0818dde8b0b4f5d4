// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDelimiterSpec(t *testing.T) {
	tests := []struct {
		token string
		want  DelimiterSpec
	}{
		{token: "${*}", want: DelimiterSpec{Token: "${*}", Begin: "${", End: "}"}},
		{token: "@", want: DelimiterSpec{Token: "@", Begin: "@", End: "@"}},
		{token: "#{*}", want: DelimiterSpec{Token: "#{*}", Begin: "#{", End: "}"}},
		{token: "[[*]]", want: DelimiterSpec{Token: "[[*]]", Begin: "[[", End: "]]"}},
		{token: "*", want: DelimiterSpec{Token: "*", Begin: "", End: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDelimiterSpec(tt.token))
		})
	}
}

func TestParseDelimiters(t *testing.T) {
	tests := []struct {
		name string
		sep  string
		spec string
		want DelimiterSet
	}{
		{name: "empty", spec: "", want: DelimiterSet{}},
		{name: "single", spec: "@", want: NewDelimiterSet("@")},
		{name: "many with blanks", spec: " ${*} , ,@", want: NewDelimiterSet("${*}", "@")},
		{name: "duplicates collapse", spec: "@,@", want: NewDelimiterSet("@")},
		{name: "custom separator", sep: ";", spec: "{,*};@", want: NewDelimiterSet("{,*}", "@")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sep != "" {
				t.Setenv("RESFILTER_DELIMITER_SEP", tt.sep)
			}
			assert.Equal(t, tt.want, ParseDelimiters(tt.spec))
		})
	}
}

func TestDelimiterSet_SortedAndString(t *testing.T) {
	set := NewDelimiterSet("@", "${*}", "#{*}")
	assert.Equal(t, []string{"#{*}", "${*}", "@"}, set.Sorted())
	assert.Equal(t, "#{*},${*},@", set.String())
	assert.Equal(t, 3, set.Len())
	assert.False(t, set.Contains("%"))
}
