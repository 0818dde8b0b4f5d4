// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/resfilter/internal/build"
)

func TestNewRequest_Defaults(t *testing.T) {
	constructors := map[string]func() *Request{
		"zero-arg": NewRequest,
		"four-arg": func() *Request { return NewRequestFor(nil, nil, "", nil) },
	}

	for name, ctor := range constructors {
		t.Run(name, func(t *testing.T) {
			r := ctor()
			assert.Equal(t, []string{"pom", "project"}, r.ProjectStartExpressions())
			assert.Equal(t, NewDelimiterSet("${*}", "@"), r.Delimiters())
			assert.True(t, r.EscapeWindowsPaths())
			assert.True(t, r.EscapedBackslashesInFilePath())
			assert.False(t, r.InjectProjectBuildFilters())
			assert.Nil(t, r.Project())
			assert.Nil(t, r.Session())
			assert.Nil(t, r.Filters())
			assert.Empty(t, r.Encoding())
			assert.Empty(t, r.EscapeString())
			assert.Nil(t, r.AdditionalProperties())
		})
	}
}

func TestNewRequest_DefaultsNotShared(t *testing.T) {
	one := NewRequest()
	two := NewRequest()

	one.Delimiters()["#"] = struct{}{}
	one.ProjectStartExpressions()[0] = "changed"

	assert.False(t, two.Delimiters().Contains("#"))
	assert.Equal(t, []string{"pom", "project"}, two.ProjectStartExpressions())
}

func TestNewRequestFor(t *testing.T) {
	project := &build.Project{ArtifactID: "webapp"}
	session := build.NewSession("/work", nil, nil)
	filters := []string{"a.properties", "b.properties"}

	r := NewRequestFor(project, filters, "UTF-8", session)

	assert.Same(t, project, r.Project())
	assert.Equal(t, filters, r.Filters())
	assert.Equal(t, "UTF-8", r.Encoding())
	assert.Same(t, session, r.Session())
	assert.Equal(t, []string{"pom", "project"}, r.ProjectStartExpressions())
	assert.Equal(t, NewDelimiterSet("${*}", "@"), r.Delimiters())
}

func TestSetDelimiters(t *testing.T) {
	tests := []struct {
		name string
		set  DelimiterSet
		want DelimiterSet
	}{
		{name: "nil resets", set: nil, want: NewDelimiterSet("${*}")},
		{name: "empty resets", set: DelimiterSet{}, want: NewDelimiterSet("${*}")},
		{name: "single kept", set: NewDelimiterSet("@"), want: NewDelimiterSet("@")},
		{name: "many kept", set: NewDelimiterSet("#{*}", "@", "%"), want: NewDelimiterSet("#{*}", "@", "%")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRequest()
			r.SetDelimiters(tt.set)
			assert.Equal(t, tt.want, r.Delimiters())
			assert.NotZero(t, r.Delimiters().Len())
		})
	}
}

func TestSetDelimiters_KeepsCallerSet(t *testing.T) {
	r := NewRequest()
	set := NewDelimiterSet("@")
	r.SetDelimiters(set)

	// Same map, so additions through either handle are visible to both.
	set["#"] = struct{}{}
	assert.True(t, r.Delimiters().Contains("#"))
}

func TestSetDelimiters_ResetLeavesNoResidue(t *testing.T) {
	r := NewRequest()
	custom := NewDelimiterSet("@", "#{*}", "%")
	r.SetDelimiters(custom)

	r.SetDelimiters(nil)
	require.Equal(t, 1, r.Delimiters().Len())
	assert.True(t, r.Delimiters().Contains(DefaultDelimiter))

	// The previously supplied set is not cleared by the reset.
	assert.Equal(t, 3, custom.Len())

	r.SetDelimiters(DelimiterSet{})
	assert.Equal(t, NewDelimiterSet(DefaultDelimiter), r.Delimiters())
}

func TestFilterAliases(t *testing.T) {
	lists := [][]string{
		nil,
		{},
		{"a.properties"},
		{"a.properties", "a.properties", "b.properties"},
	}

	for _, l := range lists {
		r := NewRequest()
		r.SetFileFilters(l)
		assert.Equal(t, l, r.Filters())
		assert.Equal(t, l, r.FileFilters())

		r = NewRequest()
		r.SetFilters(l)
		assert.Equal(t, l, r.FileFilters())
	}
}

func TestEscapeWindowsPathsAliases(t *testing.T) {
	for _, b := range []bool{true, false} {
		r := NewRequest()
		r.SetEscapeWindowsPaths(b)
		assert.Equal(t, b, r.EscapedBackslashesInFilePath())

		r = NewRequest()
		r.SetEscapedBackslashesInFilePath(b)
		assert.Equal(t, b, r.EscapeWindowsPaths())
	}
}

func TestPlainAccessors(t *testing.T) {
	r := NewRequest()

	project := &build.Project{ArtifactID: "p"}
	r.SetProject(project)
	assert.Same(t, project, r.Project())

	session := &build.Session{ExecutionRootDir: "/x"}
	r.SetSession(session)
	assert.Same(t, session, r.Session())

	r.SetEncoding("not-a-real-charset")
	assert.Equal(t, "not-a-real-charset", r.Encoding())

	r.SetEscapeString(`\`)
	assert.Equal(t, `\`, r.EscapeString())

	props := build.Properties{"k": "v"}
	r.SetAdditionalProperties(props)
	assert.Equal(t, props, r.AdditionalProperties())

	r.SetInjectProjectBuildFilters(true)
	assert.True(t, r.InjectProjectBuildFilters())

	r.SetProjectStartExpressions([]string{"pom", "pom"})
	assert.Equal(t, []string{"pom", "pom"}, r.ProjectStartExpressions())

	r.SetProjectStartExpressions(nil)
	assert.Nil(t, r.ProjectStartExpressions())

	r.SetProject(nil)
	r.SetSession(nil)
	assert.Nil(t, r.Project())
	assert.Nil(t, r.Session())
}

func TestEffectiveFilters(t *testing.T) {
	project := &build.Project{Build: build.Build{Filters: []string{"build.properties"}}}

	tests := []struct {
		name    string
		project *build.Project
		inject  bool
		filters []string
		want    []string
	}{
		{name: "no injection", project: project, inject: false, filters: []string{"a"}, want: []string{"a"}},
		{name: "injection", project: project, inject: true, filters: []string{"a"}, want: []string{"a", "build.properties"}},
		{name: "injection keeps duplicates", project: project, inject: true, filters: []string{"build.properties"}, want: []string{"build.properties", "build.properties"}},
		{name: "injection without project", project: nil, inject: true, filters: []string{"a"}, want: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRequestFor(tt.project, tt.filters, "", nil)
			r.SetInjectProjectBuildFilters(tt.inject)
			assert.Equal(t, tt.want, r.EffectiveFilters())
			assert.Equal(t, tt.filters, r.Filters(), "filters must not be modified")
		})
	}
}
