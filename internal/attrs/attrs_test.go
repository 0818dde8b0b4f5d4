// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"embed"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// testSetCase represents a single test case for TestAttrList_Set.
type testSetCase struct {
	Name      string `yaml:"name"`
	Initial   []Attr `yaml:"initial"`
	Value     string `yaml:"value"`
	WantLen   int    `yaml:"wantLen"`
	WantAttrs []Attr `yaml:"wantAttrs"`
	WantErr   bool   `yaml:"wantErr"`
}

// testTransformCase represents a single test case for TestAttr_Transform.
type testTransformCase struct {
	Name          string      `yaml:"name"`
	TransformSpec string      `yaml:"transformSpec"`
	Input         interface{} `yaml:"input"`
	Want          interface{} `yaml:"want"`
}

func loadCases[T any](t *testing.T, name string) []T {
	t.Helper()
	data, err := testDataFS.ReadFile("testdata/" + name)
	require.NoError(t, err)

	var cases []T
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)
	return cases
}

func TestAttrList_Set(t *testing.T) {
	for _, tc := range loadCases[testSetCase](t, "set.yaml") {
		t.Run(tc.Name, func(t *testing.T) {
			al := AttrList(tc.Initial)
			err := al.Set(tc.Value)
			if tc.WantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, al, tc.WantLen)
			if tc.WantAttrs != nil {
				assert.Equal(t, AttrList(tc.WantAttrs), al)
			}
		})
	}
}

func TestAttr_Transform(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	for _, tc := range loadCases[testTransformCase](t, "transform.yaml") {
		t.Run(tc.Name, func(t *testing.T) {
			a := Attr{Key: "k", TransformSpec: tc.TransformSpec}
			assert.Equal(t, tc.Want, a.Transform(tc.Input))
		})
	}
}

func TestAttr_TransformLocalTime(t *testing.T) {
	a := Attr{TransformSpec: "t"}
	got := a.Transform("2026-01-01T12:00:00Z")

	want := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC).In(time.Local).Format("2006-01-02T15:04:05MST")
	assert.Equal(t, want, got)
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set("*::u,encoding,escapeString::l"))

	al.SetGlobalTransformSpec()

	assert.Equal(t, "u", al[0].TransformSpec, "the global attr itself is unchanged")
	assert.Equal(t, "u,", al[1].TransformSpec)
	assert.Equal(t, "u,l", al[2].TransformSpec)

	e := al[1]
	assert.Equal(t, "UTF-8", e.Transform("utf-8"))
	s := al[2]
	assert.Equal(t, "x", s.Transform("X"))
}

func TestAttrList_SetGlobalTransformSpec_None(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set("encoding::l"))
	al.SetGlobalTransformSpec()
	assert.Equal(t, "l", al[0].TransformSpec)
}

func TestAttrList_Included(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set("*::u,encoding,!filters,escapeString"))

	included := al.Included()
	require.Len(t, included, 2)
	assert.Equal(t, "encoding", included[0].Key)
	assert.Equal(t, "escapeString", included[1].Key)
}

func TestAttrList_String(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set("encoding:enc:u,!filters"))
	assert.Equal(t, "encoding:enc:u,!filters:filters:", al.String())
}
