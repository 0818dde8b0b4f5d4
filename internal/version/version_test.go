// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	d := Describe()
	assert.True(t, strings.HasPrefix(d, "resfilter "+Version))
	assert.Contains(t, d, runtime.Version())
	assert.NotEmpty(t, Version)
}
