// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/tfctl/resfilter/internal/log"
)

// maxSchemaDepth limits how far nested structs are walked.
const maxSchemaDepth = 2

var timeType = reflect.TypeOf(time.Time{})

// DumpSchema writes a sorted list of the attribute paths the --attrs flag
// accepts for typ, derived from its json tags.
func DumpSchema(typ reflect.Type, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Request attributes that are directly available to the --attrs flag.
Any gjson path into --output=raw is accepted as well.`)
	fmt.Fprintln(w, "")

	paths := dumpSchemaWalker("", typ, 0)
	if len(paths) == 0 {
		log.Debugf("no tags found for type: %s", typ.Name())
		return
	}
	sort.Strings(paths)

	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
}

// dumpSchemaWalker recursively walks a struct type collecting json tag paths.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []string {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	paths := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		if holder != "" {
			name = holder + "." + name
		}
		paths = append(paths, name)

		ft := field.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft != timeType && depth < maxSchemaDepth {
			paths = append(paths, dumpSchemaWalker(name, ft, depth+1)...)
		}
	}

	return paths
}
