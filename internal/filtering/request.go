// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filtering

import (
	"github.com/tfctl/resfilter/internal/build"
)

// Request carries the inputs of a single filtering pass.
type Request struct {
	project *build.Project
	session *build.Session

	// filters also backs FileFilters.
	filters []string

	// escapeWindowsPaths also backs EscapedBackslashesInFilePath.
	escapeWindowsPaths bool

	encoding string

	// Expressions that refer to project metadata during interpolation, such
	// as "pom" in ${pom.version}.
	projectStartExpressions []string

	// Marker that suppresses interpolation of the placeholder it prefixes:
	// with "\", "\${foo}" is emitted as "${foo}".
	escapeString string

	additionalProperties build.Properties

	injectProjectBuildFilters bool

	// Never nil or empty.
	delimiters DelimiterSet
}

// NewRequest returns a request holding only the defaults.
func NewRequest() *Request {
	r := &Request{}
	r.initDefaults()
	return r
}

// NewRequestFor returns a request with defaults applied and the given project,
// filters, encoding and session stored.
func NewRequestFor(project *build.Project, filters []string, encoding string, session *build.Session) *Request {
	r := NewRequest()
	r.project = project
	r.filters = filters
	r.encoding = encoding
	r.session = session
	return r
}

func (r *Request) initDefaults() {
	r.escapeWindowsPaths = true
	r.projectStartExpressions = []string{"pom", "project"}
	r.delimiters = defaultDelimiters()
}

// Project returns the project the request filters resources for.
func (r *Request) Project() *build.Project { return r.project }

// SetProject sets the project.
func (r *Request) SetProject(p *build.Project) { r.project = p }

// Session returns the build session.
func (r *Request) Session() *build.Session { return r.session }

// SetSession sets the build session.
func (r *Request) SetSession(s *build.Session) { r.session = s }

// Filters returns the explicit filter files in the order given.
func (r *Request) Filters() []string { return r.filters }

// SetFilters replaces the explicit filter files.
func (r *Request) SetFilters(filters []string) { r.filters = filters }

// FileFilters is an alias of Filters.
func (r *Request) FileFilters() []string { return r.Filters() }

// SetFileFilters is an alias of SetFilters.
func (r *Request) SetFileFilters(filters []string) { r.SetFilters(filters) }

// EscapeWindowsPaths reports whether backslashes in Windows paths are escaped
// when interpolated.
func (r *Request) EscapeWindowsPaths() bool { return r.escapeWindowsPaths }

// SetEscapeWindowsPaths turns Windows path escaping on or off.
func (r *Request) SetEscapeWindowsPaths(escape bool) { r.escapeWindowsPaths = escape }

// EscapedBackslashesInFilePath is an alias of EscapeWindowsPaths.
func (r *Request) EscapedBackslashesInFilePath() bool { return r.EscapeWindowsPaths() }

// SetEscapedBackslashesInFilePath is an alias of SetEscapeWindowsPaths.
func (r *Request) SetEscapedBackslashesInFilePath(escape bool) { r.SetEscapeWindowsPaths(escape) }

// Encoding returns the resource encoding exactly as it was set. It is not
// checked against known charsets.
func (r *Request) Encoding() string { return r.encoding }

// SetEncoding sets the resource encoding.
func (r *Request) SetEncoding(encoding string) { r.encoding = encoding }

// ProjectStartExpressions returns the expression prefixes that resolve against
// the project.
func (r *Request) ProjectStartExpressions() []string { return r.projectStartExpressions }

// SetProjectStartExpressions replaces the start expressions wholesale. A nil
// slice is stored as given.
func (r *Request) SetProjectStartExpressions(exprs []string) { r.projectStartExpressions = exprs }

// EscapeString returns the string that suppresses interpolation of the
// expression following it. Empty means no escaping.
func (r *Request) EscapeString() string { return r.escapeString }

// SetEscapeString sets the escape string.
func (r *Request) SetEscapeString(escape string) { r.escapeString = escape }

// AdditionalProperties returns the properties that supplement the project,
// session and filter sources.
func (r *Request) AdditionalProperties() build.Properties { return r.additionalProperties }

// SetAdditionalProperties replaces the additional properties.
func (r *Request) SetAdditionalProperties(props build.Properties) { r.additionalProperties = props }

// InjectProjectBuildFilters reports whether the project build filters are
// appended to the explicit ones.
func (r *Request) InjectProjectBuildFilters() bool { return r.injectProjectBuildFilters }

// SetInjectProjectBuildFilters turns build filter injection on or off.
func (r *Request) SetInjectProjectBuildFilters(inject bool) { r.injectProjectBuildFilters = inject }

// Delimiters returns the delimiter set. It is never nil or empty.
func (r *Request) Delimiters() DelimiterSet { return r.delimiters }

// SetDelimiters stores a non-empty set as-is. A nil or empty set resets the
// delimiters to exactly {DefaultDelimiter}. The reset always allocates a new
// set so a set previously handed in by a caller is left untouched.
func (r *Request) SetDelimiters(delimiters DelimiterSet) {
	if len(delimiters) == 0 {
		r.delimiters = NewDelimiterSet(DefaultDelimiter)
		return
	}
	r.delimiters = delimiters
}

// EffectiveFilters returns the filters followed by the project's build
// filters when build filter injection is on. Order is preserved and nothing
// is de-duplicated.
func (r *Request) EffectiveFilters() []string {
	if !r.injectProjectBuildFilters || r.project == nil {
		return r.filters
	}

	buildFilters := r.project.BuildFilters()
	effective := make([]string, 0, len(r.filters)+len(buildFilters))
	effective = append(effective, r.filters...)
	effective = append(effective, buildFilters...)
	return effective
}
