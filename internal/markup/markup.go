// Package markup builds HTML fragments. Every interpolated value goes
// through Escape; only markup produced by this module is written raw.
package markup

import (
	"fmt"
	"html/template"
	"strings"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces &, <, >, " and ' with their entities.
func Escape(s string) string {
	return escaper.Replace(s)
}

// EscapeValue formats v with %v and escapes the result.
func EscapeValue(v any) string {
	if s, ok := v.(string); ok {
		return Escape(s)
	}
	return Escape(fmt.Sprint(v))
}

// Builder accumulates a fragment.
type Builder struct {
	sb strings.Builder
}

// Raw appends trusted markup.
func (b *Builder) Raw(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// Text appends v escaped.
func (b *Builder) Text(v any) *Builder {
	b.sb.WriteString(EscapeValue(v))
	return b
}

// Attr appends ` name="value"` with value escaped.
func (b *Builder) Attr(name string, v any) *Builder {
	b.sb.WriteString(" ")
	b.sb.WriteString(name)
	b.sb.WriteString(`="`)
	b.sb.WriteString(EscapeValue(v))
	b.sb.WriteString(`"`)
	return b
}

// String returns the fragment built so far.
func (b *Builder) String() string { return b.sb.String() }

// HTML returns the fragment for embedding in an html/template page.
func (b *Builder) HTML() template.HTML { return template.HTML(b.sb.String()) }

// Repeat concatenates n copies of fragment. n <= 0 yields "".
func Repeat(fragment string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(fragment, n)
}
