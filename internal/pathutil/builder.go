package pathutil

import (
	"strconv"
	"strings"
)

// PathBuilder provides efficient incremental path construction.
// Uses push/pop semantics to avoid allocations during traversal.
// The full string is only materialized when String() or Pointer() is called.
type PathBuilder struct {
	segments []segment
	length   int // Pre-calculated length for String() allocation
}

type segment struct {
	name  string
	index bool
}

// Push adds a key segment to the path.
func (p *PathBuilder) Push(name string) {
	p.segments = append(p.segments, segment{name: name})
	if len(p.segments) > 1 {
		p.length++ // For dot separator
	}
	p.length += len(name)
}

// PushIndex adds an array index segment: "[0]", "[1]", etc.
func (p *PathBuilder) PushIndex(i int) {
	name := strconv.Itoa(i)
	p.segments = append(p.segments, segment{name: name, index: true})
	p.length += len(name) + 2 // No dot separator for brackets
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	if last.index {
		p.length -= len(last.name) + 2
		return
	}
	p.length -= len(last.name)
	if len(p.segments) > 0 {
		p.length--
	}
}

// Len returns the number of segments.
func (p *PathBuilder) Len() int {
	return len(p.segments)
}

// Last returns the last key segment, or "" for an empty path.
func (p *PathBuilder) Last() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1].name
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// String materializes the dotted path (e.g., "paths./pets.get.parameters[0]").
func (p *PathBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(p.length)
	for i, seg := range p.segments {
		switch {
		case seg.index:
			b.WriteByte('[')
			b.WriteString(seg.name)
			b.WriteByte(']')
		case i > 0:
			b.WriteByte('.')
			b.WriteString(seg.name)
		default:
			b.WriteString(seg.name)
		}
	}
	return b.String()
}

// Pointer materializes the path as an RFC 6901 JSON pointer
// (e.g., "/paths/~1pets/get/parameters/0"). The root is "".
func (p *PathBuilder) Pointer() string {
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(EscapePointerToken(seg.name))
	}
	return b.String()
}

// BracketKey renders name as a quoted JSONPath member selector (e.g., "['/pets']").
// Backslashes and single quotes in name are escaped with a backslash.
func BracketKey(name string) string {
	if strings.ContainsAny(name, `\'`) {
		name = strings.ReplaceAll(name, `\`, `\\`)
		name = strings.ReplaceAll(name, `'`, `\'`)
	}
	return "['" + name + "']"
}

// EscapePointerToken escapes a single JSON pointer reference token.
func EscapePointerToken(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// UnescapePointerToken reverses EscapePointerToken.
func UnescapePointerToken(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}
