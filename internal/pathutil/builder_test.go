package pathutil

import "testing"

func TestPathBuilder_Basic(t *testing.T) {
	p := &PathBuilder{}
	p.Push("components")
	p.Push("schemas")
	p.Push("Pet")

	if got, want := p.String(), "components.schemas.Pet"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := p.Pointer(), "/components/schemas/Pet"; got != want {
		t.Errorf("Pointer() = %q, want %q", got, want)
	}
}

func TestPathBuilder_WithIndex(t *testing.T) {
	p := &PathBuilder{}
	p.Push("paths")
	p.Push("/pets/{id}")
	p.Push("get")
	p.Push("parameters")
	p.PushIndex(0)
	p.Push("schema")

	if got, want := p.String(), "paths./pets/{id}.get.parameters[0].schema"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := p.Pointer(), "/paths/~1pets~1{id}/get/parameters/0/schema"; got != want {
		t.Errorf("Pointer() = %q, want %q", got, want)
	}
}

func TestPathBuilder_PushPop(t *testing.T) {
	p := &PathBuilder{}
	p.Push("paths")
	p.Push("/pets")
	p.Push("get")
	p.Pop()
	p.Push("post")

	if got, want := p.String(), "paths./pets.post"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	p.Pop()
	p.Pop()
	p.Pop()
	p.Pop() // popping an empty builder is a no-op
	if p.Len() != 0 || p.String() != "" || p.Pointer() != "" {
		t.Errorf("expected empty builder, got %q", p.String())
	}
}

func TestPathBuilder_PopIndexKeepsLength(t *testing.T) {
	p := &PathBuilder{}
	p.Push("parameters")
	p.PushIndex(12)
	p.Pop()
	p.Push("x")
	if got, want := p.String(), "parameters.x"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if p.length != len("parameters.x") {
		t.Errorf("length = %d, want %d", p.length, len("parameters.x"))
	}
}

func TestPathBuilder_Last(t *testing.T) {
	p := &PathBuilder{}
	if p.Last() != "" {
		t.Errorf("Last() on empty builder = %q", p.Last())
	}
	p.Push("info")
	p.Push("title")
	if p.Last() != "title" {
		t.Errorf("Last() = %q, want title", p.Last())
	}
}

func TestPathBuilder_Reset(t *testing.T) {
	p := &PathBuilder{}
	p.Push("a")
	p.Push("b")
	p.Reset()
	p.Push("c")
	if got := p.String(); got != "c" {
		t.Errorf("String() after Reset = %q, want c", got)
	}
}

func TestPointerTokenEscaping(t *testing.T) {
	tests := []struct {
		raw     string
		escaped string
	}{
		{"Pet", "Pet"},
		{"/pets", "~1pets"},
		{"a~b", "a~0b"},
		{"~/", "~0~1"},
		{"x-~1", "x-~01"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := EscapePointerToken(tt.raw); got != tt.escaped {
				t.Errorf("EscapePointerToken(%q) = %q, want %q", tt.raw, got, tt.escaped)
			}
			if got := UnescapePointerToken(tt.escaped); got != tt.raw {
				t.Errorf("UnescapePointerToken(%q) = %q, want %q", tt.escaped, got, tt.raw)
			}
		})
	}
}

func TestPool(t *testing.T) {
	p := Get()
	p.Push("leftover")
	Put(p)

	q := Get()
	defer Put(q)
	if q.Len() != 0 {
		t.Errorf("pooled builder not reset: %q", q.String())
	}

	Put(nil) // must not panic
}

func TestBracketKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"/pets", `['/pets']`},
		{"application/json", `['application/json']`},
		{"", `['']`},
		{"/o'brien", `['/o\'brien']`},
		{`a\b`, `['a\\b']`},
		{`\'`, `['\\\'']`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BracketKey(tt.name); got != tt.want {
				t.Errorf("BracketKey(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
