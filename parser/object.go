package parser

// ObjectKind identifies which variant of an Object is active.
type ObjectKind int

const (
	// KindEmpty is an object that holds neither a value nor a reference.
	// It is the zero value and encodes as {}.
	KindEmpty ObjectKind = iota
	// KindValue is an object holding an inline value.
	KindValue
	// KindReference is an object holding a $ref pointer.
	KindReference
)

func (k ObjectKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindReference:
		return "reference"
	default:
		return "empty"
	}
}

// Reference is a $ref pointer with an optional description override.
// The pointer is recorded as written and never resolved.
type Reference struct {
	Ref         string
	Description string
}

// Object is a reference-or-value cell. It holds exactly one of an inline T,
// a Reference, or nothing (Empty).
//
// Decoding tries T first, then Reference, then Empty, against the same
// input. A mapping that carries a $ref key never decodes as T, so a true
// reference always wins over an inline value with overlapping fields.
//
// The zero Object is Empty.
type Object[T any] struct {
	kind  ObjectKind
	value T
	ref   Reference
}

// ValueOf returns an Object holding v.
func ValueOf[T any](v T) Object[T] {
	return Object[T]{kind: KindValue, value: v}
}

// RefTo returns an Object holding a reference to ref.
func RefTo[T any](ref string) Object[T] {
	return Object[T]{kind: KindReference, ref: Reference{Ref: ref}}
}

// RefWithDescription returns an Object holding ref with a description override.
func RefWithDescription[T any](ref, description string) Object[T] {
	return Object[T]{kind: KindReference, ref: Reference{Ref: ref, Description: description}}
}

// EmptyObject returns an Object that holds nothing.
func EmptyObject[T any]() Object[T] {
	return Object[T]{}
}

// Kind reports which variant is active.
func (o Object[T]) Kind() ObjectKind {
	return o.kind
}

// Value returns the inline value and true if o holds a value.
func (o Object[T]) Value() (T, bool) {
	if o.kind != KindValue {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Reference returns the reference and true if o holds a reference.
func (o Object[T]) Reference() (Reference, bool) {
	if o.kind != KindReference {
		return Reference{}, false
	}
	return o.ref, true
}

// IsEmpty reports whether o holds neither a value nor a reference.
func (o Object[T]) IsEmpty() bool {
	return o.kind == KindEmpty
}

// IsReference reports whether o holds a reference.
func (o Object[T]) IsReference() bool {
	return o.kind == KindReference
}

// Ptr returns a pointer to a copy of o, for optional cell slots such as
// Schema.Items.
func (o Object[T]) Ptr() *Object[T] {
	return &o
}
