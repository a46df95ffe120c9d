package parser

import "slices"

// Method is a path item operation key. The eight standard HTTP methods are
// predefined; the loose dialect accepts any other key as well.
type Method string

// Standard HTTP methods, in canonical order.
const (
	MethodGet     Method = "get"
	MethodPut     Method = "put"
	MethodPost    Method = "post"
	MethodDelete  Method = "delete"
	MethodHead    Method = "head"
	MethodPatch   Method = "patch"
	MethodOptions Method = "options"
	MethodTrace   Method = "trace"
)

// StandardMethods lists the standard methods in canonical order.
var StandardMethods = []Method{
	MethodGet,
	MethodPut,
	MethodPost,
	MethodDelete,
	MethodHead,
	MethodPatch,
	MethodOptions,
	MethodTrace,
}

// Parameter location constants (used in Parameter.In field)
const (
	// ParamInQuery indicates the parameter is passed in the query string
	ParamInQuery = "query"
	// ParamInHeader indicates the parameter is passed in a request header
	ParamInHeader = "header"
	// ParamInPath indicates the parameter is part of the URL path
	ParamInPath = "path"
	// ParamInCookie indicates the parameter is passed as a cookie
	ParamInCookie = "cookie"
)

// IsStandard reports whether m is one of the eight standard methods.
func (m Method) IsStandard() bool {
	return m.rank() < len(StandardMethods)
}

func (m Method) rank() int {
	if i := slices.Index(StandardMethods, m); i >= 0 {
		return i
	}
	return len(StandardMethods)
}

// SortMethods returns the keys of ops in canonical order: the standard
// methods first, then any other keys sorted lexically.
func SortMethods(ops map[Method]*Operation) []Method {
	keys := make([]Method, 0, len(ops))
	for m := range ops {
		keys = append(keys, m)
	}
	slices.SortFunc(keys, compareMethods)
	return keys
}

func compareMethods(a, b Method) int {
	ra, rb := a.rank(), b.rank()
	if ra != rb {
		return ra - rb
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func allowedMethodList() string {
	s := ""
	for i, m := range StandardMethods {
		if i > 0 {
			s += ", "
		}
		s += string(m)
	}
	return s
}
