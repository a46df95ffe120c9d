// Package httputil checks the HTTP-level keys found in an OpenAPI document:
// response status codes and media type names.
package httputil

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
)

const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code ranges (e.g., "2XX")
)

// ValidateStatusCode reports whether code is a valid response key:
// "default", an extension ("x-..."), a range such as "4XX", or a
// three-digit code between 100 and 599.
func ValidateStatusCode(code string) bool {
	if code == "default" || strings.HasPrefix(code, "x-") {
		return true
	}
	if len(code) != StatusCodeLength {
		return false
	}
	if code[1] == WildcardChar && code[2] == WildcardChar {
		return code[0] >= '1' && code[0] <= '5'
	}
	n, err := strconv.Atoi(code)
	if err != nil || code[0] == '+' || code[0] == '-' {
		return false
	}
	return n >= MinStatusCode && n <= MaxStatusCode
}

// IsStandardStatusCode reports whether code is a status code registered in
// net/http (e.g., "404" but not "299").
func IsStandardStatusCode(code string) bool {
	if len(code) != StatusCodeLength {
		return false
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return false
	}
	return http.StatusText(n) != ""
}

// DescribeStatusCode returns a short label for a response key, e.g.
// "200 OK", "4XX client error" or "default".
func DescribeStatusCode(code string) string {
	if len(code) == StatusCodeLength && code[1] == WildcardChar && code[2] == WildcardChar {
		switch code[0] {
		case '1':
			return code + " informational"
		case '2':
			return code + " success"
		case '3':
			return code + " redirection"
		case '4':
			return code + " client error"
		case '5':
			return code + " server error"
		}
	}
	if n, err := strconv.Atoi(code); err == nil {
		if text := http.StatusText(n); text != "" {
			return code + " " + text
		}
	}
	return code
}

// IsValidMediaType reports whether mediaType is a valid content map key.
// Ranges such as "image/*" and "*/*" are accepted.
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(mediaType, "/*"); ok {
		return prefix != "" && prefix != "*" && !strings.Contains(prefix, "/")
	}
	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil && strings.Contains(mediaType, "/")
}
