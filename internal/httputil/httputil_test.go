package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusCode(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"default", true},
		{"x-custom", true},
		{"1XX", true},
		{"4XX", true},
		{"5XX", true},
		{"0XX", false},
		{"6XX", false},
		{"20X", false},
		{"X2X", false},
		{"100", true},
		{"200", true},
		{"418", true},
		{"599", true},
		{"099", false},
		{"600", false},
		{"+20", false},
		{"-20", false},
		{"2000", false},
		{"", false},
		{"ok", false},
		{"DEFAULT", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateStatusCode(tt.code))
		})
	}
}

func TestIsStandardStatusCode(t *testing.T) {
	assert.True(t, IsStandardStatusCode("200"))
	assert.True(t, IsStandardStatusCode("404"))
	assert.False(t, IsStandardStatusCode("299"))
	assert.False(t, IsStandardStatusCode("2XX"))
	assert.False(t, IsStandardStatusCode("default"))
}

func TestDescribeStatusCode(t *testing.T) {
	assert.Equal(t, "200 OK", DescribeStatusCode("200"))
	assert.Equal(t, "404 Not Found", DescribeStatusCode("404"))
	assert.Equal(t, "4XX client error", DescribeStatusCode("4XX"))
	assert.Equal(t, "default", DescribeStatusCode("default"))
	assert.Equal(t, "299", DescribeStatusCode("299"))
}

func TestIsValidMediaType(t *testing.T) {
	tests := []struct {
		mediaType string
		expected  bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"application/vnd.api+json", true},
		{"image/*", true},
		{"*/*", true},
		{"*/json", false},
		{"/*", false},
		{"json", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidMediaType(tt.mediaType))
		})
	}
}
