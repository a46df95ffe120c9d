package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want OASVersion
		ok   bool
	}{
		{"3.0.0", OASVersion300, true},
		{"3.0.3", OASVersion303, true},
		{"3.0.9", OASVersion304, true},
		{"3.1.0", OASVersion310, true},
		{"3.1.0-rc1", OASVersion310, true},
		{"3.1.5", OASVersion312, true},
		{"3.2.0", OASVersion320, true},
		{"3.3.0", Unknown, false},
		{"2.0", Unknown, false},
		{"4.0.0", Unknown, false},
		{"", Unknown, false},
		{"three", Unknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseVersion(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOASVersionString(t *testing.T) {
	assert.Equal(t, "3.0.3", OASVersion303.String())
	assert.Equal(t, "3.2.0", OASVersion320.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.False(t, Unknown.IsValid())
	assert.True(t, OASVersion311.IsValid())
}

func TestOASVersionDialect(t *testing.T) {
	assert.Equal(t, DialectAuto, Unknown.Dialect())
	assert.Equal(t, DialectStrict, OASVersion300.Dialect())
	assert.Equal(t, DialectStrict, OASVersion304.Dialect())
	assert.Equal(t, DialectLoose, OASVersion310.Dialect())
	assert.Equal(t, DialectLoose, OASVersion320.Dialect())
}

func TestSemverParse(t *testing.T) {
	v, err := parseVersion("3.1.0-rc1")
	require.NoError(t, err)
	assert.Equal(t, "3.1.0-rc1", v.String())

	v, err = parseVersion("3.0")
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", v.String())

	for _, bad := range []string{"3", "3.0.0.0", "3.x", "-1.0", "3.+1"} {
		_, err := parseVersion(bad)
		assert.Error(t, err, bad)
	}
}

func TestSemverLessThan(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"3.0.0", "3.0.1", true},
		{"3.0.1", "3.0.0", false},
		{"3.0.9", "3.1.0", true},
		{"3.1.0-rc1", "3.1.0", true},
		{"3.1.0", "3.1.0-rc1", false},
		{"3.1.0-rc1", "3.1.0-rc2", true},
		{"3.1.0", "3.1.0", false},
		{"2.9.9", "3.0.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.a+"<"+tt.b, func(t *testing.T) {
			a, err := parseVersion(tt.a)
			require.NoError(t, err)
			b, err := parseVersion(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.lessThan(b))
		})
	}
}
