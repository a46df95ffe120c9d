package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"", DialectAuto, false},
		{"auto", DialectAuto, false},
		{"strict", DialectStrict, false},
		{"LOOSE", DialectLoose, false},
		{" loose ", DialectLoose, false},
		{"relaxed", DialectAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDialect(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialectCapabilities(t *testing.T) {
	strict, loose := DialectStrict, DialectLoose

	assert.True(t, strict.ClosedMethods())
	assert.False(t, loose.ClosedMethods())

	for _, m := range StandardMethods {
		assert.True(t, strict.AllowsMethod(string(m)), m)
		assert.True(t, loose.AllowsMethod(string(m)), m)
	}
	assert.False(t, strict.AllowsMethod("query"))
	assert.True(t, loose.AllowsMethod("query"))
	assert.False(t, strict.AllowsMethod("GET"), "method keys are case-sensitive")

	assert.False(t, strict.CapturesInfoExtensions())
	assert.True(t, loose.CapturesInfoExtensions())
	assert.False(t, strict.ReferenceableOperationParameters())
	assert.True(t, loose.ReferenceableOperationParameters())
	assert.False(t, strict.RequiresParameterSchema())
	assert.True(t, loose.RequiresParameterSchema())
	assert.False(t, strict.ParameterSchemaReferenceable())
	assert.True(t, loose.ParameterSchemaReferenceable())
}

func TestDialectForVersion(t *testing.T) {
	tests := []struct {
		version string
		want    Dialect
		wantErr bool
	}{
		{"3.0.0", DialectStrict, false},
		{"3.0.3", DialectStrict, false},
		{"3.0", DialectStrict, false},
		{"3.1.0", DialectLoose, false},
		{"3.1.1", DialectLoose, false},
		{"3.2.0", DialectLoose, false},
		{"3.9.0", DialectLoose, false},
		{"2.0", DialectAuto, true},
		{"4.0.0", DialectAuto, true},
		{"latest", DialectAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			got, err := DialectForVersion(tt.version)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialectString(t *testing.T) {
	assert.Equal(t, "auto", DialectAuto.String())
	assert.Equal(t, "strict", DialectStrict.String())
	assert.Equal(t, "loose", DialectLoose.String())
}
