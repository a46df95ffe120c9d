package parser

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDocumentStats(t *testing.T) {
	t.Run("nil spec", func(t *testing.T) {
		assert.Equal(t, DocumentStats{}, GetDocumentStats(nil))
	})

	t.Run("petstore", func(t *testing.T) {
		data, err := os.ReadFile("testdata/petstore.json")
		require.NoError(t, err)
		spec, err := Decode(data, SourceFormatJSON, DialectAuto)
		require.NoError(t, err)

		stats := GetDocumentStats(spec)
		assert.Equal(t, 2, stats.PathCount)
		assert.Equal(t, 3, stats.OperationCount)
		assert.Equal(t, 3, stats.SchemaCount)
		assert.Equal(t, 3, stats.ComponentCount)
		// Five response schemas plus Pets.items.
		assert.Equal(t, 6, stats.ReferenceCount)
	})

	t.Run("built spec", func(t *testing.T) {
		stats := GetDocumentStats(looseSpec())
		assert.Equal(t, 1, stats.PathCount)
		assert.Equal(t, 3, stats.OperationCount)
		assert.Equal(t, 1, stats.SchemaCount)
		assert.Equal(t, 3, stats.ComponentCount)
		// Offset parameter ref, X-Next header ref, request body schema ref,
		// 200 items ref and the Offset component's schema ref.
		assert.Equal(t, 5, stats.ReferenceCount)
	})
}
