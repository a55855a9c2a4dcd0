package pdf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/cms-sif-converter/internal/pdf/pdftest"
)

func TestMetadata(t *testing.T) {
	meta, err := Metadata(pdftest.BuildForm(pdftest.Field{Name: "Date"}))
	require.NoError(t, err)

	assert.Equal(t, 1, meta.PageCount)
	assert.False(t, meta.Encrypted)

	// The generated template carries no Info dictionary.
	assert.Empty(t, meta.Title)
	assert.Empty(t, meta.Producer)
}

func TestMetadataRejectsGarbage(t *testing.T) {
	_, err := Metadata([]byte("not a pdf"))
	require.Error(t, err)

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}
