package convert

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderOCR(t *testing.T) {
	text, err := PlaceholderOCR(context.Background(), []byte("ignored"))
	require.NoError(t, err)
	assert.Contains(t, text, NotImplementedPrefix)
	assert.False(t, usableOCRText(text))
}

func TestUsableOCRText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"real text", "Wind Farm: ABC-12", true},
		{"empty", "", false},
		{"whitespace", "  \n ", false},
		{"placeholder", NotImplementedPrefix + " - text-based PDFs only]", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usableOCRText(tt.text))
		})
	}
}
