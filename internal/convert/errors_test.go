package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageError(t *testing.T) {
	assert.Nil(t, stageError("any stage", nil))

	base := errors.New("boom")
	err := stageError("failed to load CMS PDF", base)
	assert.EqualError(t, err, "failed to load CMS PDF: boom")
	assert.True(t, errors.Is(err, base))

	// An error already carrying its stage is never wrapped again.
	again := stageError("another stage", err)
	assert.Same(t, err.(*ConversionError), again.(*ConversionError))
}
