package convert

import (
	"context"
	"strings"
)

// OCRFunc is the external OCR capability: given document bytes, return
// recognized text. Implementations may signal not-implemented by returning
// a string starting with NotImplementedPrefix; the pipeline then proceeds
// with whatever text it already has.
type OCRFunc func(ctx context.Context, doc []byte) (string, error)

// NotImplementedPrefix marks an OCR placeholder response.
const NotImplementedPrefix = "[OCR not yet implemented"

// PlaceholderOCR is the default OCR capability. It performs no
// recognition and returns the not-implemented placeholder.
func PlaceholderOCR(_ context.Context, _ []byte) (string, error) {
	return NotImplementedPrefix + " - text-based PDFs only]", nil
}

// usableOCRText reports whether an OCR response carries real text rather
// than a placeholder or blank output.
func usableOCRText(text string) bool {
	if strings.HasPrefix(text, NotImplementedPrefix) {
		return false
	}
	return strings.TrimSpace(text) != ""
}
