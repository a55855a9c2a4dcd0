package pdf

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// ocrTextThreshold is the minimum number of characters (after trimming) a
// document must yield before its text is trusted. Anything shorter is
// assumed to be image-based and flagged for external OCR.
const ocrTextThreshold = 100

// TextResult holds the outcome of a text extraction pass.
type TextResult struct {
	// Text is the concatenation of all pages' text in page order,
	// separated by line breaks.
	Text string
	// NeedsOCR is true when the stripped text is too sparse to trust.
	NeedsOCR bool
	// Pages is the page count of the document.
	Pages int
	// Warnings lists per-page extraction failures. These never abort the
	// whole document; a failed page contributes empty text.
	Warnings []string
}

// TextExtractor pulls page-ordered plain text out of a PDF document.
type TextExtractor struct {
	debug bool
}

// NewTextExtractor creates a new text extractor.
func NewTextExtractor(debug bool) *TextExtractor {
	return &TextExtractor{debug: debug}
}

// Extract reads the document and returns its text along with the needs-OCR
// flag. A document that cannot be opened at all returns a *LoadError; a
// page that fails to extract contributes empty text and a warning.
func (e *TextExtractor) Extract(doc []byte) (*TextResult, error) {
	reader, err := openReader(doc)
	if err != nil {
		return nil, &LoadError{Op: "failed to read PDF", Err: err}
	}

	result := &TextResult{Pages: reader.NumPage()}

	chunks := make([]string, 0, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		text, pageErr := extractPageText(reader, pageNum)
		if pageErr != nil {
			warning := fmt.Sprintf("could not extract text from page %d: %v", pageNum, pageErr)
			result.Warnings = append(result.Warnings, warning)
			if e.debug {
				log.Printf("Warning: %s", warning)
			}
			text = ""
		}
		chunks = append(chunks, text)
	}

	result.Text = strings.Join(chunks, "\n")
	result.NeedsOCR = NeedsOCR(result.Text)

	if e.debug {
		log.Printf("Extracted %d characters from %d page(s), needs OCR: %t",
			len(result.Text), result.Pages, result.NeedsOCR)
	}

	return result, nil
}

// NeedsOCR reports whether extracted text is too sparse to trust. The
// threshold is the entire heuristic: fewer than 100 stripped characters
// means the document is probably image-based. Characters, not bytes, so
// non-ASCII text is not over-counted.
func NeedsOCR(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) < ocrTextThreshold
}

// openReader parses document bytes into a pdf.Reader. The underlying
// library panics on some malformed structures, so parsing runs behind a
// recover.
func openReader(doc []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed document: %v", r)
		}
	}()
	return pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
}

// extractPageText extracts plain text from a single page, recovering from
// panics inside the PDF library so one bad page never aborts the document.
func extractPageText(reader *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page parser panic: %v", r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}

	return page.GetPlainText(nil)
}
