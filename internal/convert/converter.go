// Package convert sequences the CMS-to-SIF pipeline: text extraction,
// optional OCR, field extraction, value projection, form filling, and
// coverage reporting. It is the sole entry point external callers use.
package convert

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fieldworks/cms-sif-converter/internal/cms"
	"github.com/fieldworks/cms-sif-converter/internal/mapping"
	"github.com/fieldworks/cms-sif-converter/internal/pdf"
)

// serviceDateLayout is the MM/DD/YYYY format used when defaulting an
// absent service date to today.
const serviceDateLayout = "01/02/2006"

// Options configures a Converter. The zero value uses the default field
// mapping, the placeholder OCR, and the system clock.
type Options struct {
	// Mapping overrides the default CMS -> SIF field mapping.
	Mapping *mapping.FieldMap
	// Flatten requests flattening of the filled form. Flattening is
	// currently a documented pass-through; the flag is plumbed through so
	// behavior can be added without an interface change.
	Flatten bool
	// Debug enables diagnostic narration. It never changes control flow.
	Debug bool
	// OCR is the external recognition capability used when extracted text
	// is too sparse to trust.
	OCR OCRFunc
	// Now supplies the clock for the service-date default.
	Now func() time.Time
}

// Result is a successful conversion: the filled document, its diagnostic
// report, and any non-fatal warnings collected along the way.
type Result struct {
	Document []byte
	Report   *mapping.Report
	Warnings []string
}

// Converter runs complete conversions. It holds no per-conversion state,
// so a single Converter is safe for concurrent use.
type Converter struct {
	mapping   *mapping.FieldMap
	flatten   bool
	debug     bool
	ocr       OCRFunc
	now       func() time.Time
	extractor *pdf.TextExtractor
	inspector *pdf.FormInspector
	filler    *pdf.FormFiller
	parser    *cms.Parser
}

// New creates a Converter from options, filling in defaults.
func New(opts Options) *Converter {
	m := opts.Mapping
	if m == nil {
		m = mapping.Default()
	}
	ocr := opts.OCR
	if ocr == nil {
		ocr = PlaceholderOCR
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Converter{
		mapping:   m,
		flatten:   opts.Flatten,
		debug:     opts.Debug,
		ocr:       ocr,
		now:       now,
		extractor: pdf.NewTextExtractor(opts.Debug),
		inspector: pdf.NewFormInspector(opts.Debug),
		filler:    pdf.NewFormFiller(opts.Debug),
		parser:    cms.NewParser(opts.Debug),
	}
}

// Convert runs the whole pipeline: source bytes in, filled template plus
// report out. Per-item conditions (unmatched patterns, unavailable OCR,
// missing fill fields) are absorbed as warnings; only document-structural
// failures return an error, always as a *ConversionError. A filled
// document is never returned without also attempting the report, but a
// report failure degrades to an error string inside the report rather
// than aborting.
func (c *Converter) Convert(ctx context.Context, source, template []byte) (*Result, error) {
	rec, warnings, err := c.ExtractRecord(ctx, source)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, stageError("conversion canceled", err)
	}

	values := c.mapping.Project(rec)
	if c.debug {
		log.Printf("Mapped %d field(s) from CMS to SIF", len(values))
	}

	fill, err := c.filler.Fill(template, values, c.flatten)
	if err != nil {
		return nil, stageError("failed to fill SIF template", err)
	}
	warnings = append(warnings, fill.Warnings...)

	report := mapping.BuildReport(rec, template, c.mapping)
	if report.Error != "" {
		warnings = append(warnings, report.Error)
	}

	return &Result{
		Document: fill.Document,
		Report:   report,
		Warnings: warnings,
	}, nil
}

// ExtractRecord runs the source half of the pipeline: text extraction,
// the OCR fallback when the text is too sparse, heuristic parsing, and
// the one-time service-date default.
func (c *Converter) ExtractRecord(ctx context.Context, source []byte) (*cms.Record, []string, error) {
	text, warnings, err := c.extractText(ctx, source)
	if err != nil {
		return nil, nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, stageError("conversion canceled", err)
	}

	rec := c.parser.Parse(text)

	// Defaulting happens here, after extraction, never inside the engine.
	if rec.ServiceDate == "" {
		rec.ServiceDate = c.now().Format(serviceDateLayout)
		if c.debug {
			log.Printf("Service date absent, defaulted to %s", rec.ServiceDate)
		}
	}

	return rec, warnings, nil
}

// extractText pulls text from the source document and applies the OCR
// fallback. OCR being unavailable is a warning, never an error.
func (c *Converter) extractText(ctx context.Context, source []byte) (string, []string, error) {
	res, err := c.extractor.Extract(source)
	if err != nil {
		return "", nil, stageError("failed to load CMS PDF", err)
	}

	warnings := append([]string{}, res.Warnings...)
	text := res.Text

	if res.NeedsOCR {
		if c.debug {
			log.Printf("Very little text extracted (%d chars); attempting OCR", len(text))
		}
		ocrText, ocrErr := c.ocr(ctx, source)
		switch {
		case ocrErr != nil:
			warnings = append(warnings, fmt.Sprintf("OCR failed: %v", ocrErr))
		case usableOCRText(ocrText):
			text = ocrText
		default:
			warnings = append(warnings, "OCR not available, proceeding with limited text")
		}
	}

	return text, warnings, nil
}
