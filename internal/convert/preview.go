package convert

import (
	"context"

	"github.com/fieldworks/cms-sif-converter/internal/cms"
	"github.com/fieldworks/cms-sif-converter/internal/pdf"
)

// ExtractionSummary gives a quick count of what parsing found.
type ExtractionSummary struct {
	TotalAttributes int      `json:"total_attributes"`
	ExtractedCount  int      `json:"extracted_count"`
	Extracted       []string `json:"extracted"`
	Missing         []string `json:"missing"`
}

// PreviewResult is the preview entry point's outcome, shaped for direct
// display by a caller without producing a filled document.
type PreviewResult struct {
	Success  bool               `json:"success"`
	Data     map[string]string  `json:"data,omitempty"`
	Summary  *ExtractionSummary `json:"summary,omitempty"`
	Warnings []string           `json:"warnings,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// ValidationResult reports whether a SIF template is suitable for
// filling.
type ValidationResult struct {
	Success    bool                  `json:"success"`
	IsValid    bool                  `json:"is_valid"`
	FieldCount int                   `json:"field_count"`
	Fields     []string              `json:"fields"`
	Metadata   *pdf.DocumentMetadata `json:"metadata,omitempty"`
	Message    string                `json:"message,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// Preview extracts and summarizes CMS data without generating a SIF.
// Failures are reported in the result, never returned as errors.
func (c *Converter) Preview(ctx context.Context, source []byte) *PreviewResult {
	rec, warnings, err := c.ExtractRecord(ctx, source)
	if err != nil {
		return &PreviewResult{Error: err.Error()}
	}

	return &PreviewResult{
		Success:  true,
		Data:     rec.AsMap(),
		Summary:  summarize(rec),
		Warnings: warnings,
	}
}

// ValidateTemplate checks that a SIF template has fillable fields and
// reports its field inventory and document metadata.
func (c *Converter) ValidateTemplate(template []byte) *ValidationResult {
	names, err := c.inspector.FieldNames(template)
	if err != nil {
		return &ValidationResult{Error: err.Error()}
	}

	meta, err := pdf.Metadata(template)
	if err != nil {
		// Metadata is advisory; a field inventory alone still validates.
		meta = nil
	}

	result := &ValidationResult{
		Success:    true,
		IsValid:    len(names) > 0,
		FieldCount: len(names),
		Fields:     names,
		Metadata:   meta,
	}
	if result.IsValid {
		result.Message = "Valid SIF template"
	} else {
		result.Message = "No form fields found in PDF"
	}
	return result
}

// summarize counts which record attributes were extracted.
func summarize(rec *cms.Record) *ExtractionSummary {
	extracted := []string{}
	missing := []string{}
	for _, attr := range cms.AttributeNames() {
		if rec.Get(attr) != "" {
			extracted = append(extracted, attr)
		} else {
			missing = append(missing, attr)
		}
	}

	return &ExtractionSummary{
		TotalAttributes: len(cms.AttributeNames()),
		ExtractedCount:  len(extracted),
		Extracted:       extracted,
		Missing:         missing,
	}
}
