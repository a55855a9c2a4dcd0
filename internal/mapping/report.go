package mapping

import (
	"fmt"
	"sort"

	"github.com/fieldworks/cms-sif-converter/internal/cms"
	"github.com/fieldworks/cms-sif-converter/internal/pdf"
)

// ExtractionStats summarizes what was pulled out of the CMS report.
type ExtractionStats struct {
	TotalFields     int      `json:"total_fields"`
	ExtractedFields []string `json:"extracted_fields"`
}

// FormStats summarizes the SIF template's field inventory.
type FormStats struct {
	TotalFields int      `json:"total_fields"`
	FieldNames  []string `json:"field_names"`
}

// MappingStats summarizes how the mapping applied to the record.
type MappingStats struct {
	TotalMappings      int               `json:"total_mappings"`
	SuccessfullyMapped int               `json:"successfully_mapped"`
	MappingDetails     map[string]string `json:"mapping_details"`
}

// Gaps lists what fell through on each side.
type Gaps struct {
	UnmappedCMSFields []string `json:"unmapped_cms_fields"`
	UnfilledSIFFields []string `json:"unfilled_sif_fields"`
}

// Coverage carries the two mapped/total ratios as percentage strings, or
// "N/A" when a denominator is zero.
type Coverage struct {
	CMSCoverage string `json:"cms_coverage"`
	SIFCoverage string `json:"sif_coverage"`
}

// Report is a point-in-time diagnostic snapshot of one conversion's
// extraction, mapping, and coverage. It is advisory output and never
// persisted.
type Report struct {
	CMSExtraction ExtractionStats `json:"cms_extraction"`
	SIFForm       FormStats       `json:"sif_form"`
	Mapping       MappingStats    `json:"mapping"`
	Gaps          Gaps            `json:"gaps"`
	Coverage      Coverage        `json:"coverage"`

	// Error is set instead of the statistics when the report itself could
	// not be computed. The report never blocks a conversion.
	Error string `json:"error,omitempty"`
}

// BuildReport derives a Report from a parsed record, a SIF template, and
// the mapping in effect. It does not fail on partial data; an internal
// failure degrades to a report carrying only an error description.
func BuildReport(rec *cms.Record, template []byte, m *FieldMap) *Report {
	inspector := pdf.NewFormInspector(false)
	sifNames, err := inspector.FieldNames(template)
	if err != nil {
		return &Report{Error: fmt.Sprintf("could not generate mapping report: %v", err)}
	}

	extracted := rec.AsMap()
	values := m.Project(rec)

	extractedNames := make([]string, 0, len(extracted))
	for name := range extracted {
		extractedNames = append(extractedNames, name)
	}
	sort.Strings(extractedNames)

	unmapped := []string{}
	for _, name := range extractedNames {
		if !m.HasCMSField(name) {
			unmapped = append(unmapped, name)
		}
	}

	unfilled := []string{}
	for _, name := range sifNames {
		if _, ok := values[name]; !ok {
			unfilled = append(unfilled, name)
		}
	}

	return &Report{
		CMSExtraction: ExtractionStats{
			TotalFields:     len(extracted),
			ExtractedFields: extractedNames,
		},
		SIFForm: FormStats{
			TotalFields: len(sifNames),
			FieldNames:  sifNames,
		},
		Mapping: MappingStats{
			TotalMappings:      m.Len(),
			SuccessfullyMapped: len(values),
			MappingDetails:     values,
		},
		Gaps: Gaps{
			UnmappedCMSFields: unmapped,
			UnfilledSIFFields: unfilled,
		},
		Coverage: Coverage{
			CMSCoverage: coverage(len(values), len(extracted)),
			SIFCoverage: coverage(len(values), len(sifNames)),
		},
	}
}

// coverage renders mapped/total as a percentage with one decimal place,
// or "N/A" when the denominator is zero.
func coverage(mapped, total int) string {
	if total == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", float64(mapped)/float64(total)*100)
}
