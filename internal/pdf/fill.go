package pdf

import (
	"bytes"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// FillResult holds the outcome of a form fill.
type FillResult struct {
	// Document is the filled template.
	Document []byte
	// Missing lists requested field names absent from the template. A
	// missing field is skipped, never fatal.
	Missing []string
	// Warnings lists per-field conditions encountered while filling.
	Warnings []string
}

// FormFiller writes values into a form template's named fields.
type FormFiller struct {
	debug bool
}

// NewFormFiller creates a new form filler.
func NewFormFiller(debug bool) *FormFiller {
	return &FormFiller{debug: debug}
}

// Fill clones the template and sets each provided field's value. Field
// names absent from the template are reported in the result and skipped.
// A template with no fields at all is fatal and returns a *MappingError.
//
// The flatten flag is accepted for interface stability but flattening is
// not performed; the filled form remains editable.
// TODO: implement appearance flattening once pdfcpu's form flattening
// covers partially filled templates.
func (ff *FormFiller) Fill(template []byte, values map[string]string, flatten bool) (*FillResult, error) {
	ctx, err := readContext(template)
	if err != nil {
		return nil, err
	}

	acroForm, err := acroFormDict(ctx)
	if err != nil {
		return nil, &LoadError{Op: "failed to read form", Err: err}
	}

	dicts, err := formFieldDicts(ctx)
	if err != nil {
		return nil, &LoadError{Op: "failed to read form fields", Err: err}
	}
	if len(dicts) == 0 {
		return nil, &MappingError{Reason: "template does not contain form fields (AcroForm)"}
	}

	byName := make(map[string]types.Dict, len(dicts))
	for _, nf := range dicts {
		byName[nf.name] = nf.dict
	}

	result := &FillResult{}

	// Deterministic fill order regardless of map iteration.
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fieldDict, ok := byName[name]
		if !ok {
			result.Missing = append(result.Missing, name)
			warning := fmt.Sprintf("field %q not found in template", name)
			result.Warnings = append(result.Warnings, warning)
			if ff.debug {
				log.Printf("Warning: %s", warning)
			}
			continue
		}

		setFieldValue(ctx, fieldDict, values[name])
		if ff.debug {
			log.Printf("Set field %q = %q", name, values[name])
		}
	}

	// Viewers must regenerate appearances for the values set above.
	acroForm["NeedAppearances"] = types.Boolean(true)

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, &LoadError{Op: "failed to write filled form", Err: err}
	}
	result.Document = buf.Bytes()

	return result, nil
}

// setFieldValue writes a string value into a field dictionary and drops any
// stale appearance streams so the new value becomes visible.
func setFieldValue(ctx *model.Context, fieldDict types.Dict, value string) {
	fieldDict["V"] = types.StringLiteral(escapeStringLiteral(value))
	delete(fieldDict, "AP")

	// Widget kids carry their own appearance streams.
	if kidsObj, found := fieldDict.Find("Kids"); found {
		if kidsArray, err := ctx.DereferenceArray(kidsObj); err == nil {
			for _, kidRef := range kidsArray {
				if kidDict, err := ctx.DereferenceDict(kidRef); err == nil && kidDict != nil {
					delete(kidDict, "AP")
				}
			}
		}
	}
}

// escapeStringLiteral escapes the characters PDF string literals reserve.
func escapeStringLiteral(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return replacer.Replace(s)
}
