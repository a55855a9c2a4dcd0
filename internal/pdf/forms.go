package pdf

import (
	"bytes"
	"fmt"
	"log"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// FormFieldType represents the type of an AcroForm field.
type FormFieldType string

const (
	FormFieldTypeText      FormFieldType = "text"
	FormFieldTypeCheckbox  FormFieldType = "checkbox"
	FormFieldTypeRadio     FormFieldType = "radio"
	FormFieldTypeSelect    FormFieldType = "select"
	FormFieldTypeButton    FormFieldType = "button"
	FormFieldTypeSignature FormFieldType = "signature"
	FormFieldTypeUnknown   FormFieldType = "unknown"
)

// FormField describes one named field in a form template.
type FormField struct {
	Name         string        `json:"name"`
	Type         FormFieldType `json:"type"`
	Value        string        `json:"value,omitempty"`
	DefaultValue string        `json:"default_value,omitempty"`
}

// FormInspector reads the field names, types, and current values available
// in a form template.
type FormInspector struct {
	debug bool
}

// NewFormInspector creates a new form inspector.
func NewFormInspector(debug bool) *FormInspector {
	return &FormInspector{debug: debug}
}

// Fields returns the template's field-name -> metadata table. A template
// with no fillable fields yields an empty table; that is a valid outcome
// for introspection alone. Malformed bytes return a *LoadError.
func (fi *FormInspector) Fields(doc []byte) (map[string]FormField, error) {
	ctx, err := readContext(doc)
	if err != nil {
		return nil, err
	}

	dicts, err := formFieldDicts(ctx)
	if err != nil {
		return nil, &LoadError{Op: "failed to read form fields", Err: err}
	}

	fields := make(map[string]FormField, len(dicts))
	for _, nf := range dicts {
		fieldType := fieldType(ctx, nf.dict)
		field := FormField{Name: nf.name, Type: fieldType}
		if valueObj, found := nf.dict.Find("V"); found {
			field.Value = fieldValueString(ctx, valueObj)
		}
		if defaultObj, found := nf.dict.Find("DV"); found {
			field.DefaultValue = fieldValueString(ctx, defaultObj)
		}
		fields[field.Name] = field

		if fi.debug {
			log.Printf("Found field: %s (type: %s)", field.Name, field.Type)
		}
	}

	return fields, nil
}

// FieldNames returns the template's field names sorted for deterministic
// display.
func (fi *FormInspector) FieldNames(doc []byte) ([]string, error) {
	fields, err := fi.Fields(doc)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// namedField pairs a field name with its dictionary so callers can both
// report on and mutate the field.
type namedField struct {
	name string
	dict types.Dict
}

// readContext parses document bytes into a pdfcpu context using relaxed
// validation.
func readContext(doc []byte) (*model.Context, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(doc), conf)
	if err != nil {
		return nil, &LoadError{Op: "failed to read PDF context", Err: err}
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, &LoadError{Op: "failed to ensure page count", Err: err}
	}

	return ctx, nil
}

// acroFormDict returns the document's AcroForm dictionary, or nil when the
// document declares none.
func acroFormDict(ctx *model.Context) (types.Dict, error) {
	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		return nil, nil
	}

	acroForm, err := ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference AcroForm: %w", err)
	}

	return acroForm, nil
}

// formFieldDicts walks the AcroForm Fields array and returns each field's
// name and dictionary. A field that cannot be processed is skipped, never
// fatal for the walk.
func formFieldDicts(ctx *model.Context) ([]namedField, error) {
	acroForm, err := acroFormDict(ctx)
	if err != nil {
		return nil, err
	}
	if acroForm == nil {
		return nil, nil
	}

	fieldsObj, found := acroForm.Find("Fields")
	if !found {
		return nil, nil
	}

	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	fields := make([]namedField, 0, len(fieldsArray))
	for i, fieldRef := range fieldsArray {
		fieldDict, err := ctx.DereferenceDict(fieldRef)
		if err != nil || fieldDict == nil {
			continue
		}

		name := ""
		if nameObj, found := fieldDict.Find("T"); found {
			if n, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil {
				name = n
			}
		}
		if name == "" {
			name = fmt.Sprintf("field_%d", i)
		}

		fields = append(fields, namedField{name: name, dict: fieldDict})
	}

	return fields, nil
}

// fieldType determines the field type from the FT entry, checking the
// parent for inherited types and button flags for checkbox/radio/button
// disambiguation.
func fieldType(ctx *model.Context, fieldDict types.Dict) FormFieldType {
	ftObj, found := fieldDict.Find("FT")
	if !found {
		if parentObj, found := fieldDict.Find("Parent"); found {
			if parentDict, err := ctx.DereferenceDict(parentObj); err == nil && parentDict != nil {
				return fieldType(ctx, parentDict)
			}
		}
		return FormFieldTypeUnknown
	}

	ftName, err := ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return FormFieldTypeUnknown
	}

	switch ftName {
	case "Btn":
		if flagsObj, found := fieldDict.Find("Ff"); found {
			if flags, err := ctx.DereferenceInteger(flagsObj); err == nil && flags != nil {
				flagValue := *flags
				if (flagValue & (1 << 15)) != 0 { // Bit 16: Radio
					return FormFieldTypeRadio
				} else if (flagValue & (1 << 16)) != 0 { // Bit 17: Pushbutton
					return FormFieldTypeButton
				}
			}
		}
		return FormFieldTypeCheckbox
	case "Tx":
		return FormFieldTypeText
	case "Ch":
		return FormFieldTypeSelect
	case "Sig":
		return FormFieldTypeSignature
	default:
		return FormFieldTypeUnknown
	}
}

// fieldValueString renders a field's V or DV entry as a string.
func fieldValueString(ctx *model.Context, valueObj types.Object) string {
	if val, err := ctx.DereferenceStringOrHexLiteral(valueObj, model.V10, nil); err == nil {
		return val
	}
	if name, err := ctx.DereferenceName(valueObj, model.V10, nil); err == nil {
		return string(name)
	}
	return ""
}
