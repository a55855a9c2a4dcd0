package pdf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/cms-sif-converter/internal/pdf/pdftest"
)

func TestFormInspectorFields(t *testing.T) {
	template := pdftest.BuildForm(
		pdftest.Field{Name: "Wind farm number"},
		pdftest.Field{Name: "Date", Value: "08/15/2026"},
	)

	inspector := NewFormInspector(false)
	fields, err := inspector.Fields(template)
	require.NoError(t, err)
	require.Len(t, fields, 2)

	farm := fields["Wind farm number"]
	assert.Equal(t, "Wind farm number", farm.Name)
	assert.Equal(t, FormFieldTypeText, farm.Type)
	assert.Empty(t, farm.Value)

	date := fields["Date"]
	assert.Equal(t, FormFieldTypeText, date.Type)
	assert.Equal(t, "08/15/2026", date.Value)
}

func TestFormInspectorCheckboxValue(t *testing.T) {
	template := pdftest.BuildForm(
		pdftest.Field{Name: "Inspection passed", Value: "Yes", Checkbox: true},
	)

	inspector := NewFormInspector(false)
	fields, err := inspector.Fields(template)
	require.NoError(t, err)

	// Checkbox states are name objects; they read back as plain strings.
	box := fields["Inspection passed"]
	assert.Equal(t, FormFieldTypeCheckbox, box.Type)
	assert.Equal(t, "Yes", box.Value)
}

func TestFormInspectorFieldNamesSorted(t *testing.T) {
	template := pdftest.BuildForm(
		pdftest.Field{Name: "Serial number"},
		pdftest.Field{Name: "Date"},
		pdftest.Field{Name: "Gateway"},
	)

	inspector := NewFormInspector(false)
	names, err := inspector.FieldNames(template)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Gateway", "Serial number"}, names)
}

func TestFormInspectorNoFields(t *testing.T) {
	inspector := NewFormInspector(false)

	// Introspection of a fieldless template is valid and yields an empty
	// table, both with and without an AcroForm dictionary.
	for name, doc := range map[string][]byte{
		"empty acroform": pdftest.BuildEmptyForm(),
		"no acroform":    pdftest.BuildNoForm(),
	} {
		t.Run(name, func(t *testing.T) {
			fields, err := inspector.Fields(doc)
			require.NoError(t, err)
			assert.Empty(t, fields)

			names, err := inspector.FieldNames(doc)
			require.NoError(t, err)
			assert.Empty(t, names)
		})
	}
}

func TestFormInspectorRejectsGarbage(t *testing.T) {
	inspector := NewFormInspector(false)

	_, err := inspector.Fields([]byte("not a pdf"))
	require.Error(t, err)

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}
