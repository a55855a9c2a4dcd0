// Package pdftest builds minimal in-memory PDF documents for tests, so
// form introspection, filling, and reporting can be exercised without
// binary fixtures on disk.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Field describes one form field to place in a generated template. Text
// fields carry their value as a string literal; checkbox fields carry it
// as a name object, the way AcroForm on/off states are stored.
type Field struct {
	Name     string
	Value    string
	Checkbox bool
}

// BuildForm returns a single-page PDF whose AcroForm contains the given
// text fields in order.
func BuildForm(fields ...Field) []byte {
	refs := make([]string, len(fields))
	for i := range fields {
		refs[i] = fmt.Sprintf("%d 0 R", 4+i)
	}
	refList := strings.Join(refs, " ")

	objs := []string{
		fmt.Sprintf("<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [%s] >> >>", refList),
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Annots [%s] >>", refList),
	}
	for _, f := range fields {
		fieldType := "/Tx"
		value := ""
		if f.Checkbox {
			fieldType = "/Btn"
			if f.Value != "" {
				value = fmt.Sprintf(" /V /%s", f.Value)
			}
		} else if f.Value != "" {
			value = fmt.Sprintf(" /V (%s)", f.Value)
		}
		objs = append(objs, fmt.Sprintf(
			"<< /Type /Annot /Subtype /Widget /FT %s /T (%s)%s /Rect [100 700 300 720] /P 3 0 R >>",
			fieldType, f.Name, value))
	}

	return assemble(objs)
}

// BuildEmptyForm returns a single-page PDF with an AcroForm that declares
// no fields.
func BuildEmptyForm() []byte {
	return assemble([]string{
		"<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [] >> >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	})
}

// BuildNoForm returns a single-page PDF without an AcroForm at all.
func BuildNoForm() []byte {
	return assemble([]string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	})
}

// assemble serializes numbered objects with a correct xref table and
// trailer. Object n is objs[n-1].
func assemble(objs []string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objs)+1)
	for i, body := range objs {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objs); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objs)+1, xrefOffset)

	return buf.Bytes()
}
