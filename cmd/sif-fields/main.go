// Command sif-fields lists the AcroForm fields of a SIF template PDF.
// It is a small diagnostic helper for checking what a template offers
// before mapping CMS data into it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fieldworks/cms-sif-converter/internal/pdf"
)

var (
	outputFormat = flag.String("format", "text", "Output format: text, json")
	verbose      = flag.Bool("verbose", false, "Enable verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: PDF file path required\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <template.pdf>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	path := flag.Arg(0)
	doc, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	inspector := pdf.NewFormInspector(*verbose)
	fields, err := inspector.Fields(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading form fields: %v\n", err)
		os.Exit(1)
	}
	names, err := inspector.FieldNames(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading form fields: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		ordered := make([]pdf.FormField, 0, len(names))
		for _, name := range names {
			ordered = append(ordered, fields[name])
		}
		data, err := json.MarshalIndent(ordered, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	default:
		fmt.Printf("%s: %d form field(s)\n", path, len(names))
		for i, name := range names {
			field := fields[name]
			fmt.Printf("%d. %s (type: %s)", i+1, name, field.Type)
			if field.Value != "" {
				fmt.Printf(", value: %q", field.Value)
			}
			fmt.Println()
		}
	}
}
