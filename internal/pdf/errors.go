package pdf

import "fmt"

// LoadError indicates a document's bytes could not be parsed as a PDF at
// all. It is the only fatal condition during text extraction; per-page
// failures are absorbed as warnings instead.
type LoadError struct {
	Op  string
	Err error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// MappingError indicates a template has no fillable form fields when a fill
// was attempted. Introspection alone treats an empty field table as a valid
// outcome; only filling promotes it to an error.
type MappingError struct {
	Reason string
}

func (e *MappingError) Error() string { return e.Reason }
