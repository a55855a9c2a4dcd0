package convert

import "fmt"

// ConversionError is the single error kind callers of the pipeline see.
// Stage-specific failures are caught at the orchestrator boundary and
// re-wrapped exactly once with a stage-qualified message.
type ConversionError struct {
	Stage string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// stageError wraps err into a ConversionError unless it already is one.
func stageError(stage string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*ConversionError); ok {
		return err
	}
	return &ConversionError{Stage: stage, Err: err}
}
