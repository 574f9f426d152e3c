package compression

import "fmt"

// LoadError means the input bytes never became a usable document graph.
// It is fatal and aborts the request before any stage runs.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load document: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// StageError is a failure inside an interior pipeline stage. It is
// recovered locally and never reaches the caller.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// SaveError means serialization of the mutated graph failed. It is
// fatal; no partial bytes are emitted.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save document: %v", e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}
