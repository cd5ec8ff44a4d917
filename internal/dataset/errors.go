package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn indicates a required column or property is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformed indicates a value or record that cannot be parsed.
	ErrMalformed = errors.New("malformed data")
)

// DataLoadError reports a source file that is missing, unreadable or
// malformed. It is fatal to a pipeline invocation.
type DataLoadError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	if e == nil {
		return "data load error"
	}
	return fmt.Sprintf("load %s table %s: %v", e.Kind, e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func loadError(kind Kind, path string, err error) error {
	var dle *DataLoadError
	if errors.As(err, &dle) {
		return err
	}
	return &DataLoadError{Kind: kind, Path: path, Err: err}
}
