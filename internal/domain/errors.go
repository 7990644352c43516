package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFile is returned when an upload carries no file
	ErrNoFile = errors.New("no file uploaded")

	// ErrEmptyText is returned when there is nothing to export
	ErrEmptyText = errors.New("no simplified text to export")

	// ErrUnsupportedType is returned for files outside the accepted extensions
	ErrUnsupportedType = errors.New("unsupported file type")
)

// SimplifyError wraps a failure of the simplification step
type SimplifyError struct {
	FileName string
	Err      error
}

func (e *SimplifyError) Error() string {
	return fmt.Sprintf("simplify %s: %v", e.FileName, e.Err)
}

func (e *SimplifyError) Unwrap() error {
	return e.Err
}
