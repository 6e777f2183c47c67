package export

import (
	"fmt"
)

// WriteError means no file was produced.
type WriteError struct {
	File string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not write %s: %v", e.File, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// UploadError means the file was written but not delivered. The file stays
// on disk.
type UploadError struct {
	File string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("could not upload %s: %v", e.File, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
