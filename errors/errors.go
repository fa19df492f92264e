package errors

import "fmt"

var (
	ErrWorkerPanic   = fmt.Errorf("worker panic")
	ErrEmptyFilename = fmt.Errorf("upload has no filename")
	ErrEmptySender   = fmt.Errorf("sender is required")
)
