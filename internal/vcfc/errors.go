package vcfc

import "fmt"

// ValidationError marks input that violates the VCF text format or the
// compressed record framing, as opposed to an underlying I/O failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
