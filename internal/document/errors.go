package document

import (
	"errors"
	"fmt"
)

// Kinds of unusable input. These are the only errors the engine surfaces.
var (
	ErrUnsupportedFormat  = errors.New("unsupported format")
	ErrExtractionFailure  = errors.New("extraction failure")
	ErrSuspiciousContent  = errors.New("suspicious content")
	ErrIncompleteDocument = errors.New("incomplete document")
	ErrNotAResume         = errors.New("not a resume")
)

// InputError describes why a file cannot be analyzed.
// It unwraps to both its Kind and its Cause.
type InputError struct {
	Kind   error
	Path   string
	Reason string
	Cause  error
}

func (e *InputError) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *InputError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// IsInputError reports whether err means the input file is unusable.
func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}

func newInputError(kind error, path, reason string, cause error) *InputError {
	return &InputError{Kind: kind, Path: path, Reason: reason, Cause: cause}
}
