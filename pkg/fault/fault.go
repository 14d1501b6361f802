package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a screening fault so callers can tell bad input apart
// from an unavailable upstream dependency.
type Kind string

const (
	KindUnsupportedFormat Kind = "unsupported_format"
	KindExtractionFailure Kind = "extraction_failure"
	KindEmbeddingFailure  Kind = "embedding_failure"
	KindIndexUnavailable  Kind = "index_unavailable"
	KindIndexQueryFailure Kind = "index_query_failure"
	KindCompletionFailure Kind = "completion_failure"
)

// Fault is the single domain error type surfaced by the screening flow.
// It carries a kind for classification, a human-readable message and the
// originating cause.
type Fault struct {
	Kind    Kind
	Message string
	Cause   error
}

func (f *Fault) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Cause)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Fault) Unwrap() error {
	return f.Cause
}

// New creates a Fault with the given kind, message and optional cause.
func New(kind Kind, message string, cause error) *Fault {
	return &Fault{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// Newf creates a Fault with a formatted message and no cause.
func Newf(kind Kind, format string, args ...any) *Fault {
	return &Fault{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the kind of the first Fault in err's chain, or an empty
// kind if err does not wrap a Fault.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// IsKind reports whether err wraps a Fault of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// BadInput reports whether the fault kind describes invalid client input
// rather than an upstream dependency failure.
func (k Kind) BadInput() bool {
	switch k {
	case KindUnsupportedFormat, KindExtractionFailure:
		return true
	default:
		return false
	}
}
