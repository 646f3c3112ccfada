package siphon

import (
	"fmt"

	"github.com/pkg/errors"
)

// Failure is the concrete failure value carried through the pipeline: an
// error together with its kind and an optional cause chain. Built on
// github.com/pkg/errors: the wrapped error carries a stack trace, which
// %+v on Unwrap() prints; Error() prints only the kind and message.
type Failure struct {
	Kind ErrorKind
	err  error
}

// NewFailure wraps err (attaching a stack trace if it doesn't have one yet)
// into a Failure of the given kind.
func NewFailure(kind ErrorKind, err error) *Failure {
	if err == nil {
		return nil
	}
	var traced interface{ StackTrace() errors.StackTrace }
	if errors.As(err, &traced) {
		return &Failure{Kind: kind, err: err}
	}
	return &Failure{Kind: kind, err: errors.WithStack(err)}
}

func (f *Failure) Error() string {
	if f == nil {
		return "<nil failure>"
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.err)
}

// Unwrap exposes the underlying error for errors.Is/errors.As.
func (f *Failure) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.err
}

// Cause returns the root cause of the failure's error chain.
func (f *Failure) Cause() error {
	if f == nil {
		return nil
	}
	return errors.Cause(f.err)
}
