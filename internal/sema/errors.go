package sema

import (
	"errors"
	"fmt"
)

// ErrLimit is wrapped by every resource-limit failure.
var ErrLimit = errors.New("analysis limit exceeded")

// LimitError reports that one of the analysis stacks overflowed. It aborts
// the pass; language errors never do.
type LimitError struct {
	Stack string
	Limit int
	Line  int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s stack exceeded %d entries at line %d", e.Stack, e.Limit, e.Line)
}

func (e *LimitError) Unwrap() error { return ErrLimit }
