package lint

import (
	"errors"
	"fmt"
)

// ErrNoSchema is wrapped by the PreconditionError returned when a rule needs
// a GraphQL schema and none was configured.
var ErrNoSchema = errors.New("no GraphQL schema available")

// PreconditionError reports that a rule could not run on a file because
// required context is missing. It aborts that rule for that file only.
type PreconditionError struct {
	Rule string
	Err  error
	Hint string
}

func (e *PreconditionError) Error() string {
	msg := fmt.Sprintf("rule %q: %v", e.Rule, e.Err)
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// IsPrecondition reports whether err is (or wraps) a PreconditionError.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
