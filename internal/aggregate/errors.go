package aggregate

import (
	"errors"
	"fmt"
)

// InputError marks a caller mistake (empty topic, unknown source id). It is
// surfaced before any adapter is invoked and is the only error class the
// aggregation surface treats as fatal; per-source failures are recorded and
// never escalated.
type InputError struct {
	msg string
}

func (e *InputError) Error() string {
	return e.msg
}

func inputErrorf(format string, args ...any) error {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err is (or wraps) an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
