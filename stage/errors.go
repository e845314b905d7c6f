package stage

import "fmt"

// StageValidationError reports one malformed field in a stage
// descriptor. The loader collects every such error in a single pass
// via go.uber.org/multierr rather than stopping at the first.
type StageValidationError struct {
	Field  string
	Reason string
}

func (e *StageValidationError) Error() string {
	return fmt.Sprintf("stage field %q: %s", e.Field, e.Reason)
}

func fieldErr(field, format string, args ...any) error {
	return &StageValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
