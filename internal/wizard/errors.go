package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDone is returned by every mutating call after a successful submit.
	ErrDone = errors.New("wizard: already submitted")
	// ErrNotLastStep is returned by Submit before the final step is reached.
	ErrNotLastStep = errors.New("wizard: submit is only allowed from the last step")
	// ErrUnknownField is returned when a name matches no field of the wizard.
	ErrUnknownField = errors.New("wizard: unknown field")
	// ErrWrongKind is returned when an operation does not fit the field's kind,
	// e.g. AddTag on a text field.
	ErrWrongKind = errors.New("wizard: operation does not apply to this field")
)

// ValidationError lists the fields blocking a step, keyed by field name.
type ValidationError struct {
	Step   int
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for n := range e.Fields {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, e.Fields[n])
	}
	return fmt.Sprintf("step %d: %s", e.Step, strings.Join(parts, "; "))
}

// SubmitError wraps a failure reported by the submit sink. The wizard stays
// on its last step with the draft intact so the same payload can be retried.
type SubmitError struct{ Err error }

func (e *SubmitError) Error() string { return "submit failed: " + e.Err.Error() }
func (e *SubmitError) Unwrap() error { return e.Err }
