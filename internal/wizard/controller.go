package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// SubmitFunc receives the assembled draft on the final step and returns the
// id of whatever it created.
type SubmitFunc[D any] func(ctx context.Context, draft D) (string, error)

// Controller holds one in-progress form. It is not safe for concurrent use;
// callers that share a Controller serialise access themselves.
type Controller[D any] struct {
	steps  []Step[D]
	index  map[string]Field[D]
	draft  D
	submit SubmitFunc[D]

	step      int
	done      bool
	resultID  string
	err       error
	fieldErrs map[string]string
}

// New builds a Controller starting on step 1 with the given draft.
// Field names must be unique across all steps.
func New[D any](steps []Step[D], initial D, submit SubmitFunc[D]) (*Controller[D], error) {
	if len(steps) == 0 {
		return nil, errors.New("wizard: at least one step is required")
	}
	if submit == nil {
		return nil, errors.New("wizard: submit func is required")
	}
	index := make(map[string]Field[D])
	for _, s := range steps {
		for _, f := range s.Fields {
			if _, dup := index[f.Name]; dup {
				return nil, fmt.Errorf("wizard: duplicate field %q", f.Name)
			}
			if f.text == nil && f.tags == nil && f.file == nil {
				return nil, fmt.Errorf("wizard: field %q has no accessor", f.Name)
			}
			index[f.Name] = f
		}
	}
	return &Controller[D]{
		steps:     steps,
		index:     index,
		draft:     initial,
		submit:    submit,
		step:      1,
		fieldErrs: make(map[string]string),
	}, nil
}

// ─── Read side ───────────────────────────────────────────────────────────────

// CurrentStep is 1-based.
func (c *Controller[D]) CurrentStep() int { return c.step }
func (c *Controller[D]) TotalSteps() int  { return len(c.steps) }
func (c *Controller[D]) IsLastStep() bool { return c.step == len(c.steps) }
func (c *Controller[D]) Steps() []Step[D] { return c.steps }
func (c *Controller[D]) Done() bool       { return c.done }

// ResultID is the id returned by the submit sink once Done.
func (c *Controller[D]) ResultID() string { return c.resultID }

// Err is the error left by the last Next or Submit, nil after a success.
func (c *Controller[D]) Err() error { return c.err }

// Draft returns a copy of the draft. Slices inside it are shared.
func (c *Controller[D]) Draft() D { return c.draft }

// FieldErrors returns the messages for fields that blocked the last Next.
func (c *Controller[D]) FieldErrors() map[string]string {
	out := make(map[string]string, len(c.fieldErrs))
	for k, v := range c.fieldErrs {
		out[k] = v
	}
	return out
}

// Field looks up a field by name.
func (c *Controller[D]) Field(name string) (Field[D], bool) {
	f, ok := c.index[name]
	return f, ok
}

// Text returns the value of a text, textarea or select field.
func (c *Controller[D]) Text(name string) (string, error) {
	f, err := c.lookup(name, KindText, KindTextArea, KindSelect)
	if err != nil {
		return "", err
	}
	return *f.text(&c.draft), nil
}

// TagValues returns the entries of a tags field.
func (c *Controller[D]) TagValues(name string) ([]string, error) {
	f, err := c.lookup(name, KindTags)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), *f.tags(&c.draft)...), nil
}

// ─── Edits ───────────────────────────────────────────────────────────────────

// SetText writes a text, textarea or select field. A select only accepts one
// of its options or the empty string.
func (c *Controller[D]) SetText(name, value string) error {
	if c.done {
		return ErrDone
	}
	f, err := c.lookup(name, KindText, KindTextArea, KindSelect)
	if err != nil {
		return err
	}
	if f.Kind == KindSelect && !f.allows(value) {
		return &ValidationError{
			Step:   c.step,
			Fields: map[string]string{name: fmt.Sprintf("%s must be one of %s", f.Label, strings.Join(f.Options, ", "))},
		}
	}
	*f.text(&c.draft) = value
	delete(c.fieldErrs, name)
	return nil
}

// AddTag appends the trimmed value to a tags field. Blank values are ignored.
// Duplicates are kept.
func (c *Controller[D]) AddTag(name, value string) error {
	if c.done {
		return ErrDone
	}
	f, err := c.lookup(name, KindTags)
	if err != nil {
		return err
	}
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	list := f.tags(&c.draft)
	*list = append(*list, v)
	delete(c.fieldErrs, name)
	return nil
}

// RemoveTag deletes the entry at index. An index out of range is a no-op.
func (c *Controller[D]) RemoveTag(name string, index int) error {
	if c.done {
		return ErrDone
	}
	f, err := c.lookup(name, KindTags)
	if err != nil {
		return err
	}
	list := f.tags(&c.draft)
	if index < 0 || index >= len(*list) {
		return nil
	}
	next := make([]string, 0, len(*list)-1)
	next = append(next, (*list)[:index]...)
	next = append(next, (*list)[index+1:]...)
	*list = next
	return nil
}

// AttachFile replaces the upload held by a file field.
func (c *Controller[D]) AttachFile(name string, u Upload) error {
	if c.done {
		return ErrDone
	}
	f, err := c.lookup(name, KindFile)
	if err != nil {
		return err
	}
	*f.file(&c.draft) = u
	delete(c.fieldErrs, name)
	return nil
}

// ─── Navigation ──────────────────────────────────────────────────────────────

// Next validates the current step and moves forward, or submits when the
// current step is the last one.
func (c *Controller[D]) Next(ctx context.Context) error {
	if c.done {
		return ErrDone
	}
	if err := c.validate(c.step); err != nil {
		return c.fail(err)
	}
	if c.IsLastStep() {
		return c.Submit(ctx)
	}
	c.step++
	c.err = nil
	return nil
}

// Previous moves back one step without validating. On step 1 it does nothing.
func (c *Controller[D]) Previous() error {
	if c.done {
		return ErrDone
	}
	if c.step > 1 {
		c.step--
	}
	c.err = nil
	c.fieldErrs = make(map[string]string)
	return nil
}

// Submit hands the draft to the sink. Every step is re-validated first; if
// an earlier step has become invalid the wizard moves back to it.
func (c *Controller[D]) Submit(ctx context.Context) error {
	if c.done {
		return ErrDone
	}
	if !c.IsLastStep() {
		return ErrNotLastStep
	}
	for i := 1; i <= len(c.steps); i++ {
		if err := c.validate(i); err != nil {
			c.step = i
			return c.fail(err)
		}
	}

	id, err := c.callSubmit(ctx)
	if err != nil {
		return c.fail(&SubmitError{Err: err})
	}
	c.done = true
	c.resultID = id
	c.err = nil
	c.fieldErrs = make(map[string]string)
	return nil
}

func (c *Controller[D]) callSubmit(ctx context.Context) (id string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during submit: %v", r)
		}
	}()
	return c.submit(ctx, c.draft)
}

func (c *Controller[D]) validate(step int) error {
	missing := make(map[string]string)
	for _, f := range c.steps[step-1].Fields {
		if f.Required && f.empty(&c.draft) {
			missing[f.Name] = f.Label + " is required"
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Step: step, Fields: missing}
}

func (c *Controller[D]) fail(err error) error {
	c.err = err
	c.fieldErrs = make(map[string]string)
	var ve *ValidationError
	if errors.As(err, &ve) {
		for k, v := range ve.Fields {
			c.fieldErrs[k] = v
		}
	}
	return err
}

func (c *Controller[D]) lookup(name string, kinds ...Kind) (Field[D], error) {
	f, ok := c.index[name]
	if !ok {
		return f, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	for _, k := range kinds {
		if f.Kind == k {
			return f, nil
		}
	}
	return f, fmt.Errorf("%w: %q is %s", ErrWrongKind, name, f.Kind)
}
