package wizard

import "context"

// Form is the type-erased view of a Controller used by transports that
// juggle wizards over different drafts.
type Form interface {
	CurrentStep() int
	TotalSteps() int
	Done() bool
	SetText(name, value string) error
	AddTag(name, value string) error
	RemoveTag(name string, index int) error
	AttachFile(name string, u Upload) error
	Next(ctx context.Context) error
	Previous() error
	Submit(ctx context.Context) error
	Snapshot() Snapshot
}

var (
	_ Form = (*Controller[RoleDraft])(nil)
	_ Form = (*Controller[CompanyDraft])(nil)
)

// FieldInfo describes a field without its accessor.
type FieldInfo struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

// StepInfo describes a step without accessors.
type StepInfo struct {
	Title  string      `json:"title"`
	Fields []FieldInfo `json:"fields"`
}

// Snapshot is the serialisable state of a wizard.
type Snapshot struct {
	Step        int               `json:"step"`
	TotalSteps  int               `json:"totalSteps"`
	Steps       []StepInfo        `json:"steps"`
	Draft       any               `json:"draft"`
	FieldErrors map[string]string `json:"fieldErrors"`
	Error       string            `json:"error,omitempty"`
	Done        bool              `json:"done"`
	ResultID    string            `json:"resultId,omitempty"`
}

// Snapshot captures the controller's current state.
func (c *Controller[D]) Snapshot() Snapshot {
	steps := make([]StepInfo, 0, len(c.steps))
	for _, s := range c.steps {
		fields := make([]FieldInfo, 0, len(s.Fields))
		for _, f := range s.Fields {
			fields = append(fields, FieldInfo{
				Name: f.Name, Label: f.Label, Kind: f.Kind, Options: f.Options, Required: f.Required,
			})
		}
		steps = append(steps, StepInfo{Title: s.Title, Fields: fields})
	}
	snap := Snapshot{
		Step:        c.step,
		TotalSteps:  len(c.steps),
		Steps:       steps,
		Draft:       c.draft,
		FieldErrors: c.FieldErrors(),
		Done:        c.done,
		ResultID:    c.resultID,
	}
	if c.err != nil {
		snap.Error = c.err.Error()
	}
	return snap
}
