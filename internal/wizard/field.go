// Package wizard drives multi-step forms: a typed draft, an ordered list of
// steps, per-step required-field validation and a final submission handed
// to a caller-supplied sink.
//
// Fields reach into the draft through accessor funcs rather than string
// paths, so a nested group such as persona.tone is written through a
// pointer into that group and never disturbs its siblings. Each field still
// carries a Name for transports that address fields by string.
package wizard

import "strings"

// Kind is the input widget a field renders as.
type Kind string

const (
	KindText     Kind = "text"
	KindSelect   Kind = "select"
	KindTextArea Kind = "textarea"
	KindTags     Kind = "tags"
	KindFile     Kind = "file"
)

// Upload is a file attached to a draft before submission.
type Upload struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}

// Empty reports whether nothing has been attached.
func (u Upload) Empty() bool { return len(u.Data) == 0 }

// Field describes one input of a step and how to reach its value in D.
type Field[D any] struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`

	text func(*D) *string
	tags func(*D) *[]string
	file func(*D) *Upload
}

// Text declares a single-line text field.
func Text[D any](name, label string, at func(*D) *string) Field[D] {
	return Field[D]{Name: name, Label: label, Kind: KindText, text: at}
}

// TextArea declares a multi-line text field.
func TextArea[D any](name, label string, at func(*D) *string) Field[D] {
	return Field[D]{Name: name, Label: label, Kind: KindTextArea, text: at}
}

// Select declares a field whose value must be one of options (or empty).
func Select[D any](name, label string, options []string, at func(*D) *string) Field[D] {
	return Field[D]{Name: name, Label: label, Kind: KindSelect, Options: options, text: at}
}

// Tags declares an ordered list of free-text entries.
func Tags[D any](name, label string, at func(*D) *[]string) Field[D] {
	return Field[D]{Name: name, Label: label, Kind: KindTags, tags: at}
}

// File declares a single attachment.
func File[D any](name, label string, at func(*D) *Upload) Field[D] {
	return Field[D]{Name: name, Label: label, Kind: KindFile, file: at}
}

// Require marks the field as required to leave its step.
func (f Field[D]) Require() Field[D] {
	f.Required = true
	return f
}

// empty reports whether the field holds no usable value in d.
// Whitespace-only text counts as empty.
func (f Field[D]) empty(d *D) bool {
	switch f.Kind {
	case KindTags:
		return len(*f.tags(d)) == 0
	case KindFile:
		return f.file(d).Empty()
	default:
		return strings.TrimSpace(*f.text(d)) == ""
	}
}

func (f Field[D]) allows(v string) bool {
	if v == "" {
		return true
	}
	for _, o := range f.Options {
		if o == v {
			return true
		}
	}
	return false
}

// Step is one page of a wizard.
type Step[D any] struct {
	Title  string     `json:"title"`
	Fields []Field[D] `json:"fields"`
}
