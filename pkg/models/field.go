// Package models contains the shared data types for the field mapping engine
package models

// FieldDescriptor describes one input field discovered in a scanned form.
// Descriptors are produced by the DOM scanning collaborator and are immutable
// for the lifetime of one scan. SelectorHandle is opaque to the engine; it is
// passed through untouched so the execution collaborator can locate the field.
type FieldDescriptor struct {
	ID             string `json:"id"`
	Name           string `json:"name,omitempty"`
	InputType      string `json:"input_type" validate:"required"`
	Label          string `json:"label,omitempty"`
	Placeholder    string `json:"placeholder,omitempty"`
	AriaLabel      string `json:"aria_label,omitempty"`
	Required       bool   `json:"required"`
	SelectorHandle string `json:"selector_handle"`
}

// DisplayLabel returns the best available human-readable name for the field.
func (f FieldDescriptor) DisplayLabel() string {
	switch {
	case f.Label != "":
		return f.Label
	case f.Placeholder != "":
		return f.Placeholder
	case f.AriaLabel != "":
		return f.AriaLabel
	case f.Name != "":
		return f.Name
	default:
		return f.ID
	}
}

// ScannedForm is one form found on a page by the scanning collaborator.
// HasCaptcha and Inaccessible are upstream-supplied exclusion flags; the
// engine obeys them and never re-derives them.
type ScannedForm struct {
	ID           string            `json:"id"`
	FormType     string            `json:"form_type,omitempty"`
	HasCaptcha   bool              `json:"has_captcha"`
	Inaccessible bool              `json:"inaccessible"`
	Fields       []FieldDescriptor `json:"fields"`
}

// Skippable reports whether the form must be excluded from matching.
func (f ScannedForm) Skippable() bool {
	return f.HasCaptcha || f.Inaccessible
}
