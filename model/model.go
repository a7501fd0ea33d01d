package model

import "time"

// FieldType enumerates the input widgets a form field can render as.
type FieldType string

const (
	TypeText        FieldType = "text"
	TypeNumber      FieldType = "number"
	TypeEmail       FieldType = "email"
	TypeRadio       FieldType = "radio"
	TypeCheckbox    FieldType = "checkbox"
	TypeSelect      FieldType = "select"
	TypeMultiselect FieldType = "multiselect"
	TypeTextarea    FieldType = "textarea"
	TypeDate        FieldType = "date"
)

// FieldTypes lists every recognized type, in the order used for error messages.
var FieldTypes = []FieldType{
	TypeText, TypeNumber, TypeEmail, TypeRadio, TypeCheckbox,
	TypeSelect, TypeMultiselect, TypeTextarea, TypeDate,
}

func (t FieldType) Valid() bool {
	for _, ft := range FieldTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// RequiresOptions reports whether the type needs a non-empty options list.
func (t FieldType) RequiresOptions() bool {
	switch t {
	case TypeRadio, TypeCheckbox, TypeSelect, TypeMultiselect:
		return true
	}
	return false
}

// Field is one node of a form's field tree. Conditions map an answer value
// (one of this field's own options) to the child fields revealed when the
// respondent picks it; children may carry conditions of their own, to any
// depth.
type Field struct {
	ID          string             `json:"id,omitempty"`
	Type        FieldType          `json:"type"`
	Label       string             `json:"label"`
	Options     []string           `json:"options,omitempty"`
	Required    bool               `json:"required,omitempty"`
	Placeholder string             `json:"placeholder,omitempty"`
	Conditions  map[string][]Field `json:"conditions,omitempty"`
}

// FormSchema is the authoritative description of one form: its top-level
// fields plus all conditional branches, fully materialized regardless of
// any respondent's answers.
type FormSchema struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Fields      []Field   `json:"fields"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FormResponse is one respondent's submitted answer set, keyed by field id.
type FormResponse struct {
	ID          string         `json:"id"`
	FormID      string         `json:"formId"`
	Responses   map[string]any `json:"responses"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

// SchemaError reports one structural problem in a candidate schema.
type SchemaError struct {
	Message    string `json:"message"`
	Path       string `json:"path,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ValidationError reports one rejected answer value on a submission attempt.
type ValidationError struct {
	FieldID string `json:"fieldId"`
	Message string `json:"message"`
}
