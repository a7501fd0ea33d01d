// Package engine decides, for one field tree and one answer map, which
// fields are currently visible and whether the answers are acceptable.
// It is a pure function of its inputs: the tree is never mutated to hide
// branches, visibility is re-derived from the answers on every call.
package engine

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/hkunchal47/formgen/model"
)

// IsVisible reports whether field, reached through parent's conditions,
// is revealed by the current answers. A root-level field (nil parent, or
// a parent with no branches) is always visible.
//
// This is a local one-hop check on purpose: it does not recurse into
// ancestors, so callers can decide whether to descend into a subtree at
// all before testing every node inside it.
func IsVisible(field model.Field, parent *model.Field, responses map[string]any) bool {
	if parent == nil || parent.ID == "" || len(parent.Conditions) == 0 {
		return true
	}

	answer := branchKey(responses[parent.ID])
	if answer == "" {
		return false
	}
	children, ok := parent.Conditions[answer]
	if !ok {
		return false
	}
	for _, c := range children {
		if c.ID == field.ID {
			return true
		}
	}
	return false
}

// CollectVisible walks the tree in pre-order and returns, in render
// order, every field revealed by the current answers. A field's branch is
// descended only when its own answer matches one of its condition keys;
// unanswered fields and unmatched answers contribute no descendants.
func CollectVisible(fields []model.Field, responses map[string]any) []model.Field {
	return collectVisible(fields, responses, nil)
}

func collectVisible(fields []model.Field, responses map[string]any, parent *model.Field) []model.Field {
	visible := make([]model.Field, 0, len(fields))
	for i := range fields {
		field := fields[i]
		if !IsVisible(field, parent, responses) {
			continue
		}
		visible = append(visible, field)

		if field.ID == "" || len(field.Conditions) == 0 {
			continue
		}
		answer := branchKey(responses[field.ID])
		if answer == "" {
			continue
		}
		if children, ok := field.Conditions[answer]; ok {
			visible = append(visible, collectVisible(children, responses, &fields[i])...)
		}
	}
	return visible
}

// branchKey converts an answer into the string used to select a condition
// branch. Only single non-empty string answers select branches:
// multi-value answers (checkbox, multiselect) never do.
func branchKey(answer any) string {
	s, _ := answer.(string)
	return s
}

// ValidateForm checks the answers against exactly the fields currently
// visible under those same answers. Hidden fields are never validated, so
// an unanswered required field inside an unrevealed branch cannot block
// submission. All failures are returned together, one per field.
func ValidateForm(form model.FormSchema, responses map[string]any) []model.ValidationError {
	var errs []model.ValidationError
	for _, field := range CollectVisible(form.Fields, responses) {
		if field.ID == "" {
			continue
		}
		if err := checkValue(field, responses); err != nil {
			errs = append(errs, *err)
		}
	}
	return errs
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
	"01/02/2006",
}

func checkValue(field model.Field, responses map[string]any) *model.ValidationError {
	value, answered := responses[field.ID]
	if value == nil {
		answered = false
	}

	// An absent or empty optional answer passes unconditionally,
	// whatever the field type would otherwise demand of its shape.
	if !field.Required && (!answered || isEmpty(value)) {
		return nil
	}

	fail := func(format string, args ...any) *model.ValidationError {
		return &model.ValidationError{
			FieldID: field.ID,
			Message: fmt.Sprintf(format, args...),
		}
	}

	switch field.Type {
	case model.TypeNumber:
		if !answered {
			return fail("%s is required", field.Label)
		}
		if !isNumeric(value) {
			return fail("%s must be a number", field.Label)
		}

	case model.TypeEmail:
		s, ok := value.(string)
		if !answered || (ok && s == "") {
			if field.Required {
				return fail("%s is required", field.Label)
			}
			return nil
		}
		if !ok || !emailPattern.MatchString(s) {
			return fail("%s must be a valid email", field.Label)
		}

	case model.TypeCheckbox, model.TypeMultiselect:
		if !answered {
			if field.Required {
				return fail("%s requires at least one selection", field.Label)
			}
			return nil
		}
		items, ok := stringSlice(value)
		if !ok {
			return fail("%s must be a list of selections", field.Label)
		}
		if field.Required && len(items) == 0 {
			return fail("%s requires at least one selection", field.Label)
		}

	case model.TypeDate:
		s, ok := value.(string)
		if !answered || (ok && s == "") {
			if field.Required {
				return fail("%s is required", field.Label)
			}
			return nil
		}
		if !ok || !parsesAsDate(s) {
			return fail("%s must be a valid date", field.Label)
		}

	default:
		// text, textarea, radio, select: required means a non-empty
		// string answer; anything goes otherwise.
		if field.Required {
			s, ok := value.(string)
			if !answered || !ok || s == "" {
				return fail("%s is required", field.Label)
			}
		}
	}
	return nil
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	}
	return false
}

func isNumeric(value any) bool {
	switch v := value.(type) {
	case float64, float32, int, int32, int64:
		return true
	case json.Number:
		_, err := v.Float64()
		return err == nil
	}
	return false
}

func stringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			items[i] = s
		}
		return items, true
	}
	return nil, false
}

func parsesAsDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
