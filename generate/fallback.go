package generate

import (
	"context"
	"strings"

	"github.com/hkunchal47/formgen/model"
	"github.com/hkunchal47/formgen/schema"
)

// Fallback builds schemas offline by keyword-matching the prompt against
// a small library of field templates. Its output is structurally valid by
// construction, so Generate never returns errors; the schema still goes
// through id assignment like the external path's output.
type Fallback struct{}

func (Fallback) Generate(_ context.Context, prompt string) (*model.FormSchema, []model.SchemaError) {
	p := strings.ToLower(prompt)

	form := model.FormSchema{
		Title:       fallbackTitle(p),
		Description: "Generated offline from prompt keywords. Set OPENAI_API_KEY to use AI generation.",
	}

	if containsAny(p, "diabetes", "diabetic") {
		form.Fields = append(form.Fields, model.Field{
			Type:     model.TypeRadio,
			Label:    "Are you diabetic?",
			Options:  []string{"Yes", "No"},
			Required: true,
			Conditions: map[string][]model.Field{
				"Yes": {
					{Type: model.TypeNumber, Label: "How many years have you been diabetic?", Required: true},
					{Type: model.TypeText, Label: "Current medications"},
				},
				"No": {},
			},
		})
	}

	if containsAny(p, "gender", "male", "female") {
		var femaleBranch []model.Field
		if containsAny(p, "pregnant", "pregnancy") {
			femaleBranch = []model.Field{
				{Type: model.TypeRadio, Label: "Are you currently pregnant?", Options: []string{"Yes", "No"}},
			}
		}
		form.Fields = append(form.Fields, model.Field{
			Type:     model.TypeRadio,
			Label:    "Gender",
			Options:  []string{"Male", "Female", "Other"},
			Required: true,
			Conditions: map[string][]model.Field{
				"Female": femaleBranch,
				"Male":   {},
				"Other":  {},
			},
		})
	}

	if containsAny(p, "age", "birth") {
		form.Fields = append(form.Fields, model.Field{
			Type: model.TypeNumber, Label: "Age", Required: true,
		})
	}

	if containsAny(p, "email", "contact") {
		form.Fields = append(form.Fields, model.Field{
			Type: model.TypeEmail, Label: "Email Address", Required: true,
		})
	}

	if strings.Contains(p, "name") {
		form.Fields = append(form.Fields, model.Field{
			Type: model.TypeText, Label: "Full Name", Required: true,
		})
	}

	if len(form.Fields) == 0 {
		form.Fields = []model.Field{
			{Type: model.TypeText, Label: "Please provide more details"},
		}
	}

	schema.AssignIDs(form.Fields)
	return &form, nil
}

func fallbackTitle(p string) string {
	switch {
	case containsAny(p, "patient", "medical"):
		return "Patient Intake Form"
	case containsAny(p, "job", "application"):
		return "Job Application Form"
	case containsAny(p, "survey", "feedback"):
		return "Feedback Survey"
	}
	return "Generated Form"
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
