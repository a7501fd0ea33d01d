package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkunchal47/formgen/model"
)

func nestedFields() []model.Field {
	return []model.Field{
		{
			Type:    model.TypeRadio,
			Label:   "Are you diabetic?",
			Options: []string{"Yes", "No"},
			Conditions: map[string][]model.Field{
				"Yes": {
					{Type: model.TypeNumber, Label: "Years since diagnosis"},
					{
						Type:    model.TypeRadio,
						Label:   "On insulin?",
						Options: []string{"Yes", "No"},
						Conditions: map[string][]model.Field{
							"Yes": {{Type: model.TypeText, Label: "Dosage"}},
						},
					},
				},
				"No": {},
			},
		},
		{Type: model.TypeEmail, Label: "Email Address"},
	}
}

func TestAssignIDs_PathDerived(t *testing.T) {
	fields := nestedFields()
	AssignIDs(fields)

	assert.Equal(t, "field-0", fields[0].ID)
	assert.Equal(t, "field-1", fields[1].ID)

	yes := fields[0].Conditions["Yes"]
	require.Len(t, yes, 2)
	assert.Equal(t, "field-0-Yes-0", yes[0].ID)
	assert.Equal(t, "field-0-Yes-1", yes[1].ID)

	dosage := yes[1].Conditions["Yes"]
	require.Len(t, dosage, 1)
	assert.Equal(t, "field-0-Yes-1-Yes-0", dosage[0].ID)
}

func TestAssignIDs_UniqueAcrossTree(t *testing.T) {
	fields := nestedFields()
	AssignIDs(fields)

	seen := map[string]bool{}
	var walk func([]model.Field)
	walk = func(fs []model.Field) {
		for _, f := range fs {
			require.NotEmpty(t, f.ID)
			assert.False(t, seen[f.ID], "duplicate id %s", f.ID)
			seen[f.ID] = true
			for _, children := range f.Conditions {
				walk(children)
			}
		}
	}
	walk(fields)
	assert.Len(t, seen, 5)
}

func TestAssignIDs_Deterministic(t *testing.T) {
	first := nestedFields()
	AssignIDs(first)

	second := nestedFields()
	AssignIDs(second)
	assert.Equal(t, first, second)

	// re-stamping an already stamped tree changes nothing
	AssignIDs(first)
	assert.Equal(t, second, first)
}
