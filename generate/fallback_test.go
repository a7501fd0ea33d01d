package generate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkunchal47/formgen/model"
)

func TestFallback_DiabetesBranch(t *testing.T) {
	form, errs := Fallback{}.Generate(context.Background(), "A medical form asking if the patient is diabetic")
	require.Empty(t, errs)
	require.NotNil(t, form)

	assert.Equal(t, "Patient Intake Form", form.Title)
	require.Len(t, form.Fields, 1)

	radio := form.Fields[0]
	assert.Equal(t, "field-0", radio.ID)
	assert.Equal(t, model.TypeRadio, radio.Type)
	assert.Equal(t, []string{"Yes", "No"}, radio.Options)
	assert.True(t, radio.Required)

	yes := radio.Conditions["Yes"]
	require.Len(t, yes, 2)
	assert.Equal(t, "field-0-Yes-0", yes[0].ID)
	assert.Equal(t, model.TypeNumber, yes[0].Type)
	assert.Empty(t, radio.Conditions["No"])
}

func TestFallback_PregnancyFollowUpNeedsKeyword(t *testing.T) {
	form, _ := Fallback{}.Generate(context.Background(), "ask for gender and pregnancy status")
	require.Len(t, form.Fields, 1)
	require.Len(t, form.Fields[0].Conditions["Female"], 1)
	assert.Equal(t, model.TypeRadio, form.Fields[0].Conditions["Female"][0].Type)

	form, _ = Fallback{}.Generate(context.Background(), "ask for gender")
	require.Len(t, form.Fields, 1)
	assert.Empty(t, form.Fields[0].Conditions["Female"])
}

func TestFallback_KeywordFields(t *testing.T) {
	form, errs := Fallback{}.Generate(context.Background(), "job application with name, age and email")
	require.Empty(t, errs)

	assert.Equal(t, "Job Application Form", form.Title)
	require.Len(t, form.Fields, 3)
	assert.Equal(t, model.TypeNumber, form.Fields[0].Type)
	assert.Equal(t, model.TypeEmail, form.Fields[1].Type)
	assert.Equal(t, model.TypeText, form.Fields[2].Type)
	for i, f := range form.Fields {
		assert.NotEmpty(t, f.ID, "field %d not stamped", i)
	}
}

func TestFallback_GenericFieldWhenNothingMatches(t *testing.T) {
	form, errs := Fallback{}.Generate(context.Background(), "zzz")
	require.Empty(t, errs)

	assert.Equal(t, "Generated Form", form.Title)
	require.Len(t, form.Fields, 1)
	assert.Equal(t, model.TypeText, form.Fields[0].Type)
	assert.Equal(t, "field-0", form.Fields[0].ID)
	assert.False(t, form.Fields[0].Required)
}

func TestFallback_Deterministic(t *testing.T) {
	a, _ := Fallback{}.Generate(context.Background(), "patient diabetes survey with email")
	b, _ := Fallback{}.Generate(context.Background(), "patient diabetes survey with email")
	assert.Equal(t, a, b)
}
