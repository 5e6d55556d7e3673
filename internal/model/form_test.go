package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormState_SeedsOneEntryPerList(t *testing.T) {
	f := NewFormState()
	require.Len(t, f.Education, 1)
	require.Len(t, f.Experience, 1)
	require.Len(t, f.Projects, 1)
	assert.NotEmpty(t, f.Education[0].ID)
	assert.NotEmpty(t, f.Experience[0].ID)
	assert.NotEmpty(t, f.Projects[0].ID)
}

func TestRemove_LastEntryIsNoOp(t *testing.T) {
	f := NewFormState()

	assert.False(t, f.RemoveEducation(f.Education[0].ID))
	assert.False(t, f.RemoveExperience(f.Experience[0].ID))
	assert.False(t, f.RemoveProject(f.Projects[0].ID))

	assert.Len(t, f.Education, 1)
	assert.Len(t, f.Experience, 1)
	assert.Len(t, f.Projects, 1)
}

func TestRemove_NeverDropsBelowOne(t *testing.T) {
	f := NewFormState()
	f.AddExperience()
	f.AddExperience()
	require.Len(t, f.Experience, 3)

	for i := 0; i < 5; i++ {
		f.RemoveExperience(f.Experience[0].ID)
	}
	assert.Len(t, f.Experience, 1)
}

func TestRemove_KeepsOrderOfOthers(t *testing.T) {
	f := NewFormState()
	first := f.Projects[0].ID
	second := f.AddProject()
	third := f.AddProject()

	require.True(t, f.RemoveProject(second))
	require.Len(t, f.Projects, 2)
	assert.Equal(t, first, f.Projects[0].ID)
	assert.Equal(t, third, f.Projects[1].ID)
}

func TestRemove_UnknownIDIsNoOp(t *testing.T) {
	f := NewFormState()
	f.AddEducation()
	assert.False(t, f.RemoveEducation("missing"))
	assert.Len(t, f.Education, 2)
}

func TestUpdateEducation(t *testing.T) {
	f := NewFormState()
	id := f.Education[0].ID

	require.NoError(t, f.UpdateEducation(id, "school", "MIT"))
	require.NoError(t, f.UpdateEducation(id, "startMonth", "Sep"))
	require.NoError(t, f.UpdateEducation(id, "current", "true"))

	assert.Equal(t, "MIT", f.Education[0].School)
	assert.Equal(t, "Sep", f.Education[0].StartMonth)
	assert.True(t, f.Education[0].Current)
}

func TestUpdate_Errors(t *testing.T) {
	f := NewFormState()

	err := f.UpdateExperience(f.Experience[0].ID, "salary", "1")
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "salary", fe.Field)

	err = f.UpdateProject("nope", "name", "x")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "nope", fe.ID)
	assert.Contains(t, err.Error(), "not found")
}

func TestNormalize_AfterDecode(t *testing.T) {
	var f FormState
	raw := `{"personalInfo":{"firstName":"Jane"},"education":[{"school":"MIT","startMonth":"Sep","startYear":"2018"}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &f))

	f.Normalize()

	require.Len(t, f.Education, 1)
	assert.Equal(t, "MIT", f.Education[0].School)
	assert.Equal(t, "2018", f.Education[0].StartYear)
	assert.NotEmpty(t, f.Education[0].ID)
	assert.Len(t, f.Experience, 1)
	assert.Len(t, f.Projects, 1)
}

func TestScoreResult_Report(t *testing.T) {
	r := &ScoreResult{ATSScore: 61, BestScore: 78, ImprovementSuggestions: []string{"Quantify impact"}}
	rep := r.Report()
	assert.Equal(t, 78.0, rep.Overall)
	assert.Equal(t, 61.0, rep.JobMatch)
	assert.Equal(t, []string{"Quantify impact"}, rep.Suggestions)

	var nilResult *ScoreResult
	assert.NotNil(t, nilResult.Report().Suggestions)
}
