package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityarajsrv/CareerQuill/internal/model"
)

func TestValidate_ValidForm(t *testing.T) {
	assert.Empty(t, Validate(janeDoe()))
}

func TestValidate_PeriodConsistency(t *testing.T) {
	form := janeDoe()
	form.Experience = []model.ExperienceEntry{{
		ID: "x1", Company: "Acme",
		Period: model.Period{StartMonth: "March", StartYear: ""},
	}}

	errs := Validate(form)

	require.Contains(t, errs, "experience-x1-startYear")
	assert.NotContains(t, errs, "experience-x1-startMonth")
	assert.Len(t, errs, 1)
}

func TestValidate_PeriodRules(t *testing.T) {
	tests := []struct {
		name string
		p    model.Period
		key  string
	}{
		{"year without month", model.Period{StartYear: "2020"}, "project-p1-startMonth"},
		{"end month without year", model.Period{EndMonth: "May"}, "project-p1-endYear"},
		{"bad year", model.Period{StartMonth: "May", StartYear: "20"}, "project-p1-startYear"},
		{"decimal year", model.Period{StartMonth: "Sep", StartYear: "2.02"}, "project-p1-startYear"},
		{"negative year", model.Period{StartMonth: "Sep", StartYear: "-123"}, "project-p1-startYear"},
		{"signed end year", model.Period{StartMonth: "Sep", StartYear: "2020", EndMonth: "May", EndYear: "+202"}, "project-p1-endYear"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := janeDoe()
			form.Projects = []model.ProjectEntry{{ID: "p1", Name: "x", Period: tt.p}}
			assert.Contains(t, Validate(form), tt.key)
		})
	}
}

func TestValidate_CurrentIgnoresEnd(t *testing.T) {
	form := janeDoe()
	form.Experience = []model.ExperienceEntry{{
		ID: "x1", Company: "Acme",
		Period: model.Period{StartMonth: "Jan", StartYear: "2021", EndMonth: "May", Current: true},
	}}
	assert.Empty(t, Validate(form))
}

func TestValidate_PersonalFields(t *testing.T) {
	form := janeDoe()
	form.Personal = model.PersonalInfo{FirstName: " "}
	form.Skills = "  "

	errs := Validate(form)

	for _, key := range []string{"firstName", "lastName", "email", "phone", "skills"} {
		assert.Contains(t, errs, key)
	}
}

func TestValidate_EmailFormat(t *testing.T) {
	form := janeDoe()
	form.Personal.Email = "not-an-email"
	errs := Validate(form)
	assert.Equal(t, "email is not valid", errs["email"])
	assert.NotContains(t, errs, "phone")
}

func TestValidate_EducationPairs(t *testing.T) {
	form := janeDoe()
	form.Education = append(form.Education,
		model.EducationEntry{ID: "e2", School: "Stanford"},
		model.EducationEntry{ID: "e3", Degree: "MS"},
	)
	errs := Validate(form)
	assert.Contains(t, errs, "education-e2-degree")
	assert.Contains(t, errs, "education-e3-school")
}

func TestValidate_RequiresOneEducation(t *testing.T) {
	form := janeDoe()
	form.Education = []model.EducationEntry{{ID: "e1"}}
	errs := Validate(form)
	assert.Contains(t, errs, "education-e1-school")
	assert.Contains(t, errs, "education-e1-degree")
}

func TestGenerate_ReturnsValidationError(t *testing.T) {
	form := janeDoe()
	form.Personal.LastName = ""

	doc, err := Generate(form)

	assert.Nil(t, doc)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "lastName")
	assert.Contains(t, err.Error(), "lastName")
}
