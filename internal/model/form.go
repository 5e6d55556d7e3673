package model

import (
	"fmt"

	"github.com/google/uuid"
)

// FormState is the raw, editable resume form. Each entry list always holds at
// least one (possibly blank) entry.
type FormState struct {
	Personal       PersonalInfo      `json:"personalInfo"`
	Summary        string            `json:"summary"`
	Education      []EducationEntry  `json:"education"`
	Experience     []ExperienceEntry `json:"experience"`
	Projects       []ProjectEntry    `json:"projects"`
	Skills         string            `json:"skills"`
	Achievements   string            `json:"achievements"`
	Certifications string            `json:"certifications"`
}

// FieldError reports an update to an unknown entry or field.
type FieldError struct {
	Section string
	ID      string
	Field   string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s entry %q not found", e.Section, e.ID)
	}
	return fmt.Sprintf("%s entry %q has no field %q", e.Section, e.ID, e.Field)
}

func newID() string { return uuid.NewString() }

// NewFormState returns an empty form with one blank entry per list.
func NewFormState() *FormState {
	f := &FormState{}
	f.Normalize()
	return f
}

// Normalize restores the one-entry floor and fills missing entry ids, e.g.
// after decoding a form from JSON.
func (f *FormState) Normalize() {
	if len(f.Education) == 0 {
		f.Education = []EducationEntry{{}}
	}
	if len(f.Experience) == 0 {
		f.Experience = []ExperienceEntry{{}}
	}
	if len(f.Projects) == 0 {
		f.Projects = []ProjectEntry{{}}
	}
	for i := range f.Education {
		if f.Education[i].ID == "" {
			f.Education[i].ID = newID()
		}
	}
	for i := range f.Experience {
		if f.Experience[i].ID == "" {
			f.Experience[i].ID = newID()
		}
	}
	for i := range f.Projects {
		if f.Projects[i].ID == "" {
			f.Projects[i].ID = newID()
		}
	}
}

func (f *FormState) AddEducation() string {
	id := newID()
	f.Education = append(f.Education, EducationEntry{ID: id})
	return id
}

func (f *FormState) AddExperience() string {
	id := newID()
	f.Experience = append(f.Experience, ExperienceEntry{ID: id})
	return id
}

func (f *FormState) AddProject() string {
	id := newID()
	f.Projects = append(f.Projects, ProjectEntry{ID: id})
	return id
}

// RemoveEducation deletes the entry with id. Removing the last remaining
// entry is a no-op. It reports whether an entry was removed.
func (f *FormState) RemoveEducation(id string) bool {
	var removed bool
	f.Education, removed = removeByID(f.Education, id, func(e EducationEntry) string { return e.ID })
	return removed
}

func (f *FormState) RemoveExperience(id string) bool {
	var removed bool
	f.Experience, removed = removeByID(f.Experience, id, func(e ExperienceEntry) string { return e.ID })
	return removed
}

func (f *FormState) RemoveProject(id string) bool {
	var removed bool
	f.Projects, removed = removeByID(f.Projects, id, func(e ProjectEntry) string { return e.ID })
	return removed
}

func removeByID[T any](list []T, id string, key func(T) string) ([]T, bool) {
	if len(list) <= 1 {
		return list, false
	}
	for i := range list {
		if key(list[i]) == id {
			out := make([]T, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...), true
		}
	}
	return list, false
}

// UpdateEducation sets one field (by its JSON name) on the entry with id.
func (f *FormState) UpdateEducation(id, field, value string) error {
	for i := range f.Education {
		if f.Education[i].ID != id {
			continue
		}
		e := &f.Education[i]
		switch field {
		case "school":
			e.School = value
		case "degree":
			e.Degree = value
		case "field":
			e.Field = value
		case "gpa":
			e.GPA = value
		default:
			if !e.Period.set(field, value) {
				return &FieldError{Section: "education", ID: id, Field: field}
			}
		}
		return nil
	}
	return &FieldError{Section: "education", ID: id}
}

func (f *FormState) UpdateExperience(id, field, value string) error {
	for i := range f.Experience {
		if f.Experience[i].ID != id {
			continue
		}
		e := &f.Experience[i]
		switch field {
		case "company":
			e.Company = value
		case "position":
			e.Position = value
		case "description":
			e.Description = value
		default:
			if !e.Period.set(field, value) {
				return &FieldError{Section: "experience", ID: id, Field: field}
			}
		}
		return nil
	}
	return &FieldError{Section: "experience", ID: id}
}

func (f *FormState) UpdateProject(id, field, value string) error {
	for i := range f.Projects {
		if f.Projects[i].ID != id {
			continue
		}
		e := &f.Projects[i]
		switch field {
		case "name":
			e.Name = value
		case "url":
			e.URL = value
		case "technologies":
			e.Technologies = value
		case "description":
			e.Description = value
		default:
			if !e.Period.set(field, value) {
				return &FieldError{Section: "project", ID: id, Field: field}
			}
		}
		return nil
	}
	return &FieldError{Section: "project", ID: id}
}

// set updates a period subfield by JSON name; "current" accepts "true"/"false".
func (p *Period) set(field, value string) bool {
	switch field {
	case "startMonth":
		p.StartMonth = value
	case "startYear":
		p.StartYear = value
	case "endMonth":
		p.EndMonth = value
	case "endYear":
		p.EndYear = value
	case "current":
		p.Current = value == "true"
	default:
		return false
	}
	return true
}
