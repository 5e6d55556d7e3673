package model

// Go models for the resume form and the render-ready document. The document
// shape matches templates/resume.schema.json.

type PersonalInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
}

// Period is a start/end month-year pair. End fields are ignored when Current is set.
type Period struct {
	StartMonth string `json:"startMonth"`
	StartYear  string `json:"startYear" validate:"omitempty,number,len=4"`
	EndMonth   string `json:"endMonth"`
	EndYear    string `json:"endYear" validate:"omitempty,number,len=4"`
	Current    bool   `json:"current"`
}

type EducationEntry struct {
	ID     string `json:"id"`
	School string `json:"school"`
	Degree string `json:"degree"`
	Field  string `json:"field"`
	GPA    string `json:"gpa"`
	Period
}

type ExperienceEntry struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Description string `json:"description"`
	Period
}

type ProjectEntry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	Technologies string `json:"technologies"`
	Description  string `json:"description"`
	Period
}

// SkillCategory is one named bucket of skills in input order.
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// SkillSet holds the non-empty categories in display order.
type SkillSet []SkillCategory

// Get returns the skills of the named category, or nil.
func (s SkillSet) Get(name string) []string {
	for _, c := range s {
		if c.Name == name {
			return c.Skills
		}
	}
	return nil
}

// All returns every skill across categories.
func (s SkillSet) All() []string {
	var out []string
	for _, c := range s {
		out = append(out, c.Skills...)
	}
	return out
}

type EducationItem struct {
	ID       string `json:"id"`
	School   string `json:"school"`
	Degree   string `json:"degree"`
	Field    string `json:"field,omitempty"`
	GPA      string `json:"gpa,omitempty"`
	GPALabel string `json:"gpaLabel,omitempty"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Current  bool   `json:"current,omitempty"`
	Dates    string `json:"dates,omitempty"`
}

type ExperienceItem struct {
	ID       string   `json:"id"`
	Company  string   `json:"company"`
	Position string   `json:"position"`
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
	Current  bool     `json:"current,omitempty"`
	Dates    string   `json:"dates,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

type ProjectItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	URL          string   `json:"url,omitempty"`
	Technologies string   `json:"technologies,omitempty"`
	Stack        []string `json:"stack,omitempty"`
	Start        string   `json:"start,omitempty"`
	End          string   `json:"end,omitempty"`
	Dates        string   `json:"dates,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
}

// ResumeDocument is the normalized, render-ready resume built once per
// generate action. Templates only read it.
type ResumeDocument struct {
	FullName       string           `json:"fullName"`
	Personal       PersonalInfo     `json:"personal"`
	ContactLine    string           `json:"contactLine"`
	AddressLine    string           `json:"addressLine,omitempty"`
	Summary        string           `json:"summary,omitempty"`
	Education      []EducationItem  `json:"education"`
	Experience     []ExperienceItem `json:"experience"`
	Projects       []ProjectItem    `json:"projects"`
	HasEducation   bool             `json:"hasEducation"`
	HasExperience  bool             `json:"hasExperience"`
	HasProjects    bool             `json:"hasProjects"`
	Skills         SkillSet         `json:"skills"`
	SkillTokens    []string         `json:"skillTokens"`
	Achievements   []string         `json:"achievements"`
	Certifications []string         `json:"certifications"`
}

// ScoreResult is the report returned by the external ATS scorer.
type ScoreResult struct {
	ATSScore               float64                `json:"ats_score"`
	BestScore              float64                `json:"best_score"`
	WorstScore             float64                `json:"worst_score"`
	ImprovementSuggestions []string               `json:"improvement_suggestions"`
	Extra                  map[string]interface{} `json:"-"`
}

// ScoreReport is the view of a ScoreResult shown to the user.
type ScoreReport struct {
	Overall     float64  `json:"overall"`
	JobMatch    float64  `json:"jobMatch"`
	Suggestions []string `json:"suggestions"`
}

// Report maps scorer fields onto the display fields: the best score is the
// headline ATS score and the average is the job-match score.
func (r *ScoreResult) Report() ScoreReport {
	if r == nil {
		return ScoreReport{Suggestions: []string{}}
	}
	s := r.ImprovementSuggestions
	if s == nil {
		s = []string{}
	}
	return ScoreReport{Overall: r.BestScore, JobMatch: r.ATSScore, Suggestions: s}
}

// ParseResult is the structured summary returned by the ATS resume parser.
type ParseResult map[string]interface{}
