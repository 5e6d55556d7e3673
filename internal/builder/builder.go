// Package builder turns raw form state into a normalized ResumeDocument.
package builder

import (
	"strings"
	"sync"

	"github.com/adityarajsrv/CareerQuill/internal/model"
	"github.com/adityarajsrv/CareerQuill/internal/skills"
	"github.com/adityarajsrv/CareerQuill/internal/textparse"
)

const contactSeparator = " | "

type options struct {
	categorizer *skills.Categorizer
}

// Option configures Build.
type Option func(*options)

// WithCategorizer overrides the default skill taxonomy.
func WithCategorizer(c *skills.Categorizer) Option {
	return func(o *options) { o.categorizer = c }
}

var defaultCategorizer = sync.OnceValue(func() *skills.Categorizer {
	return skills.NewCategorizer(skills.Default())
})

// Build assembles the document. It never mutates form and never fails;
// entries without identifying fields are dropped section by section.
func Build(form model.FormState, opts ...Option) *model.ResumeDocument {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.categorizer == nil {
		o.categorizer = defaultCategorizer()
	}

	p := trimPersonal(form.Personal)
	doc := &model.ResumeDocument{
		FullName:       strings.TrimSpace(p.FirstName + " " + p.LastName),
		Personal:       p,
		ContactLine:    contactLine(p),
		AddressLine:    addressLine(p),
		Summary:        strings.TrimSpace(form.Summary),
		Education:      []model.EducationItem{},
		Experience:     []model.ExperienceItem{},
		Projects:       []model.ProjectItem{},
		Achievements:   textparse.List(form.Achievements),
		Certifications: textparse.List(form.Certifications),
	}

	for _, e := range form.Education {
		if item, ok := educationItem(e); ok {
			doc.Education = append(doc.Education, item)
		}
	}
	for _, e := range form.Experience {
		if item, ok := experienceItem(e); ok {
			doc.Experience = append(doc.Experience, item)
		}
	}
	for _, e := range form.Projects {
		if item, ok := projectItem(e); ok {
			doc.Projects = append(doc.Projects, item)
		}
	}
	doc.HasEducation = len(doc.Education) > 0
	doc.HasExperience = len(doc.Experience) > 0
	doc.HasProjects = len(doc.Projects) > 0

	doc.SkillTokens = textparse.List(form.Skills)
	doc.Skills = o.categorizer.Categorize(doc.SkillTokens)
	return doc
}

func trimPersonal(p model.PersonalInfo) model.PersonalInfo {
	for _, f := range []*string{
		&p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Address,
		&p.City, &p.State, &p.ZipCode, &p.LinkedIn, &p.GitHub,
	} {
		*f = strings.TrimSpace(*f)
	}
	return p
}

// contactLine joins the populated contact channels in display order.
func contactLine(p model.PersonalInfo) string {
	return joinNonEmpty(contactSeparator, p.Email, p.LinkedIn, p.GitHub, p.Phone)
}

func addressLine(p model.PersonalInfo) string {
	return joinNonEmpty(", ", p.Address, p.City, joinNonEmpty(" ", p.State, p.ZipCode))
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, sep)
}

// GPALabel is "Percentage" for class-graded degrees and "CGPA" otherwise.
func GPALabel(degree string) string {
	if strings.Contains(degree, "Class") {
		return "Percentage"
	}
	return "CGPA"
}

func educationItem(e model.EducationEntry) (model.EducationItem, bool) {
	school, degree := strings.TrimSpace(e.School), strings.TrimSpace(e.Degree)
	if school == "" && degree == "" {
		return model.EducationItem{}, false
	}
	d := resolve(e.Period)
	item := model.EducationItem{
		ID:      e.ID,
		School:  school,
		Degree:  degree,
		Field:   strings.TrimSpace(e.Field),
		GPA:     strings.TrimSpace(e.GPA),
		Start:   d.start,
		End:     d.end,
		Current: e.Current,
		Dates:   d.text,
	}
	if item.GPA != "" {
		item.GPALabel = GPALabel(degree)
	}
	return item, true
}

func experienceItem(e model.ExperienceEntry) (model.ExperienceItem, bool) {
	company, position := strings.TrimSpace(e.Company), strings.TrimSpace(e.Position)
	if company == "" && position == "" && strings.TrimSpace(e.Description) == "" {
		return model.ExperienceItem{}, false
	}
	d := resolve(e.Period)
	return model.ExperienceItem{
		ID:       e.ID,
		Company:  company,
		Position: position,
		Start:    d.start,
		End:      d.end,
		Current:  e.Current,
		Dates:    d.text,
		Bullets:  textparse.Lines(e.Description),
	}, true
}

func projectItem(e model.ProjectEntry) (model.ProjectItem, bool) {
	name, url, tech := strings.TrimSpace(e.Name), strings.TrimSpace(e.URL), strings.TrimSpace(e.Technologies)
	if name == "" && url == "" && tech == "" && strings.TrimSpace(e.Description) == "" {
		return model.ProjectItem{}, false
	}
	d := resolve(e.Period)
	return model.ProjectItem{
		ID:           e.ID,
		Name:         name,
		URL:          url,
		Technologies: tech,
		Stack:        textparse.List(tech),
		Start:        d.start,
		End:          d.end,
		Dates:        d.text,
		Bullets:      textparse.Sentences(e.Description),
	}, true
}
