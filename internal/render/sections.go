package render

import (
	"strings"

	"github.com/adityarajsrv/CareerQuill/internal/model"
)

// Section keys shared by every template.
const (
	KeySummary        = "summary"
	KeyEducation      = "education"
	KeyExperience     = "experience"
	KeyProjects       = "projects"
	KeySkills         = "skills"
	KeyAchievements   = "achievements"
	KeyCertifications = "certifications"
)

// appendIf adds s unless it is nil.
func appendIf(list []Section, s *Section) []Section {
	if s == nil {
		return list
	}
	return append(list, *s)
}

func summarySection(doc *model.ResumeDocument, title string) *Section {
	if doc.Summary == "" {
		return nil
	}
	return &Section{Key: KeySummary, Title: title, Paragraph: doc.Summary}
}

func educationSection(doc *model.ResumeDocument) *Section {
	if !doc.HasEducation {
		return nil
	}
	s := &Section{Key: KeyEducation, Title: "Education"}
	for _, e := range doc.Education {
		entry := Entry{Heading: e.School, Subheading: joinWords(", ", e.Degree, e.Field), Dates: e.Dates}
		if e.School == "" {
			entry.Heading, entry.Subheading = entry.Subheading, ""
		}
		if e.GPA != "" {
			entry.Meta = e.GPALabel + ": " + e.GPA
		}
		s.Entries = append(s.Entries, entry)
	}
	return s
}

// educationProse phrases each entry as "Degree in Field".
func educationProse(doc *model.ResumeDocument) *Section {
	if !doc.HasEducation {
		return nil
	}
	s := &Section{Key: KeyEducation, Title: "Education"}
	for _, e := range doc.Education {
		heading := e.Degree
		if e.Field != "" {
			heading = joinWords(" in ", e.Degree, e.Field)
		}
		entry := Entry{Heading: heading, Subheading: e.School, Dates: e.Dates}
		if heading == "" {
			entry.Heading, entry.Subheading = e.School, ""
		}
		if e.GPA != "" {
			entry.Meta = e.GPALabel + ": " + e.GPA
		}
		s.Entries = append(s.Entries, entry)
	}
	return s
}

func educationTable(doc *model.ResumeDocument) *Section {
	if !doc.HasEducation {
		return nil
	}
	t := &Table{Columns: []string{"Degree/Certificate", "Institute/Board", "CGPA/Percentage", "Year"}}
	for _, e := range doc.Education {
		year := e.End
		if year == "" {
			year = e.Dates
		}
		t.Rows = append(t.Rows, []string{joinWords(", ", e.Degree, e.Field), e.School, e.GPA, year})
	}
	return &Section{Key: KeyEducation, Title: "Education", Table: t}
}

func experienceSection(doc *model.ResumeDocument) *Section {
	if !doc.HasExperience {
		return nil
	}
	s := &Section{Key: KeyExperience, Title: "Experience"}
	for _, e := range doc.Experience {
		entry := Entry{Heading: e.Company, Subheading: e.Position, Dates: e.Dates, Bullets: e.Bullets}
		if e.Company == "" {
			entry.Heading, entry.Subheading = e.Position, ""
		}
		s.Entries = append(s.Entries, entry)
	}
	return s
}

func projectsSection(doc *model.ResumeDocument) *Section {
	if !doc.HasProjects {
		return nil
	}
	s := &Section{Key: KeyProjects, Title: "Projects"}
	for _, p := range doc.Projects {
		s.Entries = append(s.Entries, Entry{
			Heading:    p.Name,
			Subheading: strings.Join(p.Stack, ", "),
			Dates:      p.Dates,
			Link:       newLink(p.URL),
			Bullets:    p.Bullets,
		})
	}
	return s
}

func skillGroups(doc *model.ResumeDocument) *Section {
	if len(doc.Skills) == 0 {
		return nil
	}
	s := &Section{Key: KeySkills, Title: "Technical Skills"}
	for _, c := range doc.Skills {
		s.Groups = append(s.Groups, Group{Name: c.Name, Items: c.Skills})
	}
	return s
}

func skillList(doc *model.ResumeDocument) *Section {
	all := doc.Skills.All()
	if len(all) == 0 {
		return nil
	}
	return &Section{Key: KeySkills, Title: "Skills", Items: all}
}

func listSection(key, title string, items []string) *Section {
	if len(items) == 0 {
		return nil
	}
	return &Section{Key: key, Title: title, Items: items}
}

func achievementsSection(doc *model.ResumeDocument) *Section {
	return listSection(KeyAchievements, "Achievements", doc.Achievements)
}

func certificationsSection(doc *model.ResumeDocument) *Section {
	return listSection(KeyCertifications, "Certifications", doc.Certifications)
}

// labelledContacts lists each populated channel with its label.
func labelledContacts(doc *model.ResumeDocument) []Contact {
	p := doc.Personal
	var out []Contact
	if p.Email != "" {
		out = append(out, Contact{Label: "Email", Value: p.Email, Href: "mailto:" + p.Email})
	}
	if p.Phone != "" {
		out = append(out, Contact{Label: "Phone", Value: p.Phone})
	}
	if p.LinkedIn != "" {
		out = append(out, Contact{Label: "LinkedIn", Value: p.LinkedIn, Href: absURL(p.LinkedIn)})
	}
	if p.GitHub != "" {
		out = append(out, Contact{Label: "GitHub", Value: p.GitHub, Href: absURL(p.GitHub)})
	}
	if doc.AddressLine != "" {
		out = append(out, Contact{Label: "Address", Value: doc.AddressLine})
	}
	return out
}

// professionalTitle is the first non-empty experience position.
func professionalTitle(doc *model.ResumeDocument) string {
	for _, e := range doc.Experience {
		if e.Position != "" {
			return e.Position
		}
	}
	return PlaceholderTitle
}

func joinWords(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
