package render

import (
	"strings"

	"github.com/adityarajsrv/CareerQuill/internal/model"
)

// Classic is a single column with grouped skills near the end.
type Classic struct{}

func (Classic) ID() string   { return "classic" }
func (Classic) Name() string { return "Classic" }

func (t Classic) Render(doc *model.ResumeDocument, opts Options) *Layout {
	doc = orEmpty(doc)
	l := &Layout{
		Template: t.ID(),
		Columns:  1,
		Header:   Header{Name: displayName(doc, opts, "Your Name"), ContactLine: doc.ContactLine},
	}
	if doc.AddressLine != "" {
		l.Header.Lines = []string{doc.AddressLine}
	}
	l.Main = appendIf(l.Main, summarySection(doc, "Summary"))
	l.Main = appendIf(l.Main, educationSection(doc))
	l.Main = appendIf(l.Main, experienceSection(doc))
	l.Main = appendIf(l.Main, projectsSection(doc))
	l.Main = appendIf(l.Main, skillGroups(doc))
	l.Main = appendIf(l.Main, achievementsSection(doc))
	l.Main = appendIf(l.Main, certificationsSection(doc))
	return l
}

// Sidebar puts the skill groups in a narrow left column.
type Sidebar struct{}

func (Sidebar) ID() string   { return "sidebar" }
func (Sidebar) Name() string { return "Modern Sidebar" }

func (t Sidebar) Render(doc *model.ResumeDocument, opts Options) *Layout {
	doc = orEmpty(doc)
	l := &Layout{
		Template: t.ID(),
		Columns:  2,
		Header:   Header{Name: displayName(doc, opts, "Your Name"), ContactLine: doc.ContactLine},
	}
	l.Sidebar = appendIf(l.Sidebar, skillGroups(doc))
	l.Main = appendIf(l.Main, summarySection(doc, "Summary"))
	l.Main = appendIf(l.Main, educationSection(doc))
	l.Main = appendIf(l.Main, experienceSection(doc))
	l.Main = appendIf(l.Main, projectsSection(doc))
	l.Main = appendIf(l.Main, achievementsSection(doc))
	l.Main = appendIf(l.Main, certificationsSection(doc))
	return l
}

// Profile has a photo header and leads with highlighted experience.
type Profile struct{}

func (Profile) ID() string   { return "profile" }
func (Profile) Name() string { return "Professional Profile" }

func (t Profile) Render(doc *model.ResumeDocument, opts Options) *Layout {
	doc = orEmpty(doc)
	l := &Layout{
		Template: t.ID(),
		Columns:  1,
		Header: Header{
			Name:      displayName(doc, opts, "First Last"),
			Title:     professionalTitle(doc),
			Contacts:  labelledContacts(doc),
			PhotoSlot: true,
			PhotoURL:  opts.PhotoURL,
		},
	}
	l.Main = appendIf(l.Main, summarySection(doc, "Profile"))
	if exp := experienceSection(doc); exp != nil {
		exp.Highlight = true
		l.Main = append(l.Main, *exp)
	}
	l.Main = appendIf(l.Main, educationProse(doc))
	l.Main = appendIf(l.Main, projectsSection(doc))
	l.Main = appendIf(l.Main, skillList(doc))
	l.Main = appendIf(l.Main, achievementsSection(doc))
	l.Main = appendIf(l.Main, certificationsSection(doc))
	return l
}

// Portrait is a two-column layout with a photo and an upper-case name.
type Portrait struct{}

func (Portrait) ID() string   { return "portrait" }
func (Portrait) Name() string { return "Portrait" }

func (t Portrait) Render(doc *model.ResumeDocument, opts Options) *Layout {
	doc = orEmpty(doc)
	l := &Layout{
		Template: t.ID(),
		Columns:  2,
		Header: Header{
			Name:      strings.ToUpper(displayName(doc, opts, "FIRST LAST")),
			Title:     professionalTitle(doc),
			Contacts:  labelledContacts(doc),
			PhotoSlot: true,
			PhotoURL:  opts.PhotoURL,
		},
	}
	l.Sidebar = appendIf(l.Sidebar, summarySection(doc, "Profile"))
	l.Sidebar = appendIf(l.Sidebar, skillList(doc))
	l.Sidebar = appendIf(l.Sidebar, achievementsSection(doc))
	l.Main = appendIf(l.Main, experienceSection(doc))
	l.Main = appendIf(l.Main, educationSection(doc))
	l.Main = appendIf(l.Main, projectsSection(doc))
	l.Main = appendIf(l.Main, certificationsSection(doc))
	return l
}

// Tabular shows education as a table and the latest degree in the header.
type Tabular struct{}

func (Tabular) ID() string   { return "tabular" }
func (Tabular) Name() string { return "Academic Table" }

func (t Tabular) Render(doc *model.ResumeDocument, opts Options) *Layout {
	doc = orEmpty(doc)
	l := &Layout{
		Template: t.ID(),
		Columns:  1,
		Header:   Header{Name: displayName(doc, opts, "Your Name"), ContactLine: doc.ContactLine},
	}
	if len(doc.Education) > 0 {
		e := doc.Education[0]
		l.Header.Lines = appendNonEmpty(l.Header.Lines, joinWords(", ", e.Degree, e.Field), e.School)
	}
	l.Main = appendIf(l.Main, summarySection(doc, "Summary"))
	l.Main = appendIf(l.Main, educationTable(doc))
	l.Main = appendIf(l.Main, experienceSection(doc))
	l.Main = appendIf(l.Main, projectsSection(doc))
	l.Main = appendIf(l.Main, skillGroups(doc))
	l.Main = appendIf(l.Main, achievementsSection(doc))
	l.Main = appendIf(l.Main, certificationsSection(doc))
	return l
}

func appendNonEmpty(list []string, items ...string) []string {
	for _, s := range items {
		if s != "" {
			list = append(list, s)
		}
	}
	return list
}
