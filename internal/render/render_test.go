package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityarajsrv/CareerQuill/internal/builder"
	"github.com/adityarajsrv/CareerQuill/internal/model"
)

func sampleForm() model.FormState {
	return model.FormState{
		Personal: model.PersonalInfo{
			FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Phone: "555-0100",
			LinkedIn: "linkedin.com/in/janedoe", City: "Boston", State: "MA",
		},
		Summary: "Engineer who ships.",
		Education: []model.EducationEntry{{
			ID: "e1", School: "MIT", Degree: "BS", Field: "Computer Science", GPA: "3.9",
			Period: model.Period{StartMonth: "Sep", StartYear: "2018", EndMonth: "May", EndYear: "2022"},
		}},
		Experience: []model.ExperienceEntry{{
			ID: "x1", Company: "Acme", Position: "Backend Engineer", Description: "Built APIs\nRan on-call",
			Period: model.Period{StartMonth: "Jun", StartYear: "2022", Current: true},
		}},
		Projects: []model.ProjectEntry{{
			ID: "p1", Name: "Quill", URL: "https://www.github.com/jane/quill", Technologies: "Go, React.js",
			Description: "Resume builder",
		}},
		Skills:       "Java, React.js, Teamwork",
		Achievements: "Hackathon winner",
	}
}

func sampleDoc() *model.ResumeDocument { return builder.Build(sampleForm()) }

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	ids := make([]string, 0)
	for _, tpl := range r.All() {
		ids = append(ids, tpl.ID())
	}
	assert.Equal(t, []string{"classic", "sidebar", "profile", "portrait", "tabular"}, ids)

	tpl, err := r.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplate, tpl.ID())

	_, err = r.Lookup("fancy")
	assert.True(t, errors.Is(err, ErrUnknownTemplate))
}

func TestGallery(t *testing.T) {
	g := DefaultRegistry().Gallery()
	require.Len(t, g, 5)
	assert.Equal(t, Info{ID: "sidebar", Name: "Modern Sidebar", Columns: 2}, g[1])
	assert.Equal(t, Info{ID: "portrait", Name: "Portrait", Columns: 2, Photo: true}, g[3])
}

func TestTemplates_NilAndEmptyDocument(t *testing.T) {
	placeholders := map[string]string{
		"classic": "Your Name", "sidebar": "Your Name", "profile": "First Last",
		"portrait": "FIRST LAST", "tabular": "Your Name",
	}
	for _, tpl := range DefaultRegistry().All() {
		t.Run(tpl.ID(), func(t *testing.T) {
			for _, doc := range []*model.ResumeDocument{nil, {}, builder.Build(model.FormState{})} {
				l := tpl.Render(doc, Options{})
				require.NotNil(t, l)
				assert.Equal(t, placeholders[tpl.ID()], l.Header.Name)
				assert.Empty(t, l.Main)
				assert.Empty(t, l.Sidebar)
			}
		})
	}
}

func TestTemplates_ViewerNameFallback(t *testing.T) {
	l := Portrait{}.Render(nil, Options{ViewerName: "Jane Doe"})
	assert.Equal(t, "JANE DOE", l.Header.Name)
	assert.Equal(t, PlaceholderTitle, l.Header.Title)

	l = Classic{}.Render(sampleDoc(), Options{ViewerName: "Someone Else"})
	assert.Equal(t, "Jane Doe", l.Header.Name)
}

func TestTemplates_SectionOmission(t *testing.T) {
	form := sampleForm()
	form.Education = []model.EducationEntry{{ID: "e1"}}
	form.Projects = nil
	doc := builder.Build(form)

	for _, tpl := range DefaultRegistry().All() {
		l := tpl.Render(doc, Options{})
		assert.Nil(t, l.Section(KeyEducation), tpl.ID())
		assert.Nil(t, l.Section(KeyProjects), tpl.ID())
		assert.NotNil(t, l.Section(KeyExperience), tpl.ID())
	}
}

func TestClassic(t *testing.T) {
	l := Classic{}.Render(sampleDoc(), Options{})

	assert.Equal(t, 1, l.Columns)
	assert.False(t, l.Header.PhotoSlot)
	assert.Equal(t, "jane@x.com | linkedin.com/in/janedoe | 555-0100", l.Header.ContactLine)
	assert.Equal(t, []string{"summary", "education", "experience", "projects", "skills", "achievements"}, l.Keys())

	edu := l.Section(KeyEducation).Entries[0]
	assert.Equal(t, "MIT", edu.Heading)
	assert.Equal(t, "BS, Computer Science", edu.Subheading)
	assert.Equal(t, "Sep 2018 - May 2022", edu.Dates)
	assert.Equal(t, "CGPA: 3.9", edu.Meta)

	prj := l.Section(KeyProjects).Entries[0]
	require.NotNil(t, prj.Link)
	assert.Equal(t, "github.com", prj.Link.Label)

	groups := l.Section(KeySkills).Groups
	require.Len(t, groups, 3)
	assert.Equal(t, Group{Name: "Other Skills", Items: []string{"Teamwork"}}, groups[2])
}

func TestSidebar(t *testing.T) {
	l := Sidebar{}.Render(sampleDoc(), Options{})
	assert.Equal(t, 2, l.Columns)
	require.Len(t, l.Sidebar, 1)
	assert.Equal(t, KeySkills, l.Sidebar[0].Key)
	for _, s := range l.Main {
		assert.NotEqual(t, KeySkills, s.Key)
	}
}

func TestProfile(t *testing.T) {
	l := Profile{}.Render(sampleDoc(), Options{PhotoURL: "https://cdn.x/jane.png"})

	assert.True(t, l.Header.PhotoSlot)
	assert.Equal(t, "https://cdn.x/jane.png", l.Header.PhotoURL)
	assert.Equal(t, "Backend Engineer", l.Header.Title)
	assert.Equal(t, "Email", l.Header.Contacts[0].Label)
	assert.Equal(t, "Boston, MA", l.Header.Contacts[len(l.Header.Contacts)-1].Value)

	require.GreaterOrEqual(t, len(l.Main), 2)
	assert.Equal(t, KeyExperience, l.Main[1].Key)
	assert.True(t, l.Main[1].Highlight)
	assert.Equal(t, "BS in Computer Science", l.Section(KeyEducation).Entries[0].Heading)
	assert.Equal(t, []string{"Java", "React.js", "Teamwork"}, l.Section(KeySkills).Items)
}

func TestPortrait(t *testing.T) {
	l := Portrait{}.Render(sampleDoc(), Options{})
	assert.Equal(t, "JANE DOE", l.Header.Name)
	assert.Equal(t, "Backend Engineer", l.Header.Title)
	var sidebar []string
	for _, s := range l.Sidebar {
		sidebar = append(sidebar, s.Key)
	}
	assert.Equal(t, []string{"summary", "skills", "achievements"}, sidebar)
}

func TestTabular(t *testing.T) {
	l := Tabular{}.Render(sampleDoc(), Options{})
	assert.Equal(t, []string{"BS, Computer Science", "MIT"}, l.Header.Lines)

	table := l.Section(KeyEducation).Table
	require.NotNil(t, table)
	assert.Equal(t, []string{"Degree/Certificate", "Institute/Board", "CGPA/Percentage", "Year"}, table.Columns)
	assert.Equal(t, [][]string{{"BS, Computer Science", "MIT", "3.9", "May 2022"}}, table.Rows)
}

func TestRender_DoesNotMutateDocument(t *testing.T) {
	doc := sampleDoc()
	before := *doc
	beforeSkills := append(model.SkillSet(nil), doc.Skills...)
	for _, tpl := range DefaultRegistry().All() {
		tpl.Render(doc, Options{ViewerName: "x"})
	}
	assert.Equal(t, before.FullName, doc.FullName)
	assert.Equal(t, beforeSkills, doc.Skills)
}

func TestHTMLRenderer(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	out, err := r.RenderString(Classic{}.Render(sampleDoc(), Options{}))
	require.NoError(t, err)

	dom, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	root := dom.Find(CaptureSelector)
	require.Equal(t, 1, root.Length())
	assert.True(t, root.HasClass("tpl-classic"))
	assert.Equal(t, "Jane Doe", dom.Find("h1.name").Text())
	assert.Equal(t, 1, dom.Find("section[data-section=education]").Length())
	assert.Equal(t, 0, dom.Find("section[data-section=certifications]").Length())
	assert.Equal(t, "https://www.github.com/jane/quill", dom.Find("a.link").AttrOr("href", ""))
	assert.Contains(t, dom.Find("style").Text(), "#resume-content")
}

func TestHTMLRenderer_EscapesUserText(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	doc := &model.ResumeDocument{FullName: "<script>alert(1)</script>"}
	out, err := r.RenderString(Classic{}.Render(doc, Options{}))
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>alert(1)</script>")
}

func TestLinkLabel(t *testing.T) {
	assert.Equal(t, "github.com", linkLabel("github.com/jane"))
	assert.Equal(t, "example.co.uk", linkLabel("https://www.blog.example.co.uk/post"))
	assert.Equal(t, "localhost", linkLabel("http://localhost:8080/x"))
	assert.Equal(t, "", linkLabel("  "))
}
