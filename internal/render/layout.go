// Package render lays a ResumeDocument out according to one of several
// resume templates and turns the layout into HTML.
package render

// Layout is the renderable tree produced by a Template.
type Layout struct {
	Template string    `json:"template"`
	Columns  int       `json:"columns"`
	Header   Header    `json:"header"`
	Sidebar  []Section `json:"sidebar,omitempty"`
	Main     []Section `json:"main"`
}

// Contact is one labelled contact channel. Href is empty for plain text.
type Contact struct {
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
	Href  string `json:"href,omitempty"`
}

type Header struct {
	Name        string    `json:"name"`
	Title       string    `json:"title,omitempty"`
	ContactLine string    `json:"contactLine,omitempty"`
	Contacts    []Contact `json:"contacts,omitempty"`
	PhotoSlot   bool      `json:"photoSlot"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Lines       []string  `json:"lines,omitempty"`
}

// Section is one titled block. Exactly the populated fields are drawn.
type Section struct {
	Key       string   `json:"key"`
	Title     string   `json:"title"`
	Highlight bool     `json:"highlight,omitempty"`
	Paragraph string   `json:"paragraph,omitempty"`
	Entries   []Entry  `json:"entries,omitempty"`
	Groups    []Group  `json:"groups,omitempty"`
	Items     []string `json:"items,omitempty"`
	Table     *Table   `json:"table,omitempty"`
}

type Entry struct {
	Heading    string   `json:"heading"`
	Subheading string   `json:"subheading,omitempty"`
	Dates      string   `json:"dates,omitempty"`
	Meta       string   `json:"meta,omitempty"`
	Link       *Link    `json:"link,omitempty"`
	Bullets    []string `json:"bullets,omitempty"`
}

type Link struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

type Group struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Section returns the section with key from either column, or nil.
func (l *Layout) Section(key string) *Section {
	for _, col := range [][]Section{l.Sidebar, l.Main} {
		for i := range col {
			if col[i].Key == key {
				return &col[i]
			}
		}
	}
	return nil
}

// Keys lists section keys in drawing order, sidebar first.
func (l *Layout) Keys() []string {
	keys := make([]string, 0, len(l.Sidebar)+len(l.Main))
	for _, s := range l.Sidebar {
		keys = append(keys, s.Key)
	}
	for _, s := range l.Main {
		keys = append(keys, s.Key)
	}
	return keys
}
