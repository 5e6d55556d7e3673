package render

import (
	"errors"
	"fmt"

	"github.com/adityarajsrv/CareerQuill/internal/model"
)

// ErrUnknownTemplate is returned by Lookup for ids that are not registered.
var ErrUnknownTemplate = errors.New("unknown template")

// DefaultTemplate is used when a request names no template.
const DefaultTemplate = "classic"

// PlaceholderTitle stands in for a missing professional title.
const PlaceholderTitle = "Professional Title"

// Options carries per-request inputs that are not part of the document.
type Options struct {
	// ViewerName is the signed-in user's display name, used when the
	// document has no name of its own.
	ViewerName string
	PhotoURL   string
}

// Template lays out a document. Implementations must not modify doc and
// must accept a nil or empty document.
type Template interface {
	ID() string
	Name() string
	Render(doc *model.ResumeDocument, opts Options) *Layout
}

// Info describes a template for the gallery.
type Info struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Columns int    `json:"columns"`
	Photo   bool   `json:"photo"`
}

// Describe renders an empty document to report the template's shape.
func Describe(t Template) Info {
	l := t.Render(nil, Options{})
	return Info{ID: t.ID(), Name: t.Name(), Columns: l.Columns, Photo: l.Header.PhotoSlot}
}

// Registry is an ordered, read-only set of templates.
type Registry struct {
	order []Template
	byID  map[string]Template
}

func NewRegistry(templates ...Template) *Registry {
	r := &Registry{byID: make(map[string]Template, len(templates))}
	for _, t := range templates {
		if _, dup := r.byID[t.ID()]; dup {
			continue
		}
		r.order = append(r.order, t)
		r.byID[t.ID()] = t
	}
	return r
}

// DefaultRegistry holds every built-in template in gallery order.
func DefaultRegistry() *Registry {
	return NewRegistry(Classic{}, Sidebar{}, Profile{}, Portrait{}, Tabular{})
}

// Lookup returns the template with id; an empty id selects DefaultTemplate.
func (r *Registry) Lookup(id string) (Template, error) {
	if id == "" {
		id = DefaultTemplate
	}
	t, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return t, nil
}

func (r *Registry) All() []Template {
	out := make([]Template, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Gallery() []Info {
	out := make([]Info, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, Describe(t))
	}
	return out
}

// displayName resolves the header name: document, then viewer, then placeholder.
func displayName(doc *model.ResumeDocument, opts Options, placeholder string) string {
	if doc.FullName != "" {
		return doc.FullName
	}
	if opts.ViewerName != "" {
		return opts.ViewerName
	}
	return placeholder
}

func orEmpty(doc *model.ResumeDocument) *model.ResumeDocument {
	if doc == nil {
		return &model.ResumeDocument{}
	}
	return doc
}
