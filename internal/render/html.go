package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/adityarajsrv/CareerQuill/templates"
)

// CaptureSelector addresses the element that holds the whole resume in
// rendered HTML. Raster export captures exactly this node.
const CaptureSelector = "#resume-content"

// HTMLRenderer draws a Layout as a standalone HTML page with inlined CSS.
type HTMLRenderer struct {
	tpl *template.Template
	css template.CSS
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tpl, err := template.New("layout").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(templates.LayoutHTML)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	// stylesheet is embedded, not user input
	return &HTMLRenderer{tpl: tpl, css: template.CSS(templates.StyleCSS)}, nil
}

func (r *HTMLRenderer) Render(w io.Writer, l *Layout) error {
	if l == nil {
		l = &Layout{}
	}
	data := struct {
		Layout *Layout
		CSS    template.CSS
	}{l, r.css}
	return r.tpl.Execute(w, data)
}

func (r *HTMLRenderer) RenderString(l *Layout) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, l); err != nil {
		return "", err
	}
	return buf.String(), nil
}
