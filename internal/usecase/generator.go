package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/adityarajsrv/CareerQuill/internal/auth"
	"github.com/adityarajsrv/CareerQuill/internal/builder"
	"github.com/adityarajsrv/CareerQuill/internal/domain"
	"github.com/adityarajsrv/CareerQuill/internal/export"
	"github.com/adityarajsrv/CareerQuill/internal/model"
	"github.com/adityarajsrv/CareerQuill/internal/render"
)

type PDFExporter interface {
	Raster(ctx context.Context, html, filename string) (*export.File, error)
	Print(ctx context.Context, url string) (*export.File, error)
}

type DraftsRepo interface {
	Save(ctx context.Context, d *domain.Draft) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.DraftSummary, error)
}

// printLinkTTL bounds how long a signed print URL stays usable.
const printLinkTTL = 5 * time.Minute

// LinkSigner issues and checks the signature on print view URLs.
type LinkSigner interface {
	Issue(id uuid.UUID) (string, error)
	Parse(token string) (uuid.UUID, error)
}

// Access identifies who is asking for a draft's print view: the signed-in
// viewer, a print URL signature, or neither.
type Access struct {
	Viewer    *uuid.UUID
	Signature string
}

// Result is a generated resume: the document and its laid-out template.
type Result struct {
	Document *model.ResumeDocument `json:"document"`
	Layout   *render.Layout        `json:"layout"`
}

// Generator runs validate -> build -> render -> export for one request.
type Generator struct {
	templates    *render.Registry
	html         *render.HTMLRenderer
	exporter     PDFExporter
	drafts       DraftsRepo
	buildOpts    []builder.Option
	printBaseURL string
	signer       LinkSigner
	attempts     int
	backoff      time.Duration
	log          *slog.Logger
}

type Option func(*Generator)

func WithBuildOptions(opts ...builder.Option) Option {
	return func(g *Generator) { g.buildOpts = append(g.buildOpts, opts...) }
}

// WithPrintBaseURL sets the address the browser uses to load print views.
func WithPrintBaseURL(base string) Option {
	return func(g *Generator) { g.printBaseURL = base }
}

// WithPrintRetries sets how many times a print export is attempted.
func WithPrintRetries(attempts int, backoff time.Duration) Option {
	return func(g *Generator) {
		if attempts > 0 {
			g.attempts = attempts
		}
		g.backoff = backoff
	}
}

// WithLinkSigner sets the signer for print view URLs.
func WithLinkSigner(s LinkSigner) Option {
	return func(g *Generator) {
		if s != nil {
			g.signer = s
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

func NewGenerator(templates *render.Registry, html *render.HTMLRenderer, exporter PDFExporter, drafts DraftsRepo, opts ...Option) *Generator {
	g := &Generator{
		templates:    templates,
		html:         html,
		exporter:     exporter,
		drafts:       drafts,
		printBaseURL: "http://localhost:5000",
		signer:       auth.NewTokens(uuid.NewString(), printLinkTTL),
		attempts:     2,
		backoff:      time.Second,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Templates() []render.Info { return g.templates.Gallery() }

func (g *Generator) Validate(form model.FormState) builder.ValidationErrors {
	return builder.Validate(form)
}

// Generate validates the form and lays it out with templateID.
func (g *Generator) Generate(form model.FormState, templateID string, opts render.Options) (*Result, error) {
	tpl, err := g.templates.Lookup(templateID)
	if err != nil {
		return nil, err
	}
	doc, err := builder.Generate(form, g.buildOpts...)
	if err != nil {
		return nil, err
	}
	if err := model.ValidateDocument(doc); err != nil {
		return nil, fmt.Errorf("built document: %w", err)
	}
	return &Result{Document: doc, Layout: tpl.Render(doc, opts)}, nil
}

// Preview renders the form as HTML without validating it.
func (g *Generator) Preview(form model.FormState, templateID string, opts render.Options) (string, error) {
	tpl, err := g.templates.Lookup(templateID)
	if err != nil {
		return "", err
	}
	return g.html.RenderString(tpl.Render(builder.Build(form, g.buildOpts...), opts))
}

// Download generates the resume and exports it through raster capture.
func (g *Generator) Download(ctx context.Context, form model.FormState, templateID string, opts render.Options) (*export.File, error) {
	res, err := g.Generate(form, templateID, opts)
	if err != nil {
		return nil, err
	}
	page, err := g.html.RenderString(res.Layout)
	if err != nil {
		return nil, err
	}
	return g.exporter.Raster(ctx, page, export.FileName(res.Document))
}

// SaveDraft stores the form for later editing and server-side printing.
func (g *Generator) SaveDraft(ctx context.Context, form model.FormState, templateID string, userID *uuid.UUID) (*domain.Draft, error) {
	tpl, err := g.templates.Lookup(templateID)
	if err != nil {
		return nil, err
	}
	form.Normalize()
	d := &domain.Draft{UserID: userID, TemplateID: tpl.ID(), Form: form}
	if err := g.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	g.log.Info("generator: draft saved", "draft_id", d.ID, "template", d.TemplateID)
	return d, nil
}

// Draft loads a saved draft. Drafts with an owner are only visible to that
// owner; anyone else gets domain.ErrNotFound.
func (g *Generator) Draft(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*domain.Draft, error) {
	d, err := g.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ownedBy(d, viewer) {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (g *Generator) Drafts(ctx context.Context, userID uuid.UUID) ([]domain.DraftSummary, error) {
	return g.drafts.ListForUser(ctx, userID)
}

// PrintView renders a saved draft as the page the browser prints. Owned
// drafts need the owner's session or a valid print URL signature.
func (g *Generator) PrintView(ctx context.Context, templateID string, draftID uuid.UUID, access Access, opts render.Options) (string, error) {
	tpl, err := g.templates.Lookup(templateID)
	if err != nil {
		return "", err
	}
	d, err := g.drafts.Get(ctx, draftID)
	if err != nil {
		return "", err
	}
	if !ownedBy(d, access.Viewer) && !g.signedFor(access.Signature, d.ID) {
		return "", domain.ErrNotFound
	}
	return g.html.RenderString(tpl.Render(builder.Build(d.Form, g.buildOpts...), opts))
}

// PrintPDF has the browser load a signed print view of a saved draft and
// print it. Failed attempts are retried with exponential backoff.
func (g *Generator) PrintPDF(ctx context.Context, templateID string, draftID uuid.UUID, viewer *uuid.UUID) (*export.File, error) {
	tpl, err := g.templates.Lookup(templateID)
	if err != nil {
		return nil, err
	}
	d, err := g.Draft(ctx, draftID, viewer)
	if err != nil {
		return nil, err
	}
	sig, err := g.signer.Issue(d.ID)
	if err != nil {
		return nil, fmt.Errorf("sign print url: %w", err)
	}
	target := fmt.Sprintf("%s/print/%s/%s?sig=%s", g.printBaseURL, url.PathEscape(tpl.ID()), d.ID, url.QueryEscape(sig))

	var lastErr error
	for i := 0; i < g.attempts; i++ {
		f, err := g.exporter.Print(ctx, target)
		if err == nil {
			return f, nil
		}
		lastErr = err
		g.log.Warn("generator: print attempt failed", "attempt", i+1, "error", err)
		if i < g.attempts-1 {
			select {
			case <-time.After(g.backoff << i):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

func (g *Generator) signedFor(sig string, id uuid.UUID) bool {
	if sig == "" {
		return false
	}
	got, err := g.signer.Parse(sig)
	return err == nil && got == id
}

// ownedBy reports whether viewer may see d: anonymous drafts are open to
// anyone holding the id.
func ownedBy(d *domain.Draft, viewer *uuid.UUID) bool {
	return d.UserID == nil || (viewer != nil && *viewer == *d.UserID)
}
