// Package export turns rendered resumes into downloadable PDF files using a
// headless browser.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adityarajsrv/CareerQuill/internal/render"
)

// DefaultTimeout bounds one export, browser start included.
const DefaultTimeout = 60 * time.Second

// PrintFileName is the attachment name used for server-side print exports.
const PrintFileName = "resume.pdf"

// Browser is one running headless browser instance.
type Browser interface {
	// PrintToPDF loads url, waits for the network to go idle and prints it
	// as an A4 PDF with backgrounds.
	PrintToPDF(ctx context.Context, url string) ([]byte, error)
	// CaptureNode loads url and returns a PNG screenshot of the element
	// matching selector. It fails with ErrCaptureTargetMissing if no
	// element matches.
	CaptureNode(ctx context.Context, url, selector string) ([]byte, error)
	Close() error
}

// Launcher starts a fresh browser per export.
type Launcher interface {
	Launch(ctx context.Context) (Browser, error)
}

var (
	// ErrCaptureTargetMissing means the page has no element to capture.
	ErrCaptureTargetMissing = errors.New("capture target not found")
	// ErrNavigation marks failures to load the page.
	ErrNavigation = errors.New("navigation failed")
	ErrInvalidPDF = errors.New("invalid PDF output")
)

type Stage string

const (
	StageLaunch   Stage = "launch"
	StagePrepare  Stage = "prepare"
	StageNavigate Stage = "navigate"
	StageCapture  Stage = "capture"
	StagePrint    Stage = "print"
	StageAssemble Stage = "assemble"
)

// ExportError records the stage an export failed in.
type ExportError struct {
	Stage Stage
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// File is a finished export.
type File struct {
	Name string
	Data []byte
}

type Option func(*Exporter)

func WithTimeout(d time.Duration) Option {
	return func(e *Exporter) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithTempDir sets the parent directory for per-export scratch files.
func WithTempDir(dir string) Option {
	return func(e *Exporter) { e.tempDir = dir }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.log = l
		}
	}
}

// WithSelector overrides the element captured by Raster.
func WithSelector(sel string) Option {
	return func(e *Exporter) { e.selector = sel }
}

// Exporter runs export requests. Each request acquires its own browser and
// releases it before returning, on every path.
type Exporter struct {
	launcher Launcher
	timeout  time.Duration
	tempDir  string
	selector string
	log      *slog.Logger
}

func New(l Launcher, opts ...Option) *Exporter {
	e := &Exporter{
		launcher: l,
		timeout:  DefaultTimeout,
		selector: render.CaptureSelector,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Raster captures the resume node of html as an image and paginates it
// into an A4 PDF named filename.
func (e *Exporter) Raster(ctx context.Context, html, filename string) (*File, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	dir, err := os.MkdirTemp(e.tempDir, "resume-")
	if err != nil {
		return nil, &ExportError{Stage: StagePrepare, Err: err}
	}
	defer os.RemoveAll(dir)

	htmlPath := filepath.Join(dir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &ExportError{Stage: StagePrepare, Err: err}
	}

	b, err := e.launch(ctx)
	if err != nil {
		return nil, err
	}
	defer e.release(b)

	shot, err := b.CaptureNode(ctx, "file://"+filepath.ToSlash(htmlPath), e.selector)
	if err != nil {
		return nil, &ExportError{Stage: stageOf(err, StageCapture), Err: err}
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, &ExportError{Stage: StageCapture, Err: fmt.Errorf("decode screenshot: %w", err)}
	}
	pages := Paginate(Scale(img, PageWidthPx*pixelRatio), PageHeightPx*pixelRatio)
	pdf, err := Assemble(pages)
	if err != nil {
		return nil, &ExportError{Stage: StageAssemble, Err: err}
	}
	e.log.Info("export: raster pdf ready", "file", filename, "pages", len(pages), "bytes", len(pdf))
	return &File{Name: filename, Data: pdf}, nil
}

// Print loads url in the browser and prints it with the browser's own
// paginator.
func (e *Exporter) Print(ctx context.Context, url string) (*File, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	b, err := e.launch(ctx)
	if err != nil {
		return nil, err
	}
	defer e.release(b)

	pdf, err := b.PrintToPDF(ctx, url)
	if err != nil {
		return nil, &ExportError{Stage: stageOf(err, StagePrint), Err: err}
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, &ExportError{Stage: StagePrint, Err: fmt.Errorf("%w (len=%d)", ErrInvalidPDF, len(pdf))}
	}
	e.log.Info("export: print pdf ready", "url", url, "bytes", len(pdf))
	return &File{Name: PrintFileName, Data: pdf}, nil
}

func (e *Exporter) launch(ctx context.Context) (Browser, error) {
	b, err := e.launcher.Launch(ctx)
	if err != nil {
		return nil, &ExportError{Stage: StageLaunch, Err: err}
	}
	return b, nil
}

func (e *Exporter) release(b Browser) {
	if err := b.Close(); err != nil {
		e.log.Warn("export: browser close failed", "error", err)
	}
}

func stageOf(err error, fallback Stage) Stage {
	if errors.Is(err, ErrNavigation) {
		return StageNavigate
	}
	return fallback
}
