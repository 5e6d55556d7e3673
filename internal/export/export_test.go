package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityarajsrv/CareerQuill/internal/model"
)

type fakeBrowser struct {
	closes   *int32
	capture  func(url, selector string) ([]byte, error)
	print    func(url string) ([]byte, error)
	lastURL  string
	closeErr error
}

func (b *fakeBrowser) PrintToPDF(ctx context.Context, url string) ([]byte, error) {
	b.lastURL = url
	return b.print(url)
}

func (b *fakeBrowser) CaptureNode(ctx context.Context, url, selector string) ([]byte, error) {
	b.lastURL = url
	return b.capture(url, selector)
}

func (b *fakeBrowser) Close() error {
	atomic.AddInt32(b.closes, 1)
	return b.closeErr
}

type fakeLauncher struct {
	closes    int32
	launches  int32
	launchErr error
	browser   func() *fakeBrowser
}

func (l *fakeLauncher) Launch(ctx context.Context) (Browser, error) {
	atomic.AddInt32(&l.launches, 1)
	if l.launchErr != nil {
		return nil, l.launchErr
	}
	b := l.browser()
	b.closes = &l.closes
	return b, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRaster_ProducesMultiPagePDF(t *testing.T) {
	shot := pngBytes(t, 397, 1200)
	var gotSelector string
	l := &fakeLauncher{browser: func() *fakeBrowser {
		return &fakeBrowser{capture: func(url, selector string) ([]byte, error) {
			gotSelector = selector
			assert.True(t, strings.HasPrefix(url, "file://"))
			return shot, nil
		}}
	}}
	tmp := t.TempDir()

	f, err := New(l, WithTempDir(tmp)).Raster(context.Background(), "<div id=resume-content></div>", "Jane_Doe_Resume.pdf")
	require.NoError(t, err)

	assert.Equal(t, "Jane_Doe_Resume.pdf", f.Name)
	assert.True(t, bytes.HasPrefix(f.Data, []byte("%PDF")))
	assert.Equal(t, "#resume-content", gotSelector)
	assert.EqualValues(t, 1, l.closes)

	left, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestRaster_CaptureTargetMissing(t *testing.T) {
	l := &fakeLauncher{browser: func() *fakeBrowser {
		return &fakeBrowser{capture: func(string, string) ([]byte, error) {
			return nil, ErrCaptureTargetMissing
		}}
	}}

	f, err := New(l, WithTempDir(t.TempDir())).Raster(context.Background(), "<p>no root</p>", "x.pdf")

	assert.Nil(t, f)
	require.ErrorIs(t, err, ErrCaptureTargetMissing)
	var ee *ExportError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, StageCapture, ee.Stage)
	assert.EqualValues(t, 1, l.closes)
}

func TestRaster_BadScreenshot(t *testing.T) {
	l := &fakeLauncher{browser: func() *fakeBrowser {
		return &fakeBrowser{capture: func(string, string) ([]byte, error) { return []byte("nope"), nil }}
	}}
	_, err := New(l, WithTempDir(t.TempDir())).Raster(context.Background(), "", "x.pdf")
	var ee *ExportError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, StageCapture, ee.Stage)
	assert.EqualValues(t, 1, l.closes)
}

func TestPrint(t *testing.T) {
	l := &fakeLauncher{browser: func() *fakeBrowser {
		return &fakeBrowser{print: func(string) ([]byte, error) { return []byte("%PDF-1.7 body"), nil }}
	}}

	f, err := New(l).Print(context.Background(), "http://localhost:8080/print/classic/abc")
	require.NoError(t, err)
	assert.Equal(t, PrintFileName, f.Name)
	assert.EqualValues(t, 1, l.closes)
}

func TestPrint_RejectsNonPDF(t *testing.T) {
	l := &fakeLauncher{browser: func() *fakeBrowser {
		return &fakeBrowser{print: func(string) ([]byte, error) { return []byte("<html>"), nil }}
	}}
	_, err := New(l).Print(context.Background(), "http://x")
	assert.ErrorIs(t, err, ErrInvalidPDF)
	assert.EqualValues(t, 1, l.closes)
}

func TestPrint_NavigationStage(t *testing.T) {
	l := &fakeLauncher{browser: func() *fakeBrowser {
		return &fakeBrowser{print: func(string) ([]byte, error) {
			return nil, fmt.Errorf("%w: net::ERR_CONNECTION_REFUSED", ErrNavigation)
		}}
	}}
	_, err := New(l).Print(context.Background(), "http://x")
	var ee *ExportError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, StageNavigate, ee.Stage)
}

func TestLaunchFailure_NothingToClose(t *testing.T) {
	l := &fakeLauncher{launchErr: errors.New("chrome not found")}
	_, err := New(l).Print(context.Background(), "http://x")
	var ee *ExportError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, StageLaunch, ee.Stage)
	assert.EqualValues(t, 0, l.closes)
}

func TestExport_ResourceSafetyUnderInjectedFailures(t *testing.T) {
	failures := []error{
		ErrCaptureTargetMissing,
		fmt.Errorf("%w: timeout", ErrNavigation),
		context.DeadlineExceeded,
		errors.New("target crashed"),
	}
	for i := 0; i < 100; i++ {
		injected := failures[i%len(failures)]
		l := &fakeLauncher{browser: func() *fakeBrowser {
			return &fakeBrowser{
				capture:  func(string, string) ([]byte, error) { return nil, injected },
				print:    func(string) ([]byte, error) { return nil, injected },
				closeErr: errors.New("already gone"),
			}
		}}
		e := New(l, WithTempDir(t.TempDir()), WithTimeout(time.Second))

		var err error
		if i%2 == 0 {
			_, err = e.Raster(context.Background(), "<html></html>", "x.pdf")
		} else {
			_, err = e.Print(context.Background(), "http://x")
		}

		require.ErrorIs(t, err, injected, "iteration %d", i)
		require.EqualValues(t, 1, l.launches, "iteration %d", i)
		require.EqualValues(t, 1, l.closes, "iteration %d", i)
	}
}

func TestExport_TimeoutBoundsContext(t *testing.T) {
	b := &blockingBrowser{}
	e := New(launcherFunc(func(ctx context.Context) (Browser, error) { return b, nil }), WithTimeout(20*time.Millisecond))

	_, err := e.Print(context.Background(), "http://x")

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.EqualValues(t, 1, b.closes)
}

type launcherFunc func(ctx context.Context) (Browser, error)

func (f launcherFunc) Launch(ctx context.Context) (Browser, error) { return f(ctx) }

type blockingBrowser struct{ closes int32 }

func (b *blockingBrowser) PrintToPDF(ctx context.Context, _ string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *blockingBrowser) CaptureNode(ctx context.Context, _, _ string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *blockingBrowser) Close() error {
	atomic.AddInt32(&b.closes, 1)
	return nil
}

func TestPaginate(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 25))
	pages := Paginate(img, 10)
	require.Len(t, pages, 3)
	assert.Equal(t, 10, pages[0].Bounds().Dy())
	assert.Equal(t, 5, pages[2].Bounds().Dy())

	assert.Nil(t, Paginate(image.NewRGBA(image.Rect(0, 0, 0, 0)), 10))
}

func TestScale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 1000))
	out := Scale(img, 200)
	assert.Equal(t, image.Rect(0, 0, 200, 500), out.Bounds())
}

func TestAssemble_Empty(t *testing.T) {
	_, err := Assemble(nil)
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		first, last string
		want        string
	}{
		{"Jane", "Doe", "Jane_Doe_Resume.pdf"},
		{"Mary Ann", "O'Neil", "Mary_Ann_O_Neil_Resume.pdf"},
		{"", "", "Resume.pdf"},
		{"José", "", "José_Resume.pdf"},
	}
	for _, tt := range tests {
		doc := &model.ResumeDocument{Personal: model.PersonalInfo{FirstName: tt.first, LastName: tt.last}}
		assert.Equal(t, tt.want, FileName(doc))
	}
	assert.Equal(t, "Resume.pdf", FileName(nil))
}
