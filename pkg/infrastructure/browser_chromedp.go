package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/adityarajsrv/CareerQuill/internal/export"
)

// ChromeLauncher starts one headless Chrome process per Launch.
type ChromeLauncher struct {
	execPath string
}

// NewChromeLauncher uses execPath when set, otherwise chromedp's lookup.
func NewChromeLauncher(execPath string) *ChromeLauncher {
	return &ChromeLauncher{execPath: execPath}
}

func (l *ChromeLauncher) Launch(ctx context.Context) (export.Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if l.execPath != "" {
		opts = append(opts, chromedp.ExecPath(l.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}

	// ensure Chrome starts
	if err := chromedp.Run(cctx); err != nil {
		cancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	return &chromeBrowser{ctx: cctx, cancel: cancel}, nil
}

type chromeBrowser struct {
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

// scope derives a browser context that also ends when ctx does.
func (b *chromeBrowser) scope(ctx context.Context) (context.Context, func()) {
	runCtx, cancel := context.WithCancel(b.ctx)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// navigate loads url and blocks until Chrome reports the network idle for
// the document it navigated to.
func (b *chromeBrowser) navigate(ctx, reqCtx context.Context, url string) error {
	waiter := newIdleWaiter()
	chromedp.ListenTarget(ctx, waiter.observe)

	var loader cdp.LoaderID
	err := chromedp.Run(ctx,
		page.Enable(),
		page.SetLifecycleEventsEnabled(true),
		chromedp.Navigate(url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			loader = tree.Frame.LoaderID
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", export.ErrNavigation, err)
	}
	if err := waiter.wait(ctx, loader); err != nil {
		if reqCtx.Err() != nil {
			err = reqCtx.Err()
		}
		return fmt.Errorf("%w: waiting for network idle: %w", export.ErrNavigation, err)
	}
	return nil
}

func (b *chromeBrowser) PrintToPDF(ctx context.Context, url string) ([]byte, error) {
	runCtx, done := b.scope(ctx)
	defer done()

	if err := b.navigate(runCtx, ctx, url); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err := chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		// A4: 210mm x 297mm -> inches: 8.27 x 11.69
		pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
			WithPaperWidth(8.27).
			WithPaperHeight(11.69).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

func (b *chromeBrowser) CaptureNode(ctx context.Context, url, selector string) ([]byte, error) {
	runCtx, done := b.scope(ctx)
	defer done()

	if err := b.navigate(runCtx, ctx, url); err != nil {
		return nil, err
	}

	quoted, err := json.Marshal(selector)
	if err != nil {
		return nil, err
	}
	var found bool
	if err := chromedp.Run(runCtx, chromedp.Evaluate(fmt.Sprintf("document.querySelector(%s) !== null", quoted), &found)); err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", export.ErrCaptureTargetMissing, selector)
	}

	var shot []byte
	if err := chromedp.Run(runCtx, chromedp.ScreenshotScale(selector, 2, &shot, chromedp.ByQuery)); err != nil {
		return nil, err
	}
	return shot, nil
}

// Close shuts the browser down. Later calls return the first result.
func (b *chromeBrowser) Close() error {
	b.closeOnce.Do(func() {
		b.closeErr = chromedp.Cancel(b.ctx)
		b.cancel()
	})
	return b.closeErr
}
