package infrastructure

import (
	"context"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
)

// idleWaiter records networkIdle lifecycle events per loader. Chrome
// replays milestones of the document it already has when lifecycle events
// are enabled, so only the loader of the navigation being awaited counts.
type idleWaiter struct {
	mu     sync.Mutex
	idle   map[cdp.LoaderID]bool
	notify chan struct{}
}

func newIdleWaiter() *idleWaiter {
	return &idleWaiter{idle: map[cdp.LoaderID]bool{}, notify: make(chan struct{}, 1)}
}

// observe is installed as a chromedp target listener.
func (w *idleWaiter) observe(ev interface{}) {
	e, ok := ev.(*page.EventLifecycleEvent)
	if !ok || e.Name != "networkIdle" {
		return
	}
	w.mu.Lock()
	w.idle[e.LoaderID] = true
	w.mu.Unlock()
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

func (w *idleWaiter) seen(loader cdp.LoaderID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.idle[loader]
}

// wait blocks until loader has gone network idle or ctx ends.
func (w *idleWaiter) wait(ctx context.Context, loader cdp.LoaderID) error {
	for !w.seen(loader) {
		select {
		case <-w.notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
