package render

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ChromeRenderer renders pages in a headless Chrome instance. One exec
// allocator is shared across requests; each Render call gets its own
// browser context, cancelled before the call returns.
type ChromeRenderer struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
	quietPeriod time.Duration
	logger      *zap.Logger
}

func NewChromeRenderer(timeout, quietPeriod time.Duration, logger *zap.Logger) *ChromeRenderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(`Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36`),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &ChromeRenderer{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		timeout:     timeout,
		quietPeriod: quietPeriod,
		logger:      logger,
	}
}

// Render navigates to url, waits until network activity has been quiet for
// the configured period (capped by the render timeout), and returns the
// serialized document. Any navigation, engine, or timeout error comes back
// as *Error.
func (r *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	taskCtx, cancel := chromedp.NewContext(r.allocCtx)
	defer cancel()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, r.timeout)
	defer cancelTimeout()

	// Honor cancellation from the caller's request context as well.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-taskCtx.Done():
		}
	}()

	start := time.Now()
	var html string
	err := chromedp.Run(taskCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		waitNetworkIdle(r.quietPeriod),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		r.logger.Warn("render failed",
			zap.String("url", url),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", &Error{URL: url, Err: err}
	}

	r.logger.Info("page rendered",
		zap.String("url", url),
		zap.Int("html_bytes", len(html)),
		zap.Duration("elapsed", time.Since(start)))
	return html, nil
}

// Close releases the shared browser allocator. Call once at shutdown.
func (r *ChromeRenderer) Close() {
	r.allocCancel()
}

// waitNetworkIdle blocks until no network request has been in flight for
// the quiet period. The surrounding context timeout caps the wait, so a
// chatty page turns into a render timeout instead of a hang.
func waitNetworkIdle(quiet time.Duration) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		idle := make(chan struct{})
		var once sync.Once

		var mu sync.Mutex
		inflight := make(map[network.RequestID]struct{})
		timer := time.AfterFunc(quiet, func() {
			once.Do(func() { close(idle) })
		})

		chromedp.ListenTarget(ctx, func(ev interface{}) {
			mu.Lock()
			defer mu.Unlock()
			switch e := ev.(type) {
			case *network.EventRequestWillBeSent:
				inflight[e.RequestID] = struct{}{}
				timer.Stop()
			case *network.EventLoadingFinished:
				delete(inflight, e.RequestID)
				if len(inflight) == 0 {
					timer.Reset(quiet)
				}
			case *network.EventLoadingFailed:
				delete(inflight, e.RequestID)
				if len(inflight) == 0 {
					timer.Reset(quiet)
				}
			}
		})

		select {
		case <-idle:
			return nil
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}
