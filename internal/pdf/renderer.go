package pdf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/mahdiarghyani/portfolio/internal/content"
	"github.com/mahdiarghyani/portfolio/internal/logfields"
)

// ErrRender wraps every failure to produce a PDF.
var ErrRender = errors.New("pdf render failed")

// A4 at 96 DPI.
const (
	viewportWidth  = 794
	viewportHeight = 1123
)

const (
	DefaultNavigationTimeout = 30 * time.Second
	hydrationWait            = 5 * time.Second
)

// Request describes one page to print.
type Request struct {
	URL    string
	Locale content.Locale
}

// Renderer prints a page to PDF bytes.
type Renderer interface {
	Render(ctx context.Context, req Request) ([]byte, error)
}

// ChromeRenderer drives a headless Chrome through the DevTools protocol.
// Each Render launches its own browser so a crashed page cannot poison
// later requests.
type ChromeRenderer struct {
	// ExecPath overrides the Chrome binary; empty uses chromedp's lookup.
	ExecPath string
	// Timeout bounds the whole render, navigation included.
	Timeout time.Duration
	Logger  *slog.Logger
}

func (r *ChromeRenderer) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Render loads req.URL in print media, waits for fonts and content,
// injects the print stylesheet and prints A4 with backgrounds.
func (r *ChromeRenderer) Render(ctx context.Context, req Request) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultNavigationTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	log := r.logger().With(logfields.URL(req.URL), logfields.Locale(req.Locale.String()))
	log.Info("Generating resume PDF")

	if err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		emulation.SetEmulatedMedia().WithMedia("print"),
	); err != nil {
		return nil, fmt.Errorf("%w: starting browser: %w", ErrRender, err)
	}

	resp, err := chromedp.RunResponse(tabCtx, chromedp.Navigate(req.URL))
	if err != nil {
		return nil, fmt.Errorf("%w: loading %s: %w", ErrRender, req.URL, err)
	}
	if resp == nil || resp.Status >= 400 {
		status := int64(0)
		if resp != nil {
			status = resp.Status
		}
		return nil, fmt.Errorf("%w: failed to load: %d", ErrRender, status)
	}

	var fontsReady bool
	if err := chromedp.Run(tabCtx, chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady, awaitPromise)); err != nil {
		return nil, fmt.Errorf("%w: waiting for fonts: %w", ErrRender, err)
	}

	waitCtx, cancelWait := context.WithTimeout(tabCtx, hydrationWait)
	if err := chromedp.Run(waitCtx, chromedp.WaitReady("strong", chromedp.ByQuery)); err != nil {
		log.Debug("No strong tags found, continuing anyway")
	}
	cancelWait()

	css, err := json.Marshal(PrintCSS(req.Locale))
	if err != nil {
		return nil, fmt.Errorf("%w: encoding stylesheet: %w", ErrRender, err)
	}
	inject := fmt.Sprintf(`(() => {
  const s = document.createElement('style');
  s.textContent = %s;
  document.head.appendChild(s);
  return true;
})()`, css)

	var injected bool
	var out []byte
	if err := chromedp.Run(tabCtx,
		chromedp.Evaluate(inject, &injected),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			out = data
			return err
		}),
	); err != nil {
		return nil, fmt.Errorf("%w: printing: %w", ErrRender, err)
	}
	return out, nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}
