package services

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Rasterizer drives a headless Chrome process to convert rendered
// certificate HTML into PDF or PNG bytes. Every call launches an isolated
// browser process and tears it down on all exit paths; the volume is low
// (admin-triggered downloads), so the startup cost is acceptable and no
// pooling is done.
type Rasterizer struct {
	chromePath string
	timeout    time.Duration
	settle     time.Duration
}

// Page geometry: A4 landscape for PDF, matching pixel viewport for PNG
const (
	pdfPageWidthInches  = 11.69
	pdfPageHeightInches = 8.27
	pngViewportWidth    = 1123
	pngViewportHeight   = 794
)

// NewRasterizer creates a rasterizer. chromePath may be empty, in which
// case chromedp discovers the browser binary itself.
func NewRasterizer(chromePath string) *Rasterizer {
	return &Rasterizer{
		chromePath: chromePath,
		timeout:    30 * time.Second,
		settle:     500 * time.Millisecond, // let async fonts/assets finish
	}
}

// ToPDF renders the document to a fixed-page-size landscape PDF with zero
// margins and background graphics included.
func (r *Rasterizer) ToPDF(ctx context.Context, htmlDoc string) ([]byte, error) {
	var buf []byte

	err := r.run(ctx, htmlDoc, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, _, err = page.PrintToPDF().
			WithLandscape(true).
			WithPaperWidth(pdfPageWidthInches).
			WithPaperHeight(pdfPageHeightInches).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			WithPrintBackground(true).
			WithPreferCSSPageSize(false).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}

	return buf, nil
}

// ToPNG renders the document at a fixed viewport and captures a pixel-exact
// crop of the certificate region rather than the full scrollable page.
func (r *Rasterizer) ToPNG(ctx context.Context, htmlDoc string) ([]byte, error) {
	var buf []byte

	err := r.run(ctx, htmlDoc,
		chromedp.EmulateViewport(pngViewportWidth, pngViewportHeight),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithClip(&page.Viewport{
					X:      0,
					Y:      0,
					Width:  pngViewportWidth,
					Height: pngViewportHeight,
					Scale:  1,
				}).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return buf, nil
}

// run launches a fresh browser, loads the document, waits for the settle
// delay, then executes capture. The deferred cancels guarantee the process
// is torn down whether capture succeeds or fails.
func (r *Rasterizer) run(ctx context.Context, htmlDoc string, capture ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	actions := []chromedp.Action{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlDoc).Do(ctx)
		}),
		chromedp.Sleep(r.settle),
	}
	actions = append(actions, capture...)

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return fmt.Errorf("%w: %v", ErrRendering, err)
	}

	return nil
}
