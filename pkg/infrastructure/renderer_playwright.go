package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightRenderer prints HTML through Playwright's bundled Chromium. It is
// the alternative backend for hosts where a system Chrome is not available.
type PlaywrightRenderer struct {
	timeout time.Duration
}

func NewPlaywrightRenderer(timeout time.Duration) *PlaywrightRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &PlaywrightRenderer{timeout: timeout}
}

func (r *PlaywrightRenderer) Name() string { return "playwright" }

func (r *PlaywrightRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	type result struct {
		pdf []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		pdf, err := r.render(html)
		done <- result{pdf, err}
	}()

	select {
	case res := <-done:
		return res.pdf, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *PlaywrightRenderer) render(html string) ([]byte, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("could not launch chromium browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create new page: %w", err)
	}
	defer page.Close()

	timeoutMs := float64(r.timeout.Milliseconds())
	if err := page.SetContent(html, playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(timeoutMs),
	}); err != nil {
		return nil, fmt.Errorf("could not set page content: %w", err)
	}

	pdf, err := page.PDF(playwright.PagePdfOptions{
		Format:            playwright.String("A4"),
		PrintBackground:   playwright.Bool(true),
		PreferCSSPageSize: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("could not generate PDF: %w", err)
	}
	return pdf, nil
}
