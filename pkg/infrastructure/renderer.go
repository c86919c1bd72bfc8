package infrastructure

import (
	"context"
	"fmt"
	"time"
)

// PDFRenderer prints a standalone HTML document to PDF bytes.
type PDFRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
	Name() string
}

// NewRenderer returns the renderer named by kind ("chromedp" or "playwright").
func NewRenderer(kind, chromePath string, timeout time.Duration) (PDFRenderer, error) {
	switch kind {
	case "", "chromedp":
		return NewChromedpRenderer(chromePath, timeout), nil
	case "playwright":
		return NewPlaywrightRenderer(timeout), nil
	}
	return nil, fmt.Errorf("unknown renderer %q", kind)
}
