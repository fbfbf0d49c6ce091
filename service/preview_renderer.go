package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	previewViewportWidth  = 1280
	previewViewportHeight = 960
	renderTimeout         = 45 * time.Second
)

// MarkupRenderer turns a markup snippet into a PNG screenshot
type MarkupRenderer interface {
	Render(ctx context.Context, code string) ([]byte, error)
}

// ChromeRenderer renders markup in headless Chrome
type ChromeRenderer struct {
	chromePath string
}

// NewChromeRenderer creates a new ChromeRenderer. An empty chromePath falls back to detection.
func NewChromeRenderer(chromePath string) *ChromeRenderer {
	return &ChromeRenderer{chromePath: detectChromePath(chromePath)}
}

var _ MarkupRenderer = (*ChromeRenderer)(nil)

// detectChromePath returns configured if it exists, then checks common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
		log.Printf("⚠️  Configured Chrome path %s not found, falling back to detection", configured)
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

var previewShell = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<script src="https://cdn.tailwindcss.com"></script>
<style>body{margin:0;font-family:ui-sans-serif,system-ui,sans-serif;}</style>
</head>
<body>
{{.}}
</body>
</html>`))

var (
	classNameAttr   = regexp.MustCompile(`\bclassName=`)
	jsxExpressionRe = regexp.MustCompile(`=\{("[^"]*"|'[^']*')\}`)
)

// BuildPreviewHTML wraps markup in a page that loads Tailwind. JSX className
// attributes and string-literal expressions are rewritten to plain HTML.
func BuildPreviewHTML(code string) (string, error) {
	code = classNameAttr.ReplaceAllString(code, "class=")
	code = jsxExpressionRe.ReplaceAllString(code, "=$1")

	var buf bytes.Buffer
	if err := previewShell.Execute(&buf, template.HTML(code)); err != nil {
		return "", fmt.Errorf("failed to render preview shell: %w", err)
	}
	return buf.String(), nil
}

// Render loads the markup into a blank page and captures a full-page PNG
func (r *ChromeRenderer) Render(ctx context.Context, code string) ([]byte, error) {
	html, err := BuildPreviewHTML(code)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.WindowSize(previewViewportWidth, previewViewportHeight),
	)
	if r.chromePath != "" {
		log.Printf("🔍 Using Chrome at: %s", r.chromePath)
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var buf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(previewViewportWidth, previewViewportHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		// Give the Tailwind CDN script time to generate styles
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}

	log.Printf("📸 Preview rendered: %d bytes", len(buf))
	return buf, nil
}
