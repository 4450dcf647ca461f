// Package snapshot captures a running dashboard as a full-page PNG using
// headless Chrome.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"shopping-dashboard/utils"
)

// ErrNoBrowser is returned when no Chrome or Chromium binary can be found.
var ErrNoBrowser = errors.New("no chrome binary found")

// Capturer takes dashboard screenshots.
type Capturer struct {
	ChromeBin string
	Width     int64
	Height    int64
	Timeout   time.Duration

	logger *utils.Logger
	retry  *utils.RetryConfig
}

// New creates a Capturer. chromeBin may be empty to search the usual locations.
func New(chromeBin string, maxRetries int, logger *utils.Logger) *Capturer {
	logger = logger.With("snapshot")
	return &Capturer{
		ChromeBin: chromeBin,
		Width:     1440,
		Height:    900,
		Timeout:   45 * time.Second,
		logger:    logger,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Capture loads target, waits for the dashboard element and writes a full-page
// PNG to out. Intermediate directories are created automatically.
func (c *Capturer) Capture(ctx context.Context, target, out string) error {
	if err := validURL(target); err != nil {
		return err
	}

	chromeBin := findChromeBinary(c.ChromeBin)
	if chromeBin == "" {
		return fmt.Errorf("snapshot: %w", ErrNoBrowser)
	}
	c.logger.Info("Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.WindowSize(int(c.Width), int(c.Height)),
		chromedp.ExecPath(chromeBin),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	var img []byte
	err := c.retry.Do(ctx, "snapshot "+target, func(ctx context.Context) error {
		// Fresh browser per attempt: cancelling the first Run's context closes it.
		// Suppress chromedp log noise.
		browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
		defer cancelBrowser()
		tctx, cancel := context.WithTimeout(browserCtx, c.Timeout)
		defer cancel()
		return chromedp.Run(tctx,
			chromedp.EmulateViewport(c.Width, c.Height),
			chromedp.Navigate(target),
			chromedp.WaitVisible("#dashboard", chromedp.ByQuery),
			// Chart images load after the DOM is ready.
			chromedp.Sleep(750*time.Millisecond),
			chromedp.FullScreenshot(&img, 90),
		)
	})
	if err != nil {
		return fmt.Errorf("snapshot: capture: %w", err)
	}

	if err := writeImage(out, img); err != nil {
		return err
	}
	c.logger.Info("Saved %d KB screenshot to %s", len(img)/1024, out)
	return nil
}

func validURL(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("snapshot: parse url %q: %w", target, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("snapshot: url %q must be absolute http(s)", target)
	}
	return nil
}

func writeImage(path string, img []byte) error {
	if len(img) == 0 {
		return errors.New("snapshot: empty screenshot")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("snapshot: create output dir: %w", err)
	}
	if err := os.WriteFile(path, img, 0644); err != nil {
		return fmt.Errorf("snapshot: write %q: %w", path, err)
	}
	return nil
}

func findChromeBinary(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
