package tui

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/tui-cca/internal/core"
)

// screenshotDir returns ~/.tui-cca/screenshots, or the working directory
// if home is unavailable.
func screenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".tui-cca", "screenshots")
}

// SavePNG writes the canvas to dir as a PNG, one pixel per cell.
// The file name is derived from prefix and the current time.
func SavePNG(c *core.Canvas, dir, prefix string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: cannot create %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", prefix, timestamp))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("screenshot: cannot create file: %w", err)
	}

	if err := png.Encode(f, c.Image()); err != nil {
		f.Close()
		return "", fmt.Errorf("screenshot: cannot encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("screenshot: cannot write: %w", err)
	}
	return path, nil
}
