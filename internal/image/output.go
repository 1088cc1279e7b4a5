package image

import (
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultMaxWidth is the widest working copy used for extraction and layout.
const DefaultMaxWidth = 1000

// Output file suffixes.
const (
	SuffixPalette      = "palette.png"
	SuffixIncorporated = "incorporated-palette.png"
	SuffixJSON         = "json-palette.json"
)

// WorkingCopy returns img unchanged when it is at most maxWidth pixels wide,
// and otherwise a Lanczos downscale to maxWidth keeping the aspect ratio.
// A non-positive maxWidth means DefaultMaxWidth.
func WorkingCopy(img image.Image, maxWidth int) image.Image {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if img.Bounds().Dx() <= maxWidth {
		return img
	}
	return imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
}

// Save encodes img by the extension of dst, creating parent folders.
func Save(img image.Image, dst string) error {
	if dir := filepath.Dir(dst); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 -- output folder is user-visible
			return fmt.Errorf("failed to create output folder: %w", err)
		}
	}
	if err := imaging.Save(img, dst); err != nil {
		return fmt.Errorf("failed to save %s: %w", dst, err)
	}
	return nil
}

// OutputPath returns folder/<stem>-<suffix>, where stem is the base name of
// source without its extension. URL query strings are ignored.
func OutputPath(folder, source, suffix string) string {
	name := source
	if IsURL(source) {
		name, _, _ = strings.Cut(name, "?")
		name = path.Base(name)
	} else {
		name = filepath.Base(name)
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" || stem == "." || stem == "/" {
		stem = "image"
	}
	return filepath.Join(folder, stem+"-"+suffix)
}
