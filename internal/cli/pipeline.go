package cli

import (
	"context"
	"fmt"
	goimage "image"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/imagepalette/internal/colour"
	"github.com/jmylchreest/imagepalette/internal/image"
	"github.com/jmylchreest/imagepalette/internal/layout"
	"github.com/jmylchreest/imagepalette/internal/seed"
)

// outputs selects which artefacts a run produces.
type outputs struct {
	palette      bool
	print        bool
	json         bool
	incorporated bool
}

func (o outputs) any() bool {
	return o.palette || o.print || o.json || o.incorporated
}

// pipeline loads one image, extracts its palette and writes the selected
// outputs. It holds no per-image state and is safe for concurrent use as
// long as print is off.
type pipeline struct {
	loader    image.Loader
	logger    hclog.Logger
	stdout    io.Writer
	folder    string
	resize    bool
	extractor colour.ExtractorConfig
	seed      seed.Config
	threshold float64
	maxIter   int
	outputs   outputs
	// layoutFor picks the layout for a source of the given size.
	layoutFor func(width, height int) layout.Config
}

// run processes source and returns the extracted palette.
func (p *pipeline) run(ctx context.Context, source string) (*colour.Palette, error) {
	logger := p.logger.With("image", source)

	img, err := p.loader.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Info("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	working := img
	if p.resize {
		working = image.WorkingCopy(img, image.DefaultMaxWidth)
		if working != img {
			logger.Debug("working copy resized", "width", working.Bounds().Dx(), "height", working.Bounds().Dy())
		}
	}

	palette, err := p.extract(working, source, logger)
	if err != nil {
		return nil, err
	}

	if p.outputs.print {
		if err := renderPreview(p.stdout, palette); err != nil {
			return nil, fmt.Errorf("failed to print palette: %w", err)
		}
	}
	if p.outputs.palette {
		if err := p.savePalette(palette, source, logger); err != nil {
			return nil, err
		}
	}
	if p.outputs.json {
		if err := p.saveJSON(palette, source, logger); err != nil {
			return nil, err
		}
	}
	if p.outputs.incorporated {
		if err := p.saveIncorporated(img, palette, source, logger); err != nil {
			return nil, err
		}
	}
	return palette, nil
}

func (p *pipeline) extract(img goimage.Image, source string, logger hclog.Logger) (*colour.Palette, error) {
	opts := colour.ExtractorOptions{
		Threshold:     p.threshold,
		MaxIterations: p.maxIter,
		Logger:        logger.Named(string(p.extractor.Algorithm)),
	}
	if p.extractor.Algorithm == colour.AlgorithmKMeans {
		s, err := seed.Calculate(img, source, p.seed)
		if err != nil {
			return nil, fmt.Errorf("failed to derive seed: %w", err)
		}
		opts.Seed = &s
		logger.Debug("seed derived", "mode", p.seed.Mode, "seed", s)
	}

	extractor, err := colour.NewExtractor(p.extractor.Algorithm, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	logger.Info("starting colour extraction", "colours", p.extractor.ColorCount, "algorithm", p.extractor.Algorithm)
	palette, err := extractor.Extract(img, p.extractor.ColorCount)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}
	logger.Info("colours extracted", "palette", palette.ToHex())
	return palette, nil
}

func (p *pipeline) savePalette(palette *colour.Palette, source string, logger hclog.Logger) error {
	strip, err := layout.Strip(palette, layout.DefaultStripWidth, layout.DefaultStripHeight)
	if err != nil {
		return fmt.Errorf("failed to render palette: %w", err)
	}
	path := image.OutputPath(p.folder, source, image.SuffixPalette)
	if err := image.Save(strip, path); err != nil {
		return err
	}
	logger.Info("palette image saved", "path", path)
	return nil
}

func (p *pipeline) saveJSON(palette *colour.Palette, source string, logger hclog.Logger) error {
	data, err := palette.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to encode palette: %w", err)
	}
	path := image.OutputPath(p.folder, source, image.SuffixJSON)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 -- output folder is user-visible
		return fmt.Errorf("failed to create output folder: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- palette output is not sensitive
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("JSON file saved", "path", path)
	return nil
}

func (p *pipeline) saveIncorporated(img goimage.Image, palette *colour.Palette, source string, logger hclog.Logger) error {
	bounds := img.Bounds()
	cfg := p.layoutFor(bounds.Dx(), bounds.Dy())

	composite, geometry, err := layout.Compose(img, palette, cfg)
	if err != nil {
		return fmt.Errorf("failed to incorporate palette: %w", err)
	}
	logger.Debug("layout computed", "orientation", cfg.Orientation, "canvas", geometry.Canvas, "strip", geometry.Strip)

	path := image.OutputPath(p.folder, source, image.SuffixIncorporated)
	if err := image.Save(composite, path); err != nil {
		return err
	}
	logger.Info("incorporated palette image saved", "path", path)
	return nil
}
