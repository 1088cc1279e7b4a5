package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/imagepalette/internal/colour"
	"github.com/jmylchreest/imagepalette/internal/layout"
	"github.com/jmylchreest/imagepalette/internal/seed"
)

// colourValue is a pflag.Value accepting "r,g,b", "r g b" or a hex colour.
type colourValue struct {
	value colour.Colour
	set   bool
}

func newColourValue(def *colour.Colour) *colourValue {
	v := &colourValue{}
	if def != nil {
		v.value, v.set = *def, true
	}
	return v
}

func (v *colourValue) String() string {
	if !v.set {
		return ""
	}
	rgb := v.value.RGB()
	return fmt.Sprintf("%d,%d,%d", rgb.R, rgb.G, rgb.B)
}

func (v *colourValue) Set(s string) error {
	c, err := colour.Parse(s)
	if err != nil {
		return err
	}
	v.value, v.set = c, true
	return nil
}

func (v *colourValue) Type() string { return "colour" }

// ptr returns the colour, or nil when the flag was never set.
func (v *colourValue) ptr() *colour.Colour {
	if !v.set {
		return nil
	}
	c := v.value
	return &c
}

// layoutFlags are the incorporated-palette flags shared by extract and batch.
type layoutFlags struct {
	scale        float64
	widthScale   float64
	heightScale  float64
	position     string
	background   *colourValue
	outline      *colourValue
	outlineWidth int
	noOutline    bool
}

func addLayoutFlags(fs *pflag.FlagSet, f *layoutFlags) {
	def := layout.DefaultConfig()
	f.background = newColourValue(&def.Background)
	f.outline = newColourValue(nil)

	fs.Float64Var(&f.scale, "scl", def.OutputScale, "fraction of the output taken by the original image, in (0, 1)")
	fs.Float64Var(&f.widthScale, "color-width-scl", def.BarWidthScale, "bar width relative to its slot, in (0, 1)")
	fs.Float64Var(&f.heightScale, "color-height-scl", def.BarHeightScale, "bar height relative to its slot, in (0, 1)")
	fs.StringVar(&f.position, "position", "r", "side the palette is attached to (l, r, t, b)")
	fs.Var(f.background, "color", `background colour, e.g. "220,220,220" or "#dcdcdc"`)
	fs.Var(f.outline, "outline", "bar outline colour (default: the background colour)")
	fs.IntVar(&f.outlineWidth, "outline-width", def.OutlineWidth, "bar outline width in pixels")
	fs.BoolVar(&f.noOutline, "no-outline", false, "do not outline bars")
}

// config converts the flags into a validated layout configuration.
func (f *layoutFlags) config() (layout.Config, error) {
	orientation, err := layout.ParseOrientation(f.position)
	if err != nil {
		return layout.Config{}, err
	}
	cfg := layout.Config{
		OutputScale:    f.scale,
		BarWidthScale:  f.widthScale,
		BarHeightScale: f.heightScale,
		Orientation:    orientation,
		Background:     f.background.value,
		Outline:        f.outline.ptr(),
		OutlineWidth:   f.outlineWidth,
		NoOutline:      f.noOutline,
	}
	if err := cfg.Validate(); err != nil {
		return layout.Config{}, err
	}
	return cfg, nil
}

// extractionFlags control palette extraction.
type extractionFlags struct {
	colours       int
	algorithm     string
	resize        bool
	seed          int64
	seedMode      string
	threshold     float64
	maxIterations int
}

func addExtractionFlags(fs *pflag.FlagSet, f *extractionFlags) {
	fs.IntVarP(&f.colours, "colours", "c", 5, "number of colours to extract (1-256)")
	fs.StringVarP(&f.algorithm, "algorithm", "a", string(colour.AlgorithmKMeans), "extraction algorithm (kmeans, dominant)")
	fs.BoolVarP(&f.resize, "resize", "r", false, "extract from a copy at most 1000px wide; faster but slightly less accurate")
	fs.Int64Var(&f.seed, "seed", 0, "seed for the initial centroid draw (implies --seed-mode manual)")
	fs.StringVar(&f.seedMode, "seed-mode", string(seed.ModeRandom), "seed derivation (manual, content, filepath, random)")
	fs.Float64Var(&f.threshold, "min-color-distance", 35, "RMS distance below which clustering has converged")
	fs.IntVar(&f.maxIterations, "max-iterations", 10, "iterations without improvement before clustering stops (0 = unbounded)")
}

// resolve validates the flags. seedSet reports whether --seed was given.
func (f *extractionFlags) resolve(seedSet bool) (colour.ExtractorConfig, seed.Config, error) {
	cfg := colour.ExtractorConfig{
		Algorithm:  colour.Algorithm(f.algorithm),
		ColorCount: f.colours,
	}
	if err := cfg.Validate(); err != nil {
		return colour.ExtractorConfig{}, seed.Config{}, err
	}
	if !(f.threshold > 0) {
		return colour.ExtractorConfig{}, seed.Config{}, fmt.Errorf("%w: --min-color-distance must be positive, got %v", colour.ErrConfiguration, f.threshold)
	}
	if f.maxIterations < 0 {
		return colour.ExtractorConfig{}, seed.Config{}, fmt.Errorf("%w: --max-iterations must not be negative, got %d", colour.ErrConfiguration, f.maxIterations)
	}

	if seedSet {
		v := f.seed
		return cfg, seed.Config{Mode: seed.ModeManual, Value: &v}, nil
	}
	mode, err := seed.ParseMode(f.seedMode)
	if err != nil {
		return colour.ExtractorConfig{}, seed.Config{}, fmt.Errorf("%w: %w", colour.ErrConfiguration, err)
	}
	if mode == seed.ModeManual {
		return colour.ExtractorConfig{}, seed.Config{}, fmt.Errorf("%w: --seed-mode manual requires --seed", colour.ErrConfiguration)
	}
	return cfg, seed.Config{Mode: mode}, nil
}
