package layout

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/imagepalette/internal/colour"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		input   string
		want    Orientation
		wantErr bool
	}{
		{"r", Right, false},
		{"R", Right, false},
		{"right", Right, false},
		{"l", Left, false},
		{"Left", Left, false},
		{"t", Top, false},
		{" top ", Top, false},
		{"b", Bottom, false},
		{"bottom", Bottom, false},
		{"x", 0, true},
		{"", 0, true},
		{"up", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOrientation(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOrientation) {
					t.Fatalf("ParseOrientation(%q) error = %v, want ErrInvalidOrientation", tt.input, err)
				}
				if !errors.Is(err, colour.ErrConfiguration) {
					t.Errorf("ParseOrientation(%q) error does not match ErrConfiguration", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOrientation(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseOrientation(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero output scale", func(c *Config) { c.OutputScale = 0 }},
		{"output scale of one", func(c *Config) { c.OutputScale = 1 }},
		{"negative bar width", func(c *Config) { c.BarWidthScale = -0.5 }},
		{"bar height above one", func(c *Config) { c.BarHeightScale = 1.5 }},
		{"unknown orientation", func(c *Config) { c.Orientation = Orientation(9) }},
		{"negative outline", func(c *Config) { c.OutlineWidth = -1 }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, colour.ErrConfiguration) {
				t.Errorf("Validate() = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestOutlineColour(t *testing.T) {
	black := colour.MustColour(0, 0, 0)

	cfg := DefaultConfig()
	got, ok := cfg.OutlineColour()
	if !ok || got != cfg.Background {
		t.Errorf("default outline = %v, %v; want background %v, true", got, ok, cfg.Background)
	}

	cfg.Outline = &black
	if got, ok := cfg.OutlineColour(); !ok || got != black {
		t.Errorf("explicit outline = %v, %v; want %v, true", got, ok, black)
	}

	cfg.NoOutline = true
	if _, ok := cfg.OutlineColour(); ok {
		t.Error("NoOutline should disable outlines")
	}

	cfg = DefaultConfig()
	cfg.OutlineWidth = 0
	if _, ok := cfg.OutlineColour(); ok {
		t.Error("zero outline width should disable outlines")
	}
}

func TestComputeRightAttachedStrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputScale = 0.8

	g, err := Compute(800, 600, 4, cfg)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if want := image.Rect(0, 0, 1000, 600); g.Canvas != want {
		t.Errorf("Canvas = %v, want %v", g.Canvas, want)
	}
	if want := image.Rect(0, 0, 800, 600); g.Source != want {
		t.Errorf("Source = %v, want %v", g.Source, want)
	}
	if want := image.Rect(800, 0, 1000, 600); g.Strip != want {
		t.Errorf("Strip = %v, want %v", g.Strip, want)
	}

	wantSlots := []image.Rectangle{
		image.Rect(800, 0, 1000, 150),
		image.Rect(800, 150, 1000, 300),
		image.Rect(800, 300, 1000, 450),
		image.Rect(800, 450, 1000, 600),
	}
	if diff := cmp.Diff(wantSlots, g.Slots); diff != "" {
		t.Errorf("Slots mismatch (-want +got):\n%s", diff)
	}

	// 200x150 slots at 0.75 give 150x112 bars, centred.
	if want := image.Rect(825, 19, 975, 131); g.Bars[0] != want {
		t.Errorf("Bars[0] = %v, want %v", g.Bars[0], want)
	}
}

func TestComputeOrientations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputScale = 0.75

	tests := []struct {
		orientation Orientation
		canvas      image.Rectangle
		source      image.Rectangle
		strip       image.Rectangle
	}{
		{Right, image.Rect(0, 0, 400, 200), image.Rect(0, 0, 300, 200), image.Rect(300, 0, 400, 200)},
		{Left, image.Rect(0, 0, 400, 200), image.Rect(100, 0, 400, 200), image.Rect(0, 0, 100, 200)},
		{Bottom, image.Rect(0, 0, 300, 267), image.Rect(0, 0, 300, 200), image.Rect(0, 200, 300, 267)},
		{Top, image.Rect(0, 0, 300, 267), image.Rect(0, 67, 300, 267), image.Rect(0, 0, 300, 67)},
	}

	for _, tt := range tests {
		t.Run(tt.orientation.String(), func(t *testing.T) {
			cfg.Orientation = tt.orientation
			g, err := Compute(300, 200, 3, cfg)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if g.Canvas != tt.canvas {
				t.Errorf("Canvas = %v, want %v", g.Canvas, tt.canvas)
			}
			if g.Source != tt.source {
				t.Errorf("Source = %v, want %v", g.Source, tt.source)
			}
			if g.Strip != tt.strip {
				t.Errorf("Strip = %v, want %v", g.Strip, tt.strip)
			}
		})
	}
}

func TestComputeContainment(t *testing.T) {
	sizes := []image.Point{{800, 600}, {600, 800}, {123, 457}, {1000, 1000}}
	counts := []int{1, 3, 5, 7}

	for _, o := range []Orientation{Right, Left, Top, Bottom} {
		for _, size := range sizes {
			for _, n := range counts {
				cfg := DefaultConfig()
				cfg.Orientation = o
				g, err := Compute(size.X, size.Y, n, cfg)
				if err != nil {
					t.Fatalf("%v %v n=%d: Compute() error = %v", o, size, n, err)
				}

				if g.Source.Dx() != size.X || g.Source.Dy() != size.Y {
					t.Errorf("%v %v n=%d: source placed at %v, want size %v", o, size, n, g.Source, size)
				}
				if !g.Source.In(g.Canvas) || !g.Strip.In(g.Canvas) {
					t.Errorf("%v %v n=%d: source %v or strip %v outside canvas %v", o, size, n, g.Source, g.Strip, g.Canvas)
				}
				if g.Source.Overlaps(g.Strip) {
					t.Errorf("%v %v n=%d: source %v overlaps strip %v", o, size, n, g.Source, g.Strip)
				}
				if len(g.Slots) != n || len(g.Bars) != n {
					t.Fatalf("%v %v n=%d: got %d slots and %d bars", o, size, n, len(g.Slots), len(g.Bars))
				}

				for i := range n {
					if !g.Slots[i].In(g.Strip) {
						t.Errorf("%v %v n=%d: slot %d %v outside strip %v", o, size, n, i, g.Slots[i], g.Strip)
					}
					if !g.Bars[i].In(g.Slots[i]) {
						t.Errorf("%v %v n=%d: bar %d %v outside slot %v", o, size, n, i, g.Bars[i], g.Slots[i])
					}
					for j := i + 1; j < n; j++ {
						if g.Bars[i].Overlaps(g.Bars[j]) {
							t.Errorf("%v %v n=%d: bar %d overlaps bar %d", o, size, n, i, j)
						}
					}
				}
			}
		}
	}
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		n             int
		mutate        func(*Config)
		want          error
	}{
		{"empty palette", 100, 100, 0, nil, colour.ErrConfiguration},
		{"empty source", 0, 100, 3, nil, colour.ErrConfiguration},
		{"invalid ratio", 100, 100, 3, func(c *Config) { c.BarWidthScale = 1 }, colour.ErrConfiguration},
		{"no room for strip", 10, 10, 1, func(c *Config) { c.OutputScale = 0.99 }, ErrDegenerate},
		{"too many slots", 800, 600, 1000, func(c *Config) { c.OutputScale = 0.8 }, ErrDegenerate},
		{"zero width bar", 100, 100, 1, func(c *Config) { c.OutputScale = 0.99 }, ErrDegenerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			_, err := Compute(tt.width, tt.height, tt.n, cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("Compute() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func uniform(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func pixel(img *image.RGBA, x, y int) colour.RGB {
	return colour.FromColor(img.RGBAAt(x, y)).RGB()
}

func TestCompose(t *testing.T) {
	red := colour.MustColour(255, 0, 0)
	green := colour.MustColour(0, 255, 0)
	blue := colour.MustColour(0, 0, 255)
	black := colour.MustColour(0, 0, 0)
	palette := colour.NewPalette([]colour.Colour{green, blue})

	// 90x60 at 0.9 gives a 100x60 canvas, a 10px strip and two 30px slots.
	// Each bar is 7x22 at (91,4) and (91,34).
	src := uniform(90, 60, red)

	t.Run("default outline", func(t *testing.T) {
		cfg := DefaultConfig()
		img, g, err := Compose(src, palette, cfg)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if img.Bounds() != g.Canvas {
			t.Fatalf("image bounds %v, want canvas %v", img.Bounds(), g.Canvas)
		}
		if want := image.Rect(91, 4, 98, 26); g.Bars[0] != want {
			t.Fatalf("Bars[0] = %v, want %v", g.Bars[0], want)
		}

		checks := []struct {
			name string
			x, y int
			want colour.Colour
		}{
			{"source", 10, 10, red},
			{"strip background", 99, 0, cfg.Background},
			{"first bar interior", 94, 15, green},
			{"second bar interior", 94, 45, blue},
			{"first bar outline", 91, 4, cfg.Background},
			{"second bar outline", 97, 55, cfg.Background},
		}
		for _, c := range checks {
			if got := pixel(img, c.x, c.y); got != c.want.RGB() {
				t.Errorf("%s at (%d,%d) = %v, want %v", c.name, c.x, c.y, got, c.want.RGB())
			}
		}
	})

	t.Run("explicit outline", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Outline = &black
		img, _, err := Compose(src, palette, cfg)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if got := pixel(img, 91, 4); got != black.RGB() {
			t.Errorf("outline pixel = %v, want %v", got, black.RGB())
		}
		if got := pixel(img, 92, 5); got != green.RGB() {
			t.Errorf("pixel inside outline = %v, want %v", got, green.RGB())
		}
	})

	t.Run("no outline", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Outline = &black
		cfg.NoOutline = true
		img, _, err := Compose(src, palette, cfg)
		if err != nil {
			t.Fatalf("Compose() error = %v", err)
		}
		if got := pixel(img, 91, 4); got != green.RGB() {
			t.Errorf("bar corner = %v, want %v", got, green.RGB())
		}
	})

	t.Run("nil inputs", func(t *testing.T) {
		if _, _, err := Compose(nil, palette, DefaultConfig()); err == nil {
			t.Error("Compose(nil source) should fail")
		}
		if _, _, err := Compose(src, nil, DefaultConfig()); !errors.Is(err, colour.ErrConfiguration) {
			t.Errorf("Compose(nil palette) error = %v, want ErrConfiguration", err)
		}
	})
}

func TestStroke(t *testing.T) {
	black := colour.MustColour(0, 0, 0)
	white := colour.MustColour(255, 255, 255)

	img := image.NewRGBA(image.Rect(0, 0, 5, 5))
	fill(img, img.Bounds(), white)
	stroke(img, img.Bounds(), black, 10)

	// The width is clamped so the whole 5x5 rectangle becomes outline.
	for y := range 5 {
		for x := range 5 {
			if got := pixel(img, x, y); got != black.RGB() {
				t.Fatalf("pixel (%d,%d) = %v, want black", x, y, got)
			}
		}
	}
}

func TestStrip(t *testing.T) {
	red := colour.MustColour(255, 0, 0)
	green := colour.MustColour(0, 255, 0)
	blue := colour.MustColour(0, 0, 255)
	palette := colour.NewPalette([]colour.Colour{red, green, blue})

	img, err := Strip(palette, 100, 10)
	if err != nil {
		t.Fatalf("Strip() error = %v", err)
	}
	if want := image.Rect(0, 0, 100, 10); img.Bounds() != want {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), want)
	}

	checks := []struct {
		x    int
		want colour.Colour
	}{
		{0, red}, {32, red}, {33, green}, {65, green}, {66, blue}, {99, blue},
	}
	for _, c := range checks {
		for _, y := range []int{0, 9} {
			if got := pixel(img, c.x, y); got != c.want.RGB() {
				t.Errorf("pixel (%d,%d) = %v, want %v", c.x, y, got, c.want.RGB())
			}
		}
	}

	if _, err := Strip(colour.NewPalette(nil), 100, 10); !errors.Is(err, colour.ErrConfiguration) {
		t.Errorf("Strip(empty) error = %v, want ErrConfiguration", err)
	}
	if _, err := Strip(palette, 0, 10); !errors.Is(err, colour.ErrConfiguration) {
		t.Errorf("Strip(width 0) error = %v, want ErrConfiguration", err)
	}
	if _, err := Strip(palette, 2, 10); !errors.Is(err, ErrDegenerate) {
		t.Errorf("Strip(width 2) error = %v, want ErrDegenerate", err)
	}
}
