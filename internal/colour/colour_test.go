package colour

import (
	"errors"
	"testing"
)

func TestNewColourHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
		want    HSV
	}{
		{name: "black", r: 0, g: 0, b: 0, want: HSV{0, 0, 0}},
		{name: "white", r: 255, g: 255, b: 255, want: HSV{0, 0, 100}},
		{name: "red", r: 255, g: 0, b: 0, want: HSV{0, 100, 100}},
		{name: "green", r: 0, g: 255, b: 0, want: HSV{120, 100, 100}},
		{name: "blue", r: 0, g: 0, b: 255, want: HSV{240, 100, 100}},
		{name: "magenta", r: 255, g: 0, b: 255, want: HSV{300, 100, 100}},
		{name: "orange", r: 255, g: 128, b: 0, want: HSV{30, 100, 100}},
		{name: "navy", r: 0, g: 0, b: 128, want: HSV{240, 100, 50}},
		{name: "light grey", r: 220, g: 220, b: 220, want: HSV{0, 0, 86}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewColour(tt.r, tt.g, tt.b)
			if err != nil {
				t.Fatalf("NewColour() error = %v", err)
			}
			if got := c.HSV(); got != tt.want {
				t.Errorf("HSV() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewColourOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
	}{
		{name: "negative red", r: -1, g: 0, b: 0},
		{name: "green too large", r: 0, g: 256, b: 0},
		{name: "blue too large", r: 0, g: 0, b: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewColour(tt.r, tt.g, tt.b)
			if !errors.Is(err, ErrInvalidColour) {
				t.Fatalf("NewColour() error = %v, want ErrInvalidColour", err)
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("NewColour() error = %v, want it to match ErrConfiguration", err)
			}
		})
	}
}

func TestHSVIsPureFunctionOfRGB(t *testing.T) {
	for r := 0; r <= 255; r += 15 {
		for g := 0; g <= 255; g += 15 {
			for b := 0; b <= 255; b += 15 {
				first := MustColour(r, g, b)
				second := FromRGB(first.RGB())
				if first != second {
					t.Fatalf("rebuilding (%d,%d,%d) changed the colour: %+v vs %+v", r, g, b, first.HSV(), second.HSV())
				}
			}
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	for r := 0; r <= 255; r += 17 {
		for g := 0; g <= 255; g += 17 {
			for b := 0; b <= 255; b += 17 {
				c := MustColour(r, g, b)
				parsed, err := ParseHex(c.Hex())
				if err != nil {
					t.Fatalf("ParseHex(%q) error = %v", c.Hex(), err)
				}
				if parsed != c {
					t.Fatalf("ParseHex(%q) = %v, want %v", c.Hex(), parsed.RGB(), c.RGB())
				}
			}
		}
	}
}

func TestFormattedViews(t *testing.T) {
	c := MustColour(255, 128, 0)

	if got, want := c.Hex(), "#FF8000"; got != want {
		t.Errorf("Hex() = %q, want %q", got, want)
	}
	if got, want := c.RGBString(), "rgb(255, 128, 0)"; got != want {
		t.Errorf("RGBString() = %q, want %q", got, want)
	}
	if got, want := c.HSVString(), "hsv(30°, 100%, 100%)"; got != want {
		t.Errorf("HSVString() = %q, want %q", got, want)
	}
	if got, want := c.String(), "#FF8000"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "hex with hash", input: "#dcdcdc", want: RGB{220, 220, 220}},
		{name: "hex upper case", input: "#DCDCDC", want: RGB{220, 220, 220}},
		{name: "hex without hash", input: "f4226f", want: RGB{244, 34, 111}},
		{name: "short hex", input: "#ddd", want: RGB{221, 221, 221}},
		{name: "comma triple", input: "244,34,111", want: RGB{244, 34, 111}},
		{name: "spaced triple", input: "244 34 111", want: RGB{244, 34, 111}},
		{name: "comma and space triple", input: "1, 2, 3", want: RGB{1, 2, 3}},
		{name: "empty", input: "", wantErr: true},
		{name: "two components", input: "1,2", wantErr: true},
		{name: "component out of range", input: "256,0,0", wantErr: true},
		{name: "non numeric component", input: "a,b,c", wantErr: true},
		{name: "not hex", input: "#zzzzzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColour) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidColour", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got.RGB() != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got.RGB(), tt.want)
			}
		})
	}
}

func TestColourImplementsColor(t *testing.T) {
	r, g, b, a := MustColour(255, 0, 0).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("RGBA() = (%d, %d, %d, %d), want opaque red", r, g, b, a)
	}
}
