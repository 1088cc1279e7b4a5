// Package seed derives the random seed used for the initial centroid draw.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Mode determines how the seed is derived.
type Mode string

const (
	// ModeManual uses a caller-supplied value.
	ModeManual Mode = "manual"
	// ModeContent hashes sampled pixels, so identical images get identical palettes.
	ModeContent Mode = "content"
	// ModeFilepath hashes the absolute image path.
	ModeFilepath Mode = "filepath"
	// ModeRandom varies on every run.
	ModeRandom Mode = "random"
)

// Config selects a mode and, for ModeManual, its value.
type Config struct {
	Mode  Mode
	Value *int64
}

// Calculate derives a seed for the image at path.
// img is required for ModeContent and path for ModeFilepath.
func Calculate(img image.Image, path string, cfg Config) (int64, error) {
	switch cfg.Mode {
	case ModeManual:
		if cfg.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		return *cfg.Value, nil
	case ModeContent:
		return ContentSeed(img)
	case ModeFilepath:
		return FilepathSeed(path)
	case ModeRandom:
		return Random(), nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %q", cfg.Mode)
	}
}

// ContentSeed hashes the image dimensions and a grid of at most ~100x100
// sampled pixels.
func ContentSeed(img image.Image) (int64, error) {
	if img == nil {
		return 0, fmt.Errorf("image is required for content seed mode")
	}

	bounds := img.Bounds()
	h := sha256.New()

	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions are non-negative
	binary.LittleEndian.PutUint32(dims[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions are non-negative
	h.Write(dims[:])

	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	var px [4]byte
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			px[0], px[1], px[2], px[3] = byte(r>>8), byte(g>>8), byte(b>>8), byte(a>>8)
			h.Write(px[:])
		}
	}

	return fold(h.Sum(nil)), nil
}

// FilepathSeed hashes the absolute form of path. URLs are hashed as given.
func FilepathSeed(path string) (int64, error) {
	if path == "" {
		return 0, fmt.Errorf("image path is required for filepath seed mode")
	}

	key := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
	}

	sum := sha256.Sum256([]byte(key))
	return fold(sum[:]), nil
}

// Random returns a non-deterministic seed.
func Random() int64 {
	// #nosec G404 -- the seed only needs to vary between runs
	return time.Now().UnixNano() ^ rand.Int64()
}

func fold(sum []byte) int64 {
	return int64(binary.LittleEndian.Uint64(sum[:8])) // #nosec G115 -- reinterpreting hash bits
}

// ValidModes lists the accepted modes.
func ValidModes() []Mode {
	return []Mode{ModeManual, ModeContent, ModeFilepath, ModeRandom}
}

// ParseMode converts a flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %q (valid: manual, content, filepath, random)", s)
}
