// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"
)

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract extracts a palette of count colours, ordered by hue then saturation.
	Extract(img image.Image, count int) (*Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans clusters every sampled pixel with KMeans.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmDominant picks the most dominant colours by weight.
	AlgorithmDominant Algorithm = "dominant"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
		AlgorithmDominant,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// ExtractorOptions configures extractors. Fields an algorithm does not use
// are ignored.
type ExtractorOptions struct {
	// Seed makes KMeans reproducible. Nil seeds from the clock.
	Seed *int64
	// Threshold is the KMeans RMS convergence threshold. Zero uses DefaultThreshold.
	Threshold float64
	// MaxIterations bounds KMeans iterations without improvement. Zero is unbounded.
	MaxIterations int
	// Logger receives progress messages. Nil discards them.
	Logger hclog.Logger
}

// NewExtractor creates a new Extractor based on the specified algorithm.
// Returns an error if the algorithm is not recognised.
func NewExtractor(alg Algorithm, opts ExtractorOptions) (Extractor, error) {
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	switch alg {
	case AlgorithmKMeans:
		return &KMeansExtractor{opts: opts}, nil
	case AlgorithmDominant:
		return &DominantExtractor{logger: opts.Logger}, nil
	default:
		return nil, configErrorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// KMeansExtractor extracts palettes with the KMeans engine.
type KMeansExtractor struct {
	opts ExtractorOptions
}

// Extract samples every pixel of img and clusters the samples into count colours.
func (e *KMeansExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}

	samples := Samples(img)

	opts := []KMeansOption{WithLogger(e.opts.Logger)}
	if e.opts.Seed != nil {
		opts = append(opts, WithSeed(*e.opts.Seed))
	}
	if e.opts.Threshold != 0 {
		opts = append(opts, WithThreshold(e.opts.Threshold))
	}
	if e.opts.MaxIterations != 0 {
		opts = append(opts, WithMaxIterations(e.opts.MaxIterations))
	}

	engine := NewKMeans(count, opts...)
	if err := engine.Fit(samples); err != nil {
		return nil, fmt.Errorf("failed to cluster colours: %w", err)
	}

	return NewPaletteWithWeights(engine.Centroids(), engine.Weights()).Sorted(), nil
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:  AlgorithmKMeans,
		ColorCount: 5,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return configErrorf("invalid algorithm: %s", c.Algorithm)
	}
	if c.ColorCount < 1 {
		return configErrorf("colour count must be at least 1, got %d", c.ColorCount)
	}
	if c.ColorCount > 256 {
		return configErrorf("colour count too large: %d (maximum: 256)", c.ColorCount)
	}
	return nil
}
