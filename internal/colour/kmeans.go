// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// DefaultThreshold is the RMS objective below which clustering stops.
	DefaultThreshold = 1.0
)

// IndexSource supplies random indices in [0, n). *rand.Rand satisfies it.
type IndexSource interface {
	IntN(n int) int
}

// Outcome describes why a fit stopped.
type Outcome int

const (
	// Running means Fit has not finished yet.
	Running Outcome = iota
	// Converged means the objective dropped below the threshold.
	Converged
	// FixedPoint means an update left every centroid unchanged.
	FixedPoint
	// BoundReached means the no-improvement iteration bound was exceeded and
	// the best-so-far state was restored.
	BoundReached
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Converged:
		return "converged"
	case FixedPoint:
		return "fixed-point"
	case BoundReached:
		return "bound-reached"
	default:
		return "running"
	}
}

// KMeans partitions colours into k clusters by iterative centroid refinement.
// Initial centroids are k samples drawn without replacement; there is no
// k-means++ seeding and no spatial index.
//
// A KMeans is single use: call Fit once, then read the results.
// It is not safe for concurrent use.
type KMeans struct {
	k             int
	threshold     float64
	maxIterations int
	seed          int64
	seeded        bool
	source        IndexSource
	logger        hclog.Logger

	samples   []Colour
	centroids []Colour
	clusters  [][]Colour
	objective float64

	iterations int
	outcome    Outcome
	fitted     bool
}

// KMeansOption configures a KMeans engine.
type KMeansOption func(*KMeans)

// WithSeed makes the initial centroid draw reproducible.
func WithSeed(seed int64) KMeansOption {
	return func(e *KMeans) {
		e.seed = seed
		e.seeded = true
	}
}

// WithThreshold sets the RMS objective below which the fit is converged.
func WithThreshold(threshold float64) KMeansOption {
	return func(e *KMeans) { e.threshold = threshold }
}

// WithMaxIterations bounds the number of consecutive iterations without an
// objective improvement. Zero disables the bound.
func WithMaxIterations(n int) KMeansOption {
	return func(e *KMeans) { e.maxIterations = n }
}

// WithSource replaces the random source used for the initial draw.
// It takes precedence over WithSeed.
func WithSource(src IndexSource) KMeansOption {
	return func(e *KMeans) { e.source = src }
}

// WithLogger sets the logger used for fit progress.
func WithLogger(logger hclog.Logger) KMeansOption {
	return func(e *KMeans) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewKMeans creates an engine that will produce k centroids.
func NewKMeans(k int, opts ...KMeansOption) *KMeans {
	e := &KMeans{
		k:         k,
		threshold: DefaultThreshold,
		logger:    hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.seeded {
		e.seed = time.Now().UnixNano()
	}
	if e.source == nil {
		// #nosec G404 -- clustering does not need cryptographic randomness
		e.source = rand.New(rand.NewPCG(uint64(e.seed), uint64(e.seed)))
	}
	return e
}

// Seed returns the seed of the random source, whether supplied or derived
// from the clock.
func (e *KMeans) Seed() int64 { return e.seed }

// validate checks the cluster count against the sample count.
func (e *KMeans) validate(n int) error {
	if n == 0 {
		return configErrorf("no samples to cluster")
	}
	if e.k <= 0 {
		return configErrorf("cluster count must be at least 1, got %d", e.k)
	}
	if e.k > n {
		return configErrorf("cluster count %d exceeds sample count %d", e.k, n)
	}
	if e.threshold <= 0 || math.IsNaN(e.threshold) {
		return configErrorf("convergence threshold must be positive, got %v", e.threshold)
	}
	if e.maxIterations < 0 {
		return configErrorf("max iterations must not be negative, got %d", e.maxIterations)
	}
	return nil
}

// Fit clusters the samples. It runs until the objective drops below the
// threshold, an update reaches a fixed point, or the no-improvement bound is
// exceeded. Reaching the bound is not an error: the best centroids seen are kept.
func (e *KMeans) Fit(samples []Colour) error {
	if e.fitted {
		return ErrAlreadyFitted
	}
	if err := e.validate(len(samples)); err != nil {
		return err
	}
	e.fitted = true
	e.samples = samples
	e.centroids = e.initialCentroids()

	e.logger.Info("starting kmeans fit",
		"clusters", e.k, "samples", len(samples),
		"threshold", e.threshold, "max_iterations", e.maxIterations, "seed", e.seed)

	track := newTracker(e.threshold, e.maxIterations)
	var (
		bestCentroids []Colour
		bestClusters  [][]Colour
	)

	for e.outcome == Running {
		moved := e.step()

		outcome, improved := track.observe(e.objective, moved)
		if improved {
			bestCentroids = e.centroids
			bestClusters = e.clusters
		}
		if outcome == BoundReached {
			e.centroids = bestCentroids
			e.clusters = bestClusters
			e.objective = track.best
		}
		e.outcome = outcome

		e.logger.Debug("iteration completed", "iteration", e.iterations, "objective", e.objective, "stale", track.stale)
	}

	e.samples = nil
	e.logger.Info("kmeans fit completed", "outcome", e.outcome, "iterations", e.iterations, "objective", e.objective)
	return nil
}

// tracker decides when a fit stops from the sequence of objective values.
type tracker struct {
	threshold float64
	bound     int
	best      float64
	stale     int
}

func newTracker(threshold float64, bound int) *tracker {
	return &tracker{threshold: threshold, bound: bound, best: math.Inf(1)}
}

// observe records one iteration's objective and reports the resulting
// outcome and whether the objective improved on the best seen so far.
func (t *tracker) observe(objective float64, moved bool) (Outcome, bool) {
	improved := objective < t.best
	if improved {
		t.best = objective
		t.stale = 0
	} else {
		t.stale++
	}

	switch {
	case objective < t.threshold:
		return Converged, improved
	case !moved:
		return FixedPoint, improved
	case t.bound > 0 && t.stale > t.bound:
		return BoundReached, improved
	default:
		return Running, improved
	}
}

// initialCentroids draws k samples without replacement using a partial
// Fisher-Yates shuffle over sample indices.
func (e *KMeans) initialCentroids() []Colour {
	n := len(e.samples)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	centroids := make([]Colour, e.k)
	for i := range e.k {
		j := i + e.source.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
		centroids[i] = e.samples[idx[i]]
	}
	return centroids
}

// step runs one Assign and Update phase and recomputes the objective.
// It reports whether any centroid moved.
func (e *KMeans) step() bool {
	assignments := e.assign()
	next := e.update(assignments)
	moved := !slices.Equal(next, e.centroids)

	e.centroids = next
	e.clusters = e.group(assignments)
	e.objective = e.rms(assignments)
	e.iterations++
	return moved
}

// assign maps every sample to the index of its nearest centroid.
// The first centroid wins on exact ties.
func (e *KMeans) assign() []int {
	assignments := make([]int, len(e.samples))
	for i, s := range e.samples {
		assignments[i] = nearest(s, e.centroids)
	}
	return assignments
}

// nearest returns the index of the centroid closest to c.
func nearest(c Colour, centroids []Colour) int {
	best := 0
	bestDist := math.MaxInt
	for i, centroid := range centroids {
		if d := c.distanceSq(centroid); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// update computes the truncating integer mean of each cluster. An empty
// cluster keeps its previous centroid.
func (e *KMeans) update(assignments []int) []Colour {
	sums := make([][3]int, e.k)
	counts := make([]int, e.k)
	for i, s := range e.samples {
		c := assignments[i]
		sums[c][0] += int(s.rgb.R)
		sums[c][1] += int(s.rgb.G)
		sums[c][2] += int(s.rgb.B)
		counts[c]++
	}

	next := make([]Colour, e.k)
	for i := range e.k {
		if counts[i] == 0 {
			next[i] = e.centroids[i]
			continue
		}
		next[i] = FromRGB(RGB{
			R: uint8(sums[i][0] / counts[i]),
			G: uint8(sums[i][1] / counts[i]),
			B: uint8(sums[i][2] / counts[i]),
		})
	}
	return next
}

// group builds cluster membership lists in sample order.
func (e *KMeans) group(assignments []int) [][]Colour {
	clusters := make([][]Colour, e.k)
	for i, s := range e.samples {
		clusters[assignments[i]] = append(clusters[assignments[i]], s)
	}
	return clusters
}

// rms is the root mean square distance between each sample and the current
// centroid of its cluster.
func (e *KMeans) rms(assignments []int) float64 {
	var total float64
	for i, s := range e.samples {
		total += float64(s.distanceSq(e.centroids[assignments[i]]))
	}
	return math.Sqrt(total / float64(len(e.samples)))
}

// Centroids returns a copy of the final centroids, in cluster index order.
func (e *KMeans) Centroids() []Colour {
	return slices.Clone(e.centroids)
}

// Clusters returns a copy of the final cluster membership.
func (e *KMeans) Clusters() [][]Colour {
	out := make([][]Colour, len(e.clusters))
	for i, c := range e.clusters {
		out[i] = slices.Clone(c)
	}
	return out
}

// Weights returns the fraction of samples in each cluster.
func (e *KMeans) Weights() []float64 {
	total := 0
	for _, c := range e.clusters {
		total += len(c)
	}
	weights := make([]float64, len(e.clusters))
	if total == 0 {
		return weights
	}
	for i, c := range e.clusters {
		weights[i] = float64(len(c)) / float64(total)
	}
	return weights
}

// Iterations returns the number of completed iterations.
func (e *KMeans) Iterations() int { return e.iterations }

// Objective returns the RMS objective of the final state.
func (e *KMeans) Objective() float64 { return e.objective }

// Outcome reports why the fit stopped.
func (e *KMeans) Outcome() Outcome { return e.outcome }
