// Package poisson generates blue-noise point sets via Bridson's
// dart-throwing algorithm, generalized to any number of dimensions.
package poisson

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// DefaultRejectionLimit is the number of candidate attempts per active
// point before it is retired. 30 is Bridson's recommended value.
const DefaultRejectionLimit = 30

var (
	// ErrBusy is returned when Generate is called while a run is active.
	ErrBusy = errors.New("poisson: sampler is already generating")

	// ErrInvalidConfig is returned by NewSampler for degenerate parameters.
	ErrInvalidConfig = errors.New("poisson: invalid config")
)

// Config holds the parameters of a sampling run.
type Config struct {
	// Radius is the minimum distance between any two accepted points.
	Radius float64

	// Dimensions holds the extent of the sampling box along each axis.
	// Its length sets the dimensionality of the run.
	Dimensions []float64

	// RejectionLimit caps candidate attempts per active point.
	// Zero selects DefaultRejectionLimit.
	RejectionLimit int
}

func (c Config) validate() error {
	if c.Radius <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidConfig, c.Radius)
	}
	if len(c.Dimensions) == 0 {
		return fmt.Errorf("%w: at least one dimension is required", ErrInvalidConfig)
	}
	for i, ext := range c.Dimensions {
		if ext <= 0 {
			return fmt.Errorf("%w: dimension %d extent must be positive, got %v", ErrInvalidConfig, i, ext)
		}
	}
	if c.RejectionLimit < 0 {
		return fmt.Errorf("%w: rejection limit must not be negative, got %d", ErrInvalidConfig, c.RejectionLimit)
	}
	return nil
}

// Sampler produces Poisson-disk point sets. It is not safe for concurrent
// use; a second Generate while one is running fails with ErrBusy.
type Sampler struct {
	cfg   Config
	rng   *rand.Rand
	state samplerState
}

type samplerState uint8

const (
	stateIdle samplerState = iota
	stateRunning
)

// NewSampler validates cfg and returns a sampler drawing randomness from rng.
func NewSampler(cfg Config, rng *rand.Rand) (*Sampler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.RejectionLimit == 0 {
		cfg.RejectionLimit = DefaultRejectionLimit
	}
	cfg.Dimensions = append([]float64(nil), cfg.Dimensions...)
	return &Sampler{cfg: cfg, rng: rng}, nil
}

// Config returns a copy of the sampler's effective configuration.
func (s *Sampler) Config() Config {
	cfg := s.cfg
	cfg.Dimensions = append([]float64(nil), s.cfg.Dimensions...)
	return cfg
}

// Generate runs the sampler to completion and returns the accepted points.
// Each point is a slice of len(Dimensions) coordinates in [0, extent].
// ctx is checked once per outer iteration; cancellation returns ctx.Err()
// and discards the partial point set.
//
// All scratch state lives in a per-run value, so a finished or cancelled
// run leaves the sampler reusable.
func (s *Sampler) Generate(ctx context.Context) ([][]float64, error) {
	if s.state != stateIdle {
		return nil, ErrBusy
	}
	s.state = stateRunning
	defer func() { s.state = stateIdle }()

	r := newRun(s.cfg)

	// Seed with one unconditional point anywhere in the box.
	seed := make([]float64, r.dims())
	for axis, ext := range r.cfg.Dimensions {
		seed[axis] = s.rng.Float64() * ext
	}
	r.accept(seed)

	for len(r.active) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		ai := s.rng.Intn(len(r.active))
		parent := r.samples[r.active[ai]]

		found := false
		for try := 0; try < r.cfg.RejectionLimit; try++ {
			candidate := r.propose(s.rng, parent)
			if candidate == nil {
				continue
			}
			if r.nearbySampleWithin(candidate) {
				continue
			}
			r.accept(candidate)
			found = true
			break
		}

		if !found {
			// Retire the parent: swap with last, truncate. Order of the
			// active list is irrelevant.
			r.active[ai] = r.active[len(r.active)-1]
			r.active = r.active[:len(r.active)-1]
		}
	}

	return r.samples, nil
}

// propose draws one candidate in the annulus [radius, 2*radius) around
// parent. Returns nil when the candidate leaves the sampling box.
//
// The direction is built from per-axis normal deviates normalized to unit
// length, which is uniform on the hypersphere in every dimension.
func (r *run) propose(rng *rand.Rand, parent []float64) []float64 {
	var norm float64
	for norm == 0 {
		norm = 0
		for axis := range r.scratchDir {
			d := rng.NormFloat64()
			r.scratchDir[axis] = d
			norm += d * d
		}
		norm = math.Sqrt(norm)
	}

	dist := r.cfg.Radius * (1 + rng.Float64())

	for axis := range r.scratchCand {
		c := parent[axis] + r.scratchDir[axis]/norm*dist
		if c < 0 || c > r.cfg.Dimensions[axis] {
			return nil
		}
		r.scratchCand[axis] = c
	}
	return append([]float64(nil), r.scratchCand...)
}
