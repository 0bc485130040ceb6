// Package scene composes the static list of cube objects rendered each frame.
package scene

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/cubefield/internal/engine/mesh"
)

var (
	// ErrInvalidCount is returned for a negative object count.
	ErrInvalidCount = errors.New("object count must not be negative")

	// ErrInvalidRange is returned for an inverted or non-finite range, or one
	// whose width does not fit in a float32.
	ErrInvalidRange = errors.New("range must be finite with min <= max")
)

// Range is a closed interval used for uniform sampling.
type Range struct {
	Min float32
	Max float32
}

// validate checks that the range is finite and ordered, and that Max-Min
// stays finite in float32 so sample never computes 0*Inf.
func (r Range) validate(name string) error {
	lo, hi := float64(r.Min), float64(r.Max)
	if gomath.IsNaN(lo) || gomath.IsNaN(hi) || gomath.IsInf(lo, 0) || gomath.IsInf(hi, 0) || lo > hi {
		return fmt.Errorf("%s [%v, %v]: %w", name, r.Min, r.Max, ErrInvalidRange)
	}
	if hi-lo > gomath.MaxFloat32 {
		return fmt.Errorf("%s [%v, %v] is too wide: %w", name, r.Min, r.Max, ErrInvalidRange)
	}
	return nil
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float32) bool {
	return v >= r.Min && v <= r.Max
}

// sample draws a value uniformly from the range.
func (r Range) sample(rng *rand.Rand) float32 {
	if r.Min == r.Max {
		return r.Min
	}
	v := r.Min + rng.Float32()*(r.Max-r.Min)
	// Float rounding can land exactly on Max+ulp for wide ranges.
	if v > r.Max {
		v = r.Max
	}
	return v
}

// Options controls scene composition.
type Options struct {
	Count int
	Scale Range
	X     Range
	Y     Range
	Z     Range
}

// DefaultOptions returns 32 cubes spread over a 20×20 plane at Z=0.
func DefaultOptions() Options {
	return Options{
		Count: 32,
		Scale: Range{Min: 0.2, Max: 1.0},
		X:     Range{Min: -10, Max: 10},
		Y:     Range{Min: -10, Max: 10},
		Z:     Range{Min: 0, Max: 0},
	}
}

// Validate checks the options before any geometry is generated.
func (o Options) Validate() error {
	if o.Count < 0 {
		return fmt.Errorf("count %d: %w", o.Count, ErrInvalidCount)
	}
	if err := o.Scale.validate("scale"); err != nil {
		return err
	}
	if !(o.Scale.Min > 0) {
		return fmt.Errorf("scale min %v: %w", o.Scale.Min, mesh.ErrInvalidScale)
	}
	for _, axis := range []struct {
		name string
		r    Range
	}{{"x", o.X}, {"y", o.Y}, {"z", o.Z}} {
		if err := axis.r.validate(axis.name); err != nil {
			return err
		}
	}
	return nil
}

// Object is one cube placed in the scene. It is immutable after Compose.
type Object struct {
	Cube        mesh.Cube
	Scale       float32
	Translation mgl32.Vec3
}

// Compose generates opts.Count objects with random size and placement.
// The returned order is insertion order; it only affects overdraw.
func Compose(rng *rand.Rand, opts Options) ([]Object, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	objects := make([]Object, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		scale := opts.Scale.sample(rng)
		cube, err := mesh.GenerateCube(scale)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}

		objects = append(objects, Object{
			Cube:  cube,
			Scale: scale,
			Translation: mgl32.Vec3{
				opts.X.sample(rng),
				opts.Y.sample(rng),
				opts.Z.sample(rng),
			},
		})
	}

	return objects, nil
}

// NewRand returns the randomness source for Compose.
// A zero seed gives a non-reproducible generator.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
