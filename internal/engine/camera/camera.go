// Package camera provides the fixed perspective camera used to view the scene.
package camera

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidAspect is returned for a non-positive viewport aspect ratio.
var ErrInvalidAspect = errors.New("aspect ratio must be positive")

// ErrInvalidClip is returned for clip planes or field of view that cannot form a frustum.
var ErrInvalidClip = errors.New("invalid projection parameters")

// Fixed is a camera with a constant position and lens.
// There are no controls; View and Projection never change after startup.
type Fixed struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	FovY float32 // Vertical field of view (radians)
	Near float32
	Far  float32
}

// Matrices holds the camera state uploaded to the shading stage once.
type Matrices struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// Default returns a camera 16 units behind the origin looking at it with a 90° lens.
func Default() Fixed {
	return Fixed{
		Eye:    mgl32.Vec3{0, 0, -16},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   mgl32.DegToRad(90),
		Near:   0.1,
		Far:    1000.0,
	}
}

// Validate checks that the camera can produce a usable frustum.
func (c Fixed) Validate() error {
	if !(c.FovY > 0) || c.FovY >= mgl32.DegToRad(180) {
		return fmt.Errorf("fov %v rad: %w", c.FovY, ErrInvalidClip)
	}
	if !(c.Near > 0) || !(c.Far > c.Near) {
		return fmt.Errorf("near %v far %v: %w", c.Near, c.Far, ErrInvalidClip)
	}
	if c.Eye.ApproxEqual(c.Target) {
		return fmt.Errorf("eye equals target: %w", ErrInvalidClip)
	}
	if c.Target.Sub(c.Eye).Cross(c.Up).Len() == 0 {
		return fmt.Errorf("up is parallel to view direction: %w", ErrInvalidClip)
	}
	return nil
}

// View returns the look-at matrix from Eye towards Target.
func (c Fixed) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the perspective matrix for the given width/height ratio.
func (c Fixed) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// Matrices computes View and Projection for a viewport of the given size.
func (c Fixed) Matrices(width, height int) (Matrices, error) {
	if width <= 0 || height <= 0 {
		return Matrices{}, fmt.Errorf("viewport %dx%d: %w", width, height, ErrInvalidAspect)
	}
	if err := c.Validate(); err != nil {
		return Matrices{}, err
	}

	return Matrices{
		View:       c.View(),
		Projection: c.Projection(float32(width) / float32(height)),
	}, nil
}
