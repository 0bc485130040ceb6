// Package transform computes per-object world matrices from the animation clock.
package transform

import (
	gomath "math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/cubefield/internal/engine/camera"
)

// AnimationRate is the default spin speed in radians per second (23π/60).
const AnimationRate = 23 * gomath.Pi / 60

// SpinAxis is the normalized (1,1,1) axis every object rotates about.
var SpinAxis = mgl32.Vec3{1, 1, 1}.Normalize()

// Angle returns the shared animation angle after elapsed time at the given rate.
// The result grows without bound; World reduces it before use.
func Angle(elapsed time.Duration, rate float64) float64 {
	return elapsed.Seconds() * rate
}

// Rotation returns the spin about SpinAxis for angle radians.
func Rotation(angle float64) mgl32.Mat4 {
	wrapped := gomath.Mod(angle, 2*gomath.Pi)
	return mgl32.HomogRotate3D(float32(wrapped), SpinAxis)
}

// World returns Translation * Rotation: the object spins about its own
// center, then moves to its place in the scene.
func World(translation mgl32.Vec3, angle float64) mgl32.Mat4 {
	t := mgl32.Translate3D(translation.X(), translation.Y(), translation.Z())
	return t.Mul4(Rotation(angle))
}

// MVP mirrors the vertex stage: Projection * View * World.
func MVP(m camera.Matrices, world mgl32.Mat4) mgl32.Mat4 {
	return m.Projection.Mul4(m.View).Mul4(world)
}
