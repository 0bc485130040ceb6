// Package mesh generates the cube geometry shared by every scene object.
package mesh

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// VertexCount is the number of corners in a cube mesh.
	VertexCount = 8

	// IndexCount is the number of indices in the shared topology (12 triangles × 3).
	IndexCount = 36

	// FloatsPerVertex is the position stride in floats.
	FloatsPerVertex = 3

	// FloatsPerColor is the color stride in floats (RGBA).
	FloatsPerColor = 4
)

// ErrInvalidScale is returned for a scale that is not a finite positive number.
var ErrInvalidScale = errors.New("cube scale must be a finite positive number")

// Cube holds the 8 corners of a cube centered at the local origin.
//
// Corner order:
//
//	top    0 (-s, s,-s)  1 (-s, s, s)  2 ( s, s, s)  3 ( s, s,-s)
//	bottom 4 (-s,-s, s)  5 (-s,-s,-s)  6 ( s,-s, s)  7 ( s,-s,-s)
//
// Indices is wound against this order so every face is counter-clockwise
// when seen from outside the cube.
type Cube [VertexCount]mgl32.Vec3

// Indices is the triangle list for a Cube, shared by all objects.
var Indices = [IndexCount]uint16{
	// Top
	0, 1, 2,
	0, 2, 3,
	// Left
	4, 1, 5,
	5, 1, 0,
	// Right
	2, 6, 7,
	2, 7, 3,
	// Front
	6, 2, 4,
	1, 4, 2,
	// Back
	3, 7, 5,
	3, 5, 0,
	// Bottom
	4, 5, 6,
	6, 5, 7,
}

// Colors holds one RGBA color per corner.
var Colors = [VertexCount]mgl32.Vec4{
	{0.9, 0.9, 0.9, 1.0},
	{0.1, 0.1, 0.9, 1.0},
	{0.1, 0.9, 0.9, 1.0},
	{0.9, 0.9, 0.1, 1.0},
	{0.9, 0.1, 0.1, 1.0},
	{0.1, 0.1, 0.9, 1.0},
	{0.1, 0.9, 0.1, 1.0},
	{0.9, 0.1, 0.1, 1.0},
}

// GenerateCube returns a cube with half-extent scale along each axis.
func GenerateCube(scale float32) (Cube, error) {
	s := float64(scale)
	if !(s > 0) || gomath.IsInf(s, 0) {
		return Cube{}, fmt.Errorf("generating cube with scale %v: %w", scale, ErrInvalidScale)
	}

	return Cube{
		{-scale, scale, -scale},
		{-scale, scale, scale},
		{scale, scale, scale},
		{scale, scale, -scale},
		{-scale, -scale, scale},
		{-scale, -scale, -scale},
		{scale, -scale, scale},
		{scale, -scale, -scale},
	}, nil
}

// Floats flattens the corners into X, Y, Z triples for a vertex buffer.
func (c Cube) Floats() []float32 {
	out := make([]float32, 0, VertexCount*FloatsPerVertex)
	for _, v := range c {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the cube.
func (c Cube) Bounds() (lo, hi mgl32.Vec3) {
	lo, hi = c[0], c[0]
	for _, v := range c[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < lo[i] {
				lo[i] = v[i]
			}
			if v[i] > hi[i] {
				hi[i] = v[i]
			}
		}
	}
	return lo, hi
}

// ColorFloats flattens Colors into RGBA quadruples for a vertex buffer.
func ColorFloats() []float32 {
	out := make([]float32, 0, VertexCount*FloatsPerColor)
	for _, c := range Colors {
		out = append(out, c[0], c[1], c[2], c[3])
	}
	return out
}
