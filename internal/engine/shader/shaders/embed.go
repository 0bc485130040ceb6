// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// CubeVertexShader transforms cube corners by mProjection * mView * mWorld.
//
//go:embed cube.vert
var CubeVertexShader string

// CubeFragmentShader outputs the interpolated vertex color.
//
//go:embed cube.frag
var CubeFragmentShader string
