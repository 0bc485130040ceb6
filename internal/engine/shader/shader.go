// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrLocationNotFound is returned when an attribute or uniform is missing or inactive.
var ErrLocationNotFound = errors.New("location not found")

// BuildError reports a compile, link or validation failure with the driver log.
type BuildError struct {
	Stage string // "vertex", "fragment", "link" or "validate"
	Log   string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, e.Log)
}

// CompileProgram compiles vertex and fragment shaders, links them into a
// program and validates it. On failure it returns a *BuildError.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	// The program keeps the compiled code; the shader objects can go.
	gl.DetachShader(program, vertShader)
	gl.DetachShader(program, fragShader)

	if !programStatus(program, gl.LINK_STATUS) {
		log := programLog(program)
		gl.DeleteProgram(program)
		return 0, &BuildError{Stage: "link", Log: log}
	}

	gl.ValidateProgram(program)
	if !programStatus(program, gl.VALIDATE_STATUS) {
		log := programLog(program)
		gl.DeleteProgram(program)
		return 0, &BuildError{Stage: "validate", Log: log}
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, &BuildError{Stage: stage, Log: strings.TrimRight(log, "\x00\n")}
	}

	return shader, nil
}

func programStatus(program uint32, param uint32) bool {
	var status int32
	gl.GetProgramiv(program, param, &status)
	return status != gl.FALSE
}

func programLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}

// AttribLocation returns the location of a vertex attribute.
func AttribLocation(program uint32, name string) (uint32, error) {
	loc := gl.GetAttribLocation(program, gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, fmt.Errorf("attribute %q in program %d: %w", name, program, ErrLocationNotFound)
	}
	return uint32(loc), nil
}

// UniformLocation returns the location of a uniform.
func UniformLocation(program uint32, name string) (int32, error) {
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, fmt.Errorf("uniform %q in program %d: %w", name, program, ErrLocationNotFound)
	}
	return loc, nil
}
