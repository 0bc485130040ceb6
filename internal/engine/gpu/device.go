// Package gpu implements renderer.Device on top of an OpenGL 4.1 core context.
package gpu

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/cubefield/internal/engine/camera"
	"github.com/Faultbox/cubefield/internal/engine/mesh"
	"github.com/Faultbox/cubefield/internal/engine/renderer"
	"github.com/Faultbox/cubefield/internal/engine/shader"
	"github.com/Faultbox/cubefield/internal/engine/shader/shaders"
	"github.com/Faultbox/cubefield/internal/logger"
)

// ErrContextUnavailable is returned when OpenGL cannot be loaded from the current context.
var ErrContextUnavailable = errors.New("OpenGL context unavailable")

// Config holds device setup parameters.
type Config struct {
	Width    int
	Height   int
	Matrices camera.Matrices
}

// Device draws cubes with a single shader program and shared index/color buffers.
// IMPORTANT: Must be created and used on the thread that owns the GL context.
type Device struct {
	log *zap.Logger

	program uint32

	// Attribute locations
	locPosition uint32
	locColor    uint32

	// Uniform locations
	locWorld      int32
	locView       int32
	locProjection int32

	vao      uint32
	indexBuf uint32
	colorBuf uint32

	width, height int
}

var _ renderer.Device = (*Device)(nil)

// New loads OpenGL, builds the cube program and uploads the shared topology.
func New(cfg Config) (*Device, error) {
	d := &Device{
		log:    logger.Named("gpu"),
		width:  cfg.Width,
		height: cfg.Height,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}

	d.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	// The VAO must be bound before the program is validated on core profiles.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	program, err := shader.CompileProgram(shaders.CubeVertexShader, shaders.CubeFragmentShader)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("cube shader: %w", err)
	}
	d.program = program

	if err := d.lookupLocations(); err != nil {
		d.Close()
		return nil, err
	}

	d.createSharedBuffers()

	gl.UseProgram(d.program)
	gl.UniformMatrix4fv(d.locView, 1, false, &cfg.Matrices.View[0])
	gl.UniformMatrix4fv(d.locProjection, 1, false, &cfg.Matrices.Projection[0])

	d.log.Debug("device ready",
		zap.Uint32("program", d.program),
		zap.Uint32("vao", d.vao),
	)
	return d, nil
}

func (d *Device) lookupLocations() error {
	var err error
	if d.locPosition, err = shader.AttribLocation(d.program, "vertPosition"); err != nil {
		return err
	}
	if d.locColor, err = shader.AttribLocation(d.program, "vertColor"); err != nil {
		return err
	}
	if d.locWorld, err = shader.UniformLocation(d.program, "mWorld"); err != nil {
		return err
	}
	if d.locView, err = shader.UniformLocation(d.program, "mView"); err != nil {
		return err
	}
	if d.locProjection, err = shader.UniformLocation(d.program, "mProjection"); err != nil {
		return err
	}
	return nil
}

// createSharedBuffers uploads the index list and per-corner colors once.
// Both stay bound to the VAO for the lifetime of the device.
func (d *Device) createSharedBuffers() {
	indices := mesh.Indices
	gl.GenBuffers(1, &d.indexBuf)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.indexBuf)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(&indices[0]), gl.STATIC_DRAW)

	colors := mesh.ColorFloats()
	gl.GenBuffers(1, &d.colorBuf)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.colorBuf)
	gl.BufferData(gl.ARRAY_BUFFER, len(colors)*4, gl.Ptr(colors), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(d.locColor, mesh.FloatsPerColor, gl.FLOAT, false, mesh.FloatsPerColor*4, 0)
	gl.EnableVertexAttribArray(d.locColor)

	gl.EnableVertexAttribArray(d.locPosition)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Clear fills the color buffer, and the depth buffer when depth is set.
func (d *Device) Clear(color [4]float32, depth bool) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)
}

// CreateVertexBuffer allocates a position buffer and uploads data into it.
func (d *Device) CreateVertexBuffer(data []float32) renderer.Buffer {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	return renderer.Buffer(vbo)
}

// UploadVertices replaces the contents of buf.
func (d *Device) UploadVertices(buf renderer.Buffer, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buf))
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
}

// BindVertexBuffer points vertPosition at buf.
func (d *Device) BindVertexBuffer(buf renderer.Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buf))
	gl.VertexAttribPointerWithOffset(d.locPosition, mesh.FloatsPerVertex, gl.FLOAT, false, mesh.FloatsPerVertex*4, 0)
}

// SetWorld uploads the mWorld uniform.
func (d *Device) SetWorld(world mgl32.Mat4) {
	gl.UniformMatrix4fv(d.locWorld, 1, false, &world[0])
}

// DrawIndexed draws count indices from the shared index buffer.
func (d *Device) DrawIndexed(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_SHORT, nil)
}

// DeleteBuffer releases a position buffer.
func (d *Device) DeleteBuffer(buf renderer.Buffer) {
	vbo := uint32(buf)
	gl.DeleteBuffers(1, &vbo)
}

// Viewport resizes the GL viewport.
func (d *Device) Viewport(width, height int) {
	d.width, d.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ReadBack reads the back buffer as bottom-up RGBA rows. Call it after
// drawing and before the buffers are swapped.
func (d *Device) ReadBack() (pixels []byte, width, height int) {
	width, height = d.width, d.height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}

	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// Close releases the program and shared buffers.
func (d *Device) Close() {
	d.log.Info("closing device")
	if d.indexBuf != 0 {
		gl.DeleteBuffers(1, &d.indexBuf)
		d.indexBuf = 0
	}
	if d.colorBuf != 0 {
		gl.DeleteBuffers(1, &d.colorBuf)
		d.colorBuf = 0
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
	if d.program != 0 {
		gl.DeleteProgram(d.program)
		d.program = 0
	}
}
