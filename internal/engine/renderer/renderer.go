// Package renderer draws computed frames through a graphics Device.
package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/cubefield/internal/engine/mesh"
	"github.com/Faultbox/cubefield/internal/engine/scene"
	"github.com/Faultbox/cubefield/internal/logger"
)

// Buffer is a handle to a GPU vertex buffer. Zero is never a live buffer.
type Buffer uint32

// Device is the graphics context the renderer drives.
// All methods are called from the render thread only.
type Device interface {
	// Clear fills the color buffer, and the depth buffer when depth is set.
	Clear(color [4]float32, depth bool)

	// CreateVertexBuffer allocates a buffer and uploads data into it.
	CreateVertexBuffer(data []float32) Buffer

	// UploadVertices replaces the contents of an existing buffer.
	UploadVertices(buf Buffer, data []float32)

	// BindVertexBuffer makes buf the source of vertex positions.
	BindVertexBuffer(buf Buffer)

	// SetWorld publishes the per-draw world matrix to the shading stage.
	SetWorld(world mgl32.Mat4)

	// DrawIndexed draws count indices of the shared cube topology.
	DrawIndexed(count int32)

	// DeleteBuffer releases a buffer.
	DeleteBuffer(buf Buffer)

	// Viewport resizes the drawable area.
	Viewport(width, height int)
}

// ClearOp describes the clear issued at the start of a frame.
type ClearOp struct {
	Color [4]float32
	Depth bool
}

// DrawCall draws one scene object with its world matrix.
type DrawCall struct {
	Object     int
	World      mgl32.Mat4
	IndexCount int32
}

// Frame is everything needed to draw one tick.
type Frame struct {
	Index uint64
	Clear ClearOp
	Draws []DrawCall
}

// Options controls GPU resource handling.
type Options struct {
	// ReuploadEachFrame uploads every object's vertices on every frame
	// instead of once at construction.
	ReuploadEachFrame bool
}

// Renderer owns the per-object vertex buffers and replays frames onto a Device.
type Renderer struct {
	device   Device
	objects  []scene.Object
	buffers  []Buffer
	vertices [][]float32
	opts     Options
}

// New creates a renderer and uploads the geometry of every object.
func New(device Device, objects []scene.Object, opts Options) *Renderer {
	r := &Renderer{
		device:   device,
		objects:  objects,
		buffers:  make([]Buffer, len(objects)),
		vertices: make([][]float32, len(objects)),
		opts:     opts,
	}

	for i := range objects {
		r.vertices[i] = objects[i].Cube.Floats()
		r.buffers[i] = device.CreateVertexBuffer(r.vertices[i])
	}

	logger.Debug("renderer ready",
		zap.Int("objects", len(objects)),
		zap.Bool("reupload_each_frame", opts.ReuploadEachFrame),
	)
	return r
}

// Render clears the target and issues one indexed draw per draw call.
// A draw call for an object without a live buffer is a programming error and panics.
func (r *Renderer) Render(f Frame) {
	r.device.Clear(f.Clear.Color, f.Clear.Depth)

	for _, d := range f.Draws {
		if d.Object < 0 || d.Object >= len(r.buffers) {
			panic(fmt.Sprintf("renderer: draw call for object %d, scene has %d", d.Object, len(r.buffers)))
		}
		buf := r.buffers[d.Object]
		if buf == 0 {
			panic(fmt.Sprintf("renderer: object %d has no vertex buffer", d.Object))
		}

		if r.opts.ReuploadEachFrame {
			r.device.UploadVertices(buf, r.vertices[d.Object])
		}
		r.device.BindVertexBuffer(buf)
		r.device.SetWorld(d.World)
		r.device.DrawIndexed(d.IndexCount)
	}
}

// Resize forwards a drawable size change to the device.
func (r *Renderer) Resize(width, height int) {
	r.device.Viewport(width, height)
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ObjectCount returns the number of objects with GPU buffers.
func (r *Renderer) ObjectCount() int {
	return len(r.objects)
}

// Close releases the per-object buffers.
func (r *Renderer) Close() {
	for i, buf := range r.buffers {
		if buf != 0 {
			r.device.DeleteBuffer(buf)
			r.buffers[i] = 0
		}
	}
}

// FullCube is the index count that draws a whole cube.
const FullCube = int32(mesh.IndexCount)
