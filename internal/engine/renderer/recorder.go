package renderer

import "github.com/go-gl/mathgl/mgl32"

// Op identifies a recorded Device call.
type Op int

// Device calls, one per method.
const (
	OpClear    Op = iota // Clear
	OpCreate             // CreateVertexBuffer
	OpUpload             // UploadVertices
	OpBind               // BindVertexBuffer
	OpSetWorld           // SetWorld
	OpDraw               // DrawIndexed
	OpDelete             // DeleteBuffer
	OpViewport           // Viewport
)

// Call is one recorded Device call. Only the fields relevant to Op are set.
type Call struct {
	Op     Op
	Color  [4]float32
	Depth  bool
	Buffer Buffer
	Data   []float32
	World  mgl32.Mat4
	Count  int32
	Width  int
	Height int
}

// Recorder is a Device that records calls instead of touching a GPU.
// Tests use it to check what a frame does without a GL context.
type Recorder struct {
	ops  []Call
	next Buffer
	live map[Buffer]bool
}

var _ Device = (*Recorder)(nil)

// Clear records the clear color and depth flag.
func (r *Recorder) Clear(color [4]float32, depth bool) {
	r.ops = append(r.ops, Call{Op: OpClear, Color: color, Depth: depth})
}

// CreateVertexBuffer hands out the next buffer id, starting at 1, and keeps a
// copy of data.
func (r *Recorder) CreateVertexBuffer(data []float32) Buffer {
	if r.live == nil {
		r.live = make(map[Buffer]bool)
	}
	r.next++
	r.live[r.next] = true
	r.ops = append(r.ops, Call{Op: OpCreate, Buffer: r.next, Data: append([]float32(nil), data...)})
	return r.next
}

// UploadVertices records a copy of data. It panics if buf is not live.
func (r *Recorder) UploadVertices(buf Buffer, data []float32) {
	r.mustBeLive(buf)
	r.ops = append(r.ops, Call{Op: OpUpload, Buffer: buf, Data: append([]float32(nil), data...)})
}

// BindVertexBuffer records the bind. It panics if buf is not live.
func (r *Recorder) BindVertexBuffer(buf Buffer) {
	r.mustBeLive(buf)
	r.ops = append(r.ops, Call{Op: OpBind, Buffer: buf})
}

// SetWorld records the world matrix.
func (r *Recorder) SetWorld(world mgl32.Mat4) {
	r.ops = append(r.ops, Call{Op: OpSetWorld, World: world})
}

// DrawIndexed records the index count.
func (r *Recorder) DrawIndexed(count int32) {
	r.ops = append(r.ops, Call{Op: OpDraw, Count: count})
}

// DeleteBuffer retires buf. Deleting a buffer that is not live panics.
func (r *Recorder) DeleteBuffer(buf Buffer) {
	r.mustBeLive(buf)
	delete(r.live, buf)
	r.ops = append(r.ops, Call{Op: OpDelete, Buffer: buf})
}

// Viewport records the new size.
func (r *Recorder) Viewport(width, height int) {
	r.ops = append(r.ops, Call{Op: OpViewport, Width: width, Height: height})
}

// Ops returns the calls recorded so far.
func (r *Recorder) Ops() []Call {
	return r.ops
}

// Count returns how many calls of the given kind were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.ops {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls but keeps live buffers.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

func (r *Recorder) mustBeLive(buf Buffer) {
	if !r.live[buf] {
		panic("recorder: stale buffer handle")
	}
}
