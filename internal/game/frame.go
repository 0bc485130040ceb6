package game

import (
	"time"

	"github.com/Faultbox/cubefield/internal/engine/camera"
	"github.com/Faultbox/cubefield/internal/engine/renderer"
	"github.com/Faultbox/cubefield/internal/engine/scene"
	"github.com/Faultbox/cubefield/internal/engine/transform"
)

// State is everything a frame is computed from. It is built once at startup
// and only read afterwards.
type State struct {
	Objects    []scene.Object
	Camera     camera.Matrices
	Background [4]float32

	// Rate is the spin speed in radians per second.
	Rate float64

	// ClearDepthEachFrame clears depth on every frame, not only the first.
	ClearDepthEachFrame bool
}

// ComputeFrame builds the clear and draw calls for one tick.
// All objects share one angle, so they spin in sync around their own centers.
func ComputeFrame(st *State, elapsed time.Duration, index uint64) renderer.Frame {
	angle := transform.Angle(elapsed, st.Rate)

	f := renderer.Frame{
		Index: index,
		Clear: renderer.ClearOp{
			Color: st.Background,
			Depth: index == 0 || st.ClearDepthEachFrame,
		},
		Draws: make([]renderer.DrawCall, len(st.Objects)),
	}

	for i, obj := range st.Objects {
		f.Draws[i] = renderer.DrawCall{
			Object:     i,
			World:      transform.World(obj.Translation, angle),
			IndexCount: renderer.FullCube,
		}
	}

	return f
}
