package window

import "github.com/veandco/go-sdl2/sdl"

// Events summarizes the SDL events drained by one Poll.
type Events struct {
	Quit    bool
	Resized bool
	Width   int // drawable size after the last resize
	Height  int
}

// Poll drains pending SDL events. Closing the window or pressing Escape
// requests a quit; there is no other input handling.
func (w *Window) Poll() Events {
	var ev Events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			ev.Quit = true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_CLOSE:
				ev.Quit = true
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				ev.Resized = true
				ev.Width, ev.Height = w.DrawableSize()
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				ev.Quit = true
			}
		}
	}

	return ev
}
