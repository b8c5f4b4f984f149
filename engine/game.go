package engine

import (
	"github.com/bloeys/learngl/input"
	"github.com/bloeys/learngl/logging"
	"github.com/bloeys/learngl/renderer"
	"github.com/bloeys/learngl/timing"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

// minimizedFrameDelayMs is how long the loop sleeps per frame while there is nothing to draw to
const minimizedFrameDelayMs = 50

var (
	isRunning = false

	sleep = sdl.Delay
)

type Game interface {
	Init()

	Update()
	Render()
	FrameEnd()

	DeInit()
}

// Run calls g.Init, then runs the frame loop until Quit is called or the window is closed,
// then calls g.DeInit and destroys the window
func Run(g Game, w *Window, rend renderer.Render) {

	isRunning = true

	g.Init()

	for isRunning {

		timing.FrameStarted()

		w.handleInputs()
		if input.IsQuitClicked() {
			Quit()
		}

		width, height := w.SDLWin.GLGetDrawableSize()
		if skipMinimizedFrame(width, height) {
			timing.FrameEnded()
			continue
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)

		g.Update()
		g.Render()

		// Game first so it can still read this frame's renderer stats
		g.FrameEnd()
		rend.FrameEnd()

		w.SDLWin.GLSwap()

		timing.FrameEnded()
	}

	g.DeInit()

	if err := w.Destroy(); err != nil {
		logging.ErrLog.Println("Failed to destroy window. Err: " + err.Error())
	}
}

// skipMinimizedFrame returns true and sleeps a bit if the drawable has no area (e.g. the window is minimized).
// Events are still polled every frame, so the window stays responsive while waiting
func skipMinimizedFrame(drawableWidth, drawableHeight int32) bool {

	if drawableWidth > 0 && drawableHeight > 0 {
		return false
	}

	sleep(minimizedFrameDelayMs)
	return true
}

func Quit() {
	isRunning = false
}
