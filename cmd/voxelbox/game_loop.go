package main

import (
	"log"
	"time"

	"voxelbox/internal/game"
	"voxelbox/internal/graphics"
	"voxelbox/internal/input"
	"voxelbox/internal/input/keyboard"
	"voxelbox/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// slowFrame is the frame time above which the top sections are logged when
// the frame rate is uncapped. A capped loop logs frames over twice its budget.
const slowFrame = 16 * time.Millisecond

// GameLoop manages the main game loop state
type GameLoop struct {
	window   *glfw.Window
	renderer *graphics.Renderer
	session  *game.Session
	keys     *keyboard.Manager
	touch    *touchEmulation

	paused     bool
	fpsLimiter *game.FPSLimiter

	// Timing
	frames           int
	fps              int
	lastFPSCheckTime time.Time
	lastTime         time.Time
}

func newGameLoop(window *glfw.Window, r *graphics.Renderer, s *game.Session, kb *keyboard.Manager) *GameLoop {
	return &GameLoop{
		window:           window,
		renderer:         r,
		session:          s,
		keys:             kb,
		fpsLimiter:       game.NewFPSLimiter(),
		lastFPSCheckTime: time.Now(),
		lastTime:         time.Now(),
	}
}

func (gl *GameLoop) Run() {
	for !gl.window.ShouldClose() {
		gl.tick()
	}
}

func (gl *GameLoop) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	gl.handleToggles()
	in := gl.intent(dt)
	if !gl.paused {
		gl.session.Update(dt, in)
	}

	gl.renderer.SetGeometry(gl.session.Mesh())
	gl.renderer.Render(gl.frame())

	func() { defer profiling.Track("glfw.SwapBuffers")(); gl.window.SwapBuffers() }()

	gl.frames++
	if time.Since(gl.lastFPSCheckTime) >= time.Second {
		gl.fps = gl.frames
		gl.frames = 0
		gl.lastFPSCheckTime = time.Now()
	}

	threshold := slowFrame
	if b := gl.fpsLimiter.Budget(gl.paused); b > 0 {
		threshold = 2 * b
	}
	if d := time.Since(now); d > threshold {
		log.Printf("slow frame: %v, top sections: %s", d, profiling.TopN(5))
	}

	gl.fpsLimiter.Wait(gl.paused)
}

// handleToggles reads edge-triggered keys before Intent clears them.
func (gl *GameLoop) handleToggles() {
	if gl.keys.JustPressed(keyboard.ActionPause) {
		gl.setPaused(!gl.paused)
	}
	if gl.keys.JustPressed(keyboard.ActionToggleWireframe) {
		gl.renderer.SetWireframe(!gl.renderer.Wireframe())
	}
	if gl.keys.JustPressed(keyboard.ActionToggleProfiling) {
		log.Printf("fps=%d hitches=%d world version=%d gpu mesh=%d pending=%v entities=%d top sections: %s",
			gl.fps, gl.fpsLimiter.Hitches(), gl.session.World.Version(), gl.renderer.MeshVersion(),
			gl.session.MeshPending(), gl.session.Entities.Len(), profiling.TopN(8))
	}
}

func (gl *GameLoop) intent(dt float64) input.Intent {
	if gl.touch != nil {
		return gl.touch.Intent(dt)
	}
	return gl.keys.Intent()
}

func (gl *GameLoop) frame() graphics.Frame {
	p := gl.session.Player
	f := graphics.Frame{
		View: p.ViewMatrix(),
		Proj: p.ProjectionMatrix(),
	}
	if p.HasHoveredBlock() {
		pos := p.Hover.Position
		f.Hover = &pos
		if target, ok := p.Miner.Target(); ok && target == pos {
			f.Progress = float32(p.Miner.Progress())
		}
	}
	return f
}

func (gl *GameLoop) setPaused(paused bool) {
	gl.paused = paused
	switch {
	case paused || gl.touch != nil:
		gl.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	default:
		gl.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}
	if paused {
		gl.session.Player.Miner.Release()
	}
}
