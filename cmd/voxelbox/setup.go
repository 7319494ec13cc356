package main

import (
	"fmt"

	"voxelbox/internal/config"
	"voxelbox/internal/input"
	"voxelbox/internal/input/keyboard"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupWindow(wc config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(wc.Width, wc.Height, wc.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfw window: %w", err)
	}
	window.MakeContextCurrent()

	// Without vsync the FPS limiter paces frames
	if wc.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}

func setupWindowHandlers(window *glfw.Window, loop *GameLoop) {
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		loop.renderer.SetViewport(width, height)
	})
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		// Pointer rays are cast in window coordinates
		p := loop.session.Player
		p.ViewportWidth, p.ViewportHeight = width, height
	})
	window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused {
			loop.setPaused(true)
		}
	})
}

// touchEmulation drives an input.TouchAdapter from the mouse so the touch
// scheme can be played on a desktop: the left button is the finger and
// the movement keys are the joystick.
type touchEmulation struct {
	adapter *input.TouchAdapter
	kb      *keyboard.Manager
	down    bool
}

func attachTouchEmulation(window *glfw.Window, kb *keyboard.Manager) *touchEmulation {
	t := &touchEmulation{adapter: input.NewTouchAdapter(), kb: kb}
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			x, y := w.GetCursorPos()
			t.adapter.TouchStart(0, float32(x), float32(y))
			t.down = true
		case glfw.Release:
			t.adapter.TouchEnd(0)
			t.down = false
		}
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if t.down {
			t.adapter.TouchMove(0, float32(x), float32(y))
		}
	})
	return t
}

// Intent merges the touch input with hotbar and scroll from the keyboard.
func (t *touchEmulation) Intent(dt float64) input.Intent {
	var jx, jy float32
	if t.kb.IsActive(keyboard.ActionMoveForward) {
		jy--
	}
	if t.kb.IsActive(keyboard.ActionMoveBackward) {
		jy++
	}
	if t.kb.IsActive(keyboard.ActionMoveRight) {
		jx++
	}
	if t.kb.IsActive(keyboard.ActionMoveLeft) {
		jx--
	}
	t.adapter.SetJoystick(jx, jy)
	t.adapter.SetJump(t.kb.IsActive(keyboard.ActionJump))

	keys := t.kb.Intent()
	in := t.adapter.Intent(dt)
	in.Hotbar = keys.Hotbar
	in.Scroll = keys.Scroll
	return in
}
