// Package keyboard adapts glfw keyboard and mouse events to input.Intent.
package keyboard

import (
	"sync"

	"voxelbox/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical game action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionPause
	ActionHotbar1
	ActionHotbar2
	ActionHotbar3
	ActionHotbar4
	ActionHotbar5
	ActionHotbar6
	ActionHotbar7
	ActionHotbar8
	ActionHotbar9
	ActionToggleWireframe
	ActionToggleProfiling
	ActionMine
	ActionPlace
	ActionCount // Sentinel value for array sizing
)

// Manager tracks keyboard and mouse state and maps physical keys/buttons to
// logical actions. Callbacks run on the glfw thread; Intent is read by the
// simulation loop.
type Manager struct {
	mu sync.RWMutex

	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[glfw.Key][]Action

	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool

	// Press edges, cleared by Intent
	justPressed [ActionCount]bool

	// Cursor tracking for look deltas
	firstMouse     bool
	lastX, lastY   float64
	lookDX, lookDY float64
	scroll         float64
}

// New creates a Manager with default key bindings
func New() *Manager {
	m := &Manager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
		firstMouse:           true,
	}

	m.BindKey(glfw.KeyW, ActionMoveForward)
	m.BindKey(glfw.KeyS, ActionMoveBackward)
	m.BindKey(glfw.KeyA, ActionMoveLeft)
	m.BindKey(glfw.KeyD, ActionMoveRight)
	m.BindKey(glfw.KeyUp, ActionMoveForward)
	m.BindKey(glfw.KeyDown, ActionMoveBackward)
	m.BindKey(glfw.KeyLeft, ActionMoveLeft)
	m.BindKey(glfw.KeyRight, ActionMoveRight)
	m.BindKey(glfw.KeySpace, ActionJump)
	m.BindKey(glfw.KeyEscape, ActionPause)
	m.BindKey(glfw.Key1, ActionHotbar1)
	m.BindKey(glfw.Key2, ActionHotbar2)
	m.BindKey(glfw.Key3, ActionHotbar3)
	m.BindKey(glfw.Key4, ActionHotbar4)
	m.BindKey(glfw.Key5, ActionHotbar5)
	m.BindKey(glfw.Key6, ActionHotbar6)
	m.BindKey(glfw.Key7, ActionHotbar7)
	m.BindKey(glfw.Key8, ActionHotbar8)
	m.BindKey(glfw.Key9, ActionHotbar9)
	m.BindKey(glfw.KeyF, ActionToggleWireframe)
	m.BindKey(glfw.KeyV, ActionToggleProfiling)

	m.BindMouseButton(glfw.MouseButtonLeft, ActionMine)
	m.BindMouseButton(glfw.MouseButtonRight, ActionPlace)

	return m
}

// BindKey binds a physical key to a logical action
// Multiple keys can be bound to the same action (e.g., WASD and arrow keys)
func (m *Manager) BindKey(key glfw.Key, action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

func (m *Manager) BindMouseButton(button glfw.MouseButton, action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}
	m.mouseButtonToActions[button] = append(m.mouseButtonToActions[button], action)
}

func (m *Manager) apply(actions []Action, isPressed bool) {
	for _, act := range actions {
		if act < 0 || act >= ActionCount {
			continue
		}
		// Detect edges immediately when event arrives
		if isPressed && !m.currentState[act] {
			m.justPressed[act] = true
		}
		m.currentState[act] = isPressed
	}
}

// HandleKeyEvent processes a key event and updates internal state
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if actions, ok := m.keyToActions[key]; ok {
		m.apply(actions, action == glfw.Press || action == glfw.Repeat)
	}
}

func (m *Manager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if actions, ok := m.mouseButtonToActions[button]; ok {
		m.apply(actions, action == glfw.Press)
	}
}

// HandleCursor accumulates cursor motion since the last Intent.
func (m *Manager) HandleCursor(x, y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.firstMouse {
		m.lastX, m.lastY = x, y
		m.firstMouse = false
		return
	}
	m.lookDX += x - m.lastX
	m.lookDY += y - m.lastY
	m.lastX, m.lastY = x, y
}

func (m *Manager) HandleScroll(yoff float64) {
	m.mu.Lock()
	m.scroll += yoff
	m.mu.Unlock()
}

// Attach installs the glfw callbacks for this manager.
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleMouseButtonEvent(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		m.HandleCursor(xpos, ypos)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		m.HandleScroll(yoff)
	})
}

// IsActive returns true if the action is currently being held down
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// Intent builds this frame's input and resets edge flags and accumulators.
// Call it once per frame after polling events and after any JustPressed checks.
func (m *Manager) Intent() input.Intent {
	m.mu.Lock()
	defer m.mu.Unlock()

	in := input.Intent{
		LookDX:           m.lookDX,
		LookDY:           m.lookDY,
		Jump:             m.currentState[ActionJump],
		Primary:          m.currentState[ActionMine],
		SecondaryPressed: m.justPressed[ActionPlace],
		Source:           input.SourceDesktop,
	}
	if m.currentState[ActionMoveForward] {
		in.Forward++
	}
	if m.currentState[ActionMoveBackward] {
		in.Forward--
	}
	if m.currentState[ActionMoveRight] {
		in.Strafe++
	}
	if m.currentState[ActionMoveLeft] {
		in.Strafe--
	}
	in.Scroll, m.scroll = input.ScrollStep(m.scroll)
	for i := range 9 {
		if m.justPressed[ActionHotbar1+Action(i)] {
			in.Hotbar = i + 1
		}
	}

	m.lookDX, m.lookDY = 0, 0
	m.justPressed = [ActionCount]bool{}
	return in
}
