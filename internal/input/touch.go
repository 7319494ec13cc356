package input

import (
	"math"
	"sync"
)

const (
	DefaultTapMaxDuration = 0.15
	DefaultDragThreshold  = 8.0
)

// TouchAdapter turns a virtual joystick and one look/aim touch into Intents.
// Holding the look touch mines, a short tap places and dragging turns the
// camera. Touch callbacks may arrive on any goroutine.
type TouchAdapter struct {
	// A touch released sooner than TapMaxDuration that moved no further than
	// DragThreshold pixels is a tap.
	TapMaxDuration float64
	DragThreshold  float64

	mu sync.Mutex

	joyX, joyY float32
	jump       bool

	looking        bool
	lookID         int
	startX, startY float32
	lastX, lastY   float32
	held           float64
	maxDrag        float64

	lookDX, lookDY float64

	tapPending bool
	tapX, tapY float32
}

func NewTouchAdapter() *TouchAdapter {
	return &TouchAdapter{
		TapMaxDuration: DefaultTapMaxDuration,
		DragThreshold:  DefaultDragThreshold,
	}
}

// SetJoystick sets the joystick deflection; screen up is negative y.
// Vectors longer than 1 are scaled back onto the unit circle.
func (t *TouchAdapter) SetJoystick(x, y float32) {
	if l := float32(math.Hypot(float64(x), float64(y))); l > 1 {
		x /= l
		y /= l
	}
	t.mu.Lock()
	t.joyX, t.joyY = x, y
	t.mu.Unlock()
}

func (t *TouchAdapter) SetJump(pressed bool) {
	t.mu.Lock()
	t.jump = pressed
	t.mu.Unlock()
}

// TouchStart begins tracking id as the look touch unless one is active.
func (t *TouchAdapter) TouchStart(id int, x, y float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.looking {
		return
	}
	t.looking = true
	t.lookID = id
	t.startX, t.startY = x, y
	t.lastX, t.lastY = x, y
	t.held = 0
	t.maxDrag = 0
}

func (t *TouchAdapter) TouchMove(id int, x, y float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.looking || id != t.lookID {
		return
	}
	t.lookDX += float64(x - t.lastX)
	t.lookDY += float64(y - t.lastY)
	t.lastX, t.lastY = x, y
	if d := math.Hypot(float64(x-t.startX), float64(y-t.startY)); d > t.maxDrag {
		t.maxDrag = d
	}
}

func (t *TouchAdapter) TouchEnd(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.looking || id != t.lookID {
		return
	}
	t.looking = false
	if t.held < t.TapMaxDuration && t.maxDrag <= t.DragThreshold {
		t.tapPending = true
		t.tapX, t.tapY = t.lastX, t.lastY
	}
}

// Intent advances the hold timer by dt and returns the input for this tick.
// Accumulated look motion and a pending tap are consumed.
func (t *TouchAdapter) Intent(dt float64) Intent {
	t.mu.Lock()
	defer t.mu.Unlock()

	in := Intent{
		LookDX:   t.lookDX,
		LookDY:   t.lookDY,
		Forward:  -t.joyY,
		Strafe:   t.joyX,
		Jump:     t.jump,
		Primary:  t.looking,
		PointerX: t.lastX,
		PointerY: t.lastY,
		Source:   SourceTouch,
	}
	t.lookDX, t.lookDY = 0, 0

	if t.looking {
		t.held += dt
	}
	if t.tapPending {
		in.SecondaryPressed = true
		in.PointerX, in.PointerY = t.tapX, t.tapY
		t.tapPending = false
	}
	return in
}
