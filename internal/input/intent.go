package input

// Source names the adapter an Intent came from.
type Source int

const (
	SourceDesktop Source = iota
	SourceTouch
)

func (s Source) String() string {
	if s == SourceTouch {
		return "touch"
	}
	return "desktop"
}

// Intent is one tick of player input, independent of the device that
// produced it.
type Intent struct {
	// Look delta in pixels since the previous intent.
	LookDX, LookDY float64

	// Move vector in [-1, 1]; Forward is positive away from the camera.
	Forward, Strafe float32
	Jump            bool

	// Primary is held for mining. SecondaryPressed is true only on the tick
	// a placement was requested.
	Primary          bool
	SecondaryPressed bool

	// Scroll is the wheel delta; Hotbar selects a slot directly (1-9, 0 = none).
	Scroll int
	Hotbar int

	// Pointer is the window coordinate aimed at when Source is SourceTouch.
	// Desktop input aims through the screen center.
	PointerX, PointerY float32
	Source             Source
}

// Aimed reports whether the intent aims at a pointer position rather than
// straight along the view direction.
func (in Intent) Aimed() bool {
	return in.Source == SourceTouch
}

// ScrollStep takes at most one whole wheel notch out of acc and returns
// it with the remainder. Fractional trackpad deltas carry over.
func ScrollStep(acc float64) (int, float64) {
	switch {
	case acc >= 1:
		return 1, acc - 1
	case acc <= -1:
		return -1, acc + 1
	}
	return 0, acc
}

// Moving reports whether the move vector is non-zero.
func (in Intent) Moving() bool {
	return in.Forward != 0 || in.Strafe != 0
}
