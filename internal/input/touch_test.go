package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTapPlaces(t *testing.T) {
	ta := NewTouchAdapter()
	ta.TouchStart(1, 100, 200)
	in := ta.Intent(0.05)
	assert.True(t, in.Primary)
	assert.False(t, in.SecondaryPressed)

	ta.TouchMove(1, 103, 202)
	ta.TouchEnd(1)

	in = ta.Intent(0.05)
	assert.True(t, in.SecondaryPressed)
	assert.False(t, in.Primary)
	assert.Equal(t, float32(103), in.PointerX)
	assert.Equal(t, float32(202), in.PointerY)
	assert.True(t, in.Aimed())

	// Tap is consumed.
	assert.False(t, ta.Intent(0.05).SecondaryPressed)
}

func TestLongHoldIsNotATap(t *testing.T) {
	ta := NewTouchAdapter()
	ta.TouchStart(1, 50, 50)
	for range 10 {
		assert.True(t, ta.Intent(0.05).Primary)
	}
	ta.TouchEnd(1)
	assert.False(t, ta.Intent(0.05).SecondaryPressed)
}

func TestDragTurnsCamera(t *testing.T) {
	ta := NewTouchAdapter()
	ta.TouchStart(7, 10, 10)
	ta.TouchMove(7, 30, 15)
	ta.TouchMove(7, 40, 5)

	in := ta.Intent(0.01)
	assert.Equal(t, 30.0, in.LookDX)
	assert.Equal(t, -5.0, in.LookDY)
	assert.Zero(t, ta.Intent(0.01).LookDX, "look delta consumed")

	ta.TouchEnd(7)
	assert.False(t, ta.Intent(0.01).SecondaryPressed, "a drag is not a tap")
}

func TestSecondTouchIgnored(t *testing.T) {
	ta := NewTouchAdapter()
	ta.TouchStart(1, 0, 0)
	ta.TouchStart(2, 500, 500)
	ta.TouchMove(2, 600, 600)
	assert.Zero(t, ta.Intent(0.01).LookDX)

	ta.TouchEnd(2)
	assert.True(t, ta.Intent(0.01).Primary, "look touch still down")
}

func TestJoystick(t *testing.T) {
	ta := NewTouchAdapter()
	ta.SetJoystick(0, -1)
	in := ta.Intent(0.01)
	assert.Equal(t, float32(1), in.Forward)
	assert.True(t, in.Moving())

	ta.SetJoystick(3, 4)
	in = ta.Intent(0.01)
	assert.InDelta(t, 0.6, in.Strafe, 1e-6)
	assert.InDelta(t, -0.8, in.Forward, 1e-6)

	ta.SetJump(true)
	assert.True(t, ta.Intent(0.01).Jump)
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "desktop", SourceDesktop.String())
	assert.Equal(t, "touch", SourceTouch.String())
	assert.False(t, Intent{}.Aimed())
}
