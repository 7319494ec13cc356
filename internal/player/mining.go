package player

import (
	"math"

	"voxelbox/internal/physics"
	"voxelbox/internal/registry"
	"voxelbox/internal/world"
)

// progressEpsilon absorbs float drift when summing many small frame deltas.
const progressEpsilon = 1e-9

// Miner is the hold-to-mine state machine.
//
// A press first waits HoldDelay seconds before it registers. Until then,
// pointer motion beyond DragThreshold pixels turns the press into a camera
// drag and mining stays off until release. Once registered, time accumulates
// against the target's break time; a different target restarts the timer.
type Miner struct {
	HoldDelay     float64
	DragThreshold float64

	active  bool
	target  world.Pos
	block   world.BlockType
	elapsed float64

	// Per press, reset on release.
	pending    float64
	drag       float64
	registered bool
	dragging   bool
}

// Break is a completed mining action.
type Break struct {
	Pos   world.Pos
	Block world.BlockType
}

func NewMiner(holdDelay, dragThreshold float64) *Miner {
	return &Miner{HoldDelay: holdDelay, DragThreshold: dragThreshold}
}

// Active reports whether a block is being mined.
func (m *Miner) Active() bool {
	return m.active
}

// Progress is min(elapsed/breakTime, 1) for the current target, 0 when idle.
func (m *Miner) Progress() float64 {
	if !m.active {
		return 0
	}
	bt := registry.BreakTime(m.block)
	if bt <= 0 {
		return 0
	}
	return math.Min(m.elapsed/bt, 1)
}

// Target returns the block being mined.
func (m *Miner) Target() (world.Pos, bool) {
	return m.target, m.active
}

// Release ends the press and drops any mining session.
func (m *Miner) Release() {
	m.stop()
	m.pending = 0
	m.drag = 0
	m.registered = false
	m.dragging = false
}

func (m *Miner) stop() {
	m.active = false
	m.elapsed = 0
}

// Update advances the machine by dt seconds of wall time. held is the
// primary input state, hit the current raycast and dragPixels the pointer
// motion since the previous tick. It returns the block to remove when
// mining completes.
func (m *Miner) Update(dt float64, held bool, hit physics.RaycastResult, dragPixels float64) (Break, bool) {
	if !held {
		m.Release()
		return Break{}, false
	}
	if m.dragging {
		return Break{}, false
	}

	if !m.registered {
		m.drag += dragPixels
		if m.drag > m.DragThreshold {
			m.dragging = true
			m.stop()
			return Break{}, false
		}
	}

	if !hit.Hit || registry.BreakTime(hit.Block) <= 0 {
		m.stop()
		return Break{}, false
	}
	if !m.active || hit.Position != m.target || hit.Block != m.block {
		m.active = true
		m.target = hit.Position
		m.block = hit.Block
		m.elapsed = 0
	}

	if !m.registered {
		m.pending += dt
		if m.pending < m.HoldDelay {
			return Break{}, false
		}
		m.registered = true
		// Only the time past the delay counts toward the break.
		dt = m.pending - m.HoldDelay
	}

	m.elapsed += dt
	if m.elapsed+progressEpsilon < registry.BreakTime(m.block) {
		return Break{}, false
	}

	done := Break{Pos: m.target, Block: m.block}
	m.stop()
	return done, true
}
