package game

import (
	"time"

	"voxelbox/internal/config"
)

// pausedFPS caps the loop while the game is paused.
const pausedFPS = 30

// spinMargin is left to a busy wait after sleeping.
const spinMargin = 200 * time.Microsecond

// FPSLimiter paces the game loop to window.fps_limit, or pausedFPS while
// paused. Deadlines advance by one budget per frame so short frames make up
// for long ones; a frame more than a whole budget late restarts the schedule
// and counts as a hitch.
type FPSLimiter struct {
	deadline time.Time
	hitches  int

	now   func() time.Time
	sleep func(time.Duration)
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{now: time.Now, sleep: time.Sleep}
}

// Budget is the frame time at the current limit, zero when uncapped.
func (f *FPSLimiter) Budget(paused bool) time.Duration {
	return frameBudget(config.GetFPSLimit(), paused)
}

// Hitches counts how often the schedule was restarted after a slow frame.
func (f *FPSLimiter) Hitches() int {
	return f.hitches
}

// Wait blocks until the current frame's deadline.
func (f *FPSLimiter) Wait(paused bool) {
	f.pace(f.Budget(paused))
}

func frameBudget(limit int, paused bool) time.Duration {
	if paused {
		limit = pausedFPS
	}
	if limit <= 0 {
		return 0
	}
	return time.Second / time.Duration(limit)
}

func (f *FPSLimiter) pace(budget time.Duration) {
	if budget <= 0 {
		f.deadline = time.Time{}
		return
	}

	now := f.now()
	if f.deadline.IsZero() {
		f.deadline = now.Add(budget)
	} else {
		f.deadline = f.deadline.Add(budget)
	}

	if now.Sub(f.deadline) > budget {
		f.hitches++
		f.deadline = now
		return
	}

	for {
		remaining := f.deadline.Sub(f.now())
		if remaining <= 0 {
			return
		}
		if remaining > spinMargin {
			f.sleep(remaining - spinMargin)
		}
	}
}
