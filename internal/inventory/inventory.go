package inventory

import (
	"voxelbox/internal/item"
)

const HotbarSize = 9

// Inventory is the player's hotbar.
type Inventory struct {
	Slots       [HotbarSize]item.Stack
	CurrentItem int // Index 0-8
}

func New() *Inventory {
	return &Inventory{}
}

// Selected returns the stack in the selected hotbar slot.
func (inv *Inventory) Selected() item.Stack {
	return inv.Slots[inv.CurrentItem]
}

// Add merges stack into matching slots first, then fills empty slots.
// It returns how many could not be stored.
func (inv *Inventory) Add(stack item.Stack) int {
	if stack.IsEmpty() {
		return 0
	}
	left := stack.Count

	for i := range inv.Slots {
		existing := &inv.Slots[i]
		if !existing.IsItemEqual(stack) {
			continue
		}
		space := existing.GetMaxStackSize() - existing.Count
		if space <= 0 {
			continue
		}
		toAdd := min(left, space)
		existing.Count += toAdd
		left -= toAdd
		if left == 0 {
			return 0
		}
	}

	for left > 0 {
		slot := inv.firstEmpty()
		if slot < 0 {
			return left
		}
		toAdd := min(left, stack.GetMaxStackSize())
		placed := stack
		placed.Count = toAdd
		inv.Slots[slot] = placed
		left -= toAdd
	}
	return 0
}

func (inv *Inventory) firstEmpty() int {
	for i := range inv.Slots {
		if inv.Slots[i].IsEmpty() {
			return i
		}
	}
	return -1
}

// Select sets the selected hotbar slot directly (0-8).
func (inv *Inventory) Select(index int) {
	if index >= 0 && index < HotbarSize {
		inv.CurrentItem = index
	}
}

// Scroll moves the selection one slot per call, wrapping around.
// Positive deltas (wheel up) move left.
func (inv *Inventory) Scroll(delta int) {
	if delta > 0 {
		delta = 1
	} else if delta < 0 {
		delta = -1
	}

	inv.CurrentItem -= delta
	for inv.CurrentItem < 0 {
		inv.CurrentItem += HotbarSize
	}
	for inv.CurrentItem >= HotbarSize {
		inv.CurrentItem -= HotbarSize
	}
}

// TakeSelected removes one unit from the selected slot.
func (inv *Inventory) TakeSelected() (item.Stack, bool) {
	s := &inv.Slots[inv.CurrentItem]
	if s.IsEmpty() {
		return item.Stack{}, false
	}
	one := *s
	one.Count = 1
	s.Count--
	if s.Count == 0 {
		*s = item.Stack{}
	}
	return one, true
}

// Count totals the units matching s across the hotbar.
func (inv *Inventory) Count(s item.Stack) int {
	n := 0
	for _, slot := range inv.Slots {
		if slot.IsItemEqual(s) {
			n += slot.Count
		}
	}
	return n
}
