package item

import (
	"fmt"

	"voxelbox/internal/world"
)

// Kind identifies a non-block item.
type Kind uint8

const (
	KindNone Kind = iota
	KindStick
	KindWoodenAxe
)

func (k Kind) String() string {
	switch k {
	case KindStick:
		return "stick"
	case KindWoodenAxe:
		return "wooden_axe"
	default:
		return "none"
	}
}

// StackKind tags what a Stack holds.
type StackKind uint8

const (
	StackEmpty StackKind = iota
	StackBlock
	StackItem
)

const MaxStackSize = 64

// Stack is a slot's content: nothing, a count of one block type,
// or a count of one item kind.
type Stack struct {
	Kind  StackKind
	Block world.BlockType
	Item  Kind
	Count int
}

// OfBlock returns a stack of count blocks of type bt.
func OfBlock(bt world.BlockType, count int) Stack {
	if bt == world.BlockTypeAir || count <= 0 {
		return Stack{}
	}
	return Stack{Kind: StackBlock, Block: bt, Count: count}
}

func OfItem(k Kind, count int) Stack {
	if k == KindNone || count <= 0 {
		return Stack{}
	}
	return Stack{Kind: StackItem, Item: k, Count: count}
}

func (s Stack) IsEmpty() bool {
	return s.Kind == StackEmpty || s.Count <= 0
}

// GetMaxStackSize returns the maximum stack size for this item
func (s Stack) GetMaxStackSize() int {
	if s.Kind == StackItem && s.Item == KindWoodenAxe {
		return 1
	}
	return MaxStackSize
}

// IsItemEqual checks if two stacks hold the same block type or item kind.
// Blocks never equal items.
func (s Stack) IsItemEqual(other Stack) bool {
	if s.IsEmpty() || other.IsEmpty() || s.Kind != other.Kind {
		return false
	}
	if s.Kind == StackBlock {
		return s.Block == other.Block
	}
	return s.Item == other.Item
}

func (s Stack) String() string {
	switch {
	case s.IsEmpty():
		return "empty"
	case s.Kind == StackBlock:
		return fmt.Sprintf("%dx%s", s.Count, s.Block)
	default:
		return fmt.Sprintf("%dx%s", s.Count, s.Item)
	}
}
