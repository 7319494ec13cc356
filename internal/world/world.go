package world

// World is a sparse voxel map. Absent coordinates are air.
// It is owned by a single simulation goroutine; readers on other goroutines
// must work on a Snapshot.
type World struct {
	blocks  map[Pos]BlockType
	version uint64

	// top is a high-water mark of stored y values; removals do not lower it.
	top    int
	hasTop bool
}

func NewEmpty() *World {
	return &World{blocks: make(map[Pos]BlockType)}
}

// NewFlat builds a size x size layer of bt at height y, spanning x,z in [0,size).
func NewFlat(size, y int, bt BlockType) *World {
	w := NewEmpty()
	w.Batch(func(e *Editor) {
		for x := 0; x < size; x++ {
			for z := 0; z < size; z++ {
				e.Set(x, y, z, bt)
			}
		}
	})
	return w
}

func (w *World) Get(x, y, z int) BlockType {
	return w.blocks[Pos{x, y, z}]
}

func (w *World) IsAir(x, y, z int) bool {
	return w.Get(x, y, z) == BlockTypeAir
}

// Set stores bt at (x,y,z). Setting air removes the entry.
func (w *World) Set(x, y, z int, bt BlockType) {
	if w.put(Pos{x, y, z}, bt) {
		w.version++
	}
}

func (w *World) Delete(x, y, z int) {
	w.Set(x, y, z, BlockTypeAir)
}

// Version increases every time the stored content changes.
func (w *World) Version() uint64 {
	return w.version
}

// Ceiling returns a y at or above every stored block. ok is false when
// nothing was ever stored.
func (w *World) Ceiling() (y int, ok bool) {
	return w.top, w.hasTop
}

// Len returns the number of non-air voxels.
func (w *World) Len() int {
	return len(w.blocks)
}

func (w *World) ForEach(fn func(p Pos, bt BlockType)) {
	for p, bt := range w.blocks {
		fn(p, bt)
	}
}

// Batch applies several edits with at most one version bump.
func (w *World) Batch(fn func(e *Editor)) {
	e := &Editor{w: w}
	fn(e)
	if e.changed {
		w.version++
	}
}

// Snapshot copies the current content for read-only use on another goroutine.
func (w *World) Snapshot() *Snapshot {
	blocks := make(map[Pos]BlockType, len(w.blocks))
	for p, bt := range w.blocks {
		blocks[p] = bt
	}
	return &Snapshot{blocks: blocks, version: w.version}
}

func (w *World) put(p Pos, bt BlockType) bool {
	old := w.blocks[p]
	if old == bt {
		return false
	}
	if bt == BlockTypeAir {
		delete(w.blocks, p)
	} else {
		w.blocks[p] = bt
		if !w.hasTop || p.Y > w.top {
			w.top, w.hasTop = p.Y, true
		}
	}
	return true
}

// Editor collects edits inside World.Batch.
type Editor struct {
	w       *World
	changed bool
}

func (e *Editor) Get(x, y, z int) BlockType {
	return e.w.Get(x, y, z)
}

func (e *Editor) Set(x, y, z int, bt BlockType) {
	if e.w.put(Pos{x, y, z}, bt) {
		e.changed = true
	}
}

// SetIfAir writes bt only when the cell is empty.
func (e *Editor) SetIfAir(x, y, z int, bt BlockType) bool {
	if !e.w.IsAir(x, y, z) {
		return false
	}
	e.Set(x, y, z, bt)
	return true
}

// Snapshot is an immutable copy of a World at a given version.
type Snapshot struct {
	blocks  map[Pos]BlockType
	version uint64
}

func (s *Snapshot) Get(x, y, z int) BlockType {
	return s.blocks[Pos{x, y, z}]
}

func (s *Snapshot) Version() uint64 {
	return s.version
}

func (s *Snapshot) Len() int {
	return len(s.blocks)
}

func (s *Snapshot) ForEach(fn func(p Pos, bt BlockType)) {
	for p, bt := range s.blocks {
		fn(p, bt)
	}
}
