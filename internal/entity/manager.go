package entity

import (
	"sync"

	"voxelbox/internal/profiling"

	"github.com/google/uuid"
)

// Manager handles the lifecycle and updates of entities in the world.
type Manager struct {
	entities []Entity
	mu       sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		entities: make([]Entity, 0),
	}
}

// Add adds an entity to the manager.
func (m *Manager) Add(e Entity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entities = append(m.entities, e)
}

// Get returns the live entity with the given id.
func (m *Manager) Get(id uuid.UUID) (Entity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entities {
		if e.GetID() == id && !e.IsDead() {
			return e, true
		}
	}
	return nil, false
}

// Remove takes the entity with the given id out of the world at once and
// marks it dead. It reports whether the id was known.
func (m *Manager) Remove(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entities {
		if e.GetID() != id {
			continue
		}
		e.SetDead()
		last := len(m.entities) - 1
		copy(m.entities[i:], m.entities[i+1:])
		m.entities[last] = nil
		m.entities = m.entities[:last]
		return true
	}
	return false
}

// Update updates all entities, merges equal drops lying close together and
// removes dead ones.
func (m *Manager) Update(dt float64, src BlockSource) {
	defer profiling.Track("entity.Update")()
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entities {
		if !e.IsDead() {
			e.Update(dt, src)
		}
	}
	m.mergeItems()

	activeCount := 0
	for i := 0; i < len(m.entities); i++ {
		e := m.entities[i]
		if !e.IsDead() {
			m.entities[activeCount] = e
			activeCount++
		}
	}
	clear(m.entities[activeCount:])
	m.entities = m.entities[:activeCount]
}

func (m *Manager) mergeItems() {
	for i, a := range m.entities {
		ia, ok := a.(*ItemEntity)
		if !ok || ia.Dead {
			continue
		}
		for _, b := range m.entities[i+1:] {
			ib, ok := b.(*ItemEntity)
			if !ok || ib.Dead {
				continue
			}
			d := ia.Pos.Sub(ib.Pos)
			if abs32(d.X()) > MergeRange || abs32(d.Z()) > MergeRange || abs32(d.Y()) > ItemEntityHalfWidth {
				continue
			}
			if ia.combineItems(ib) && ia.Dead {
				break
			}
		}
	}
}

// All returns a safe copy of the entities slice.
func (m *Manager) All() []Entity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Entity, len(m.entities))
	copy(result, m.entities)
	return result
}

// Items returns the live dropped items.
func (m *Manager) Items() []*ItemEntity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*ItemEntity
	for _, e := range m.entities {
		if it, ok := e.(*ItemEntity); ok && !it.Dead {
			out = append(out, it)
		}
	}
	return out
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
