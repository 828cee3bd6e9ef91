package ecs

import (
	"time"

	"github.com/kamstrup/intmap"
)

// World owns the entities and runs the systems.
//
// Structural changes are deferred: CreateEntity and DestroyEntity only queue
// work, and Update applies the queued additions, then the queued removals,
// before any system runs.
type World struct {
	nextID   ID
	entities []*Entity                 // committed, insertion order
	index    *intmap.Map[ID, int]      // id -> position in entities
	toAdd    []*Entity                 // created, not yet committed
	toRemove []ID                      // destroy requests, deduplicated
	removing *intmap.Map[ID, struct{}] // membership of toRemove

	systems []System
	stats   []*systemStatsInternal
	elapsed float64
}

// Option configures a World.
type Option func(*World)

// WithCapacity preallocates room for n entities.
func WithCapacity(n int) Option {
	return func(w *World) {
		w.entities = make([]*Entity, 0, n)
		w.index = intmap.New[ID, int](n)
	}
}

// NewWorld returns an empty world.
func NewWorld(opts ...Option) *World {
	w := &World{
		index:    intmap.New[ID, int](64),
		removing: intmap.New[ID, struct{}](16),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateEntity allocates the next id. Components may be added right away,
// but queries see the entity only after the next Update commits it.
func (w *World) CreateEntity() *Entity {
	e := &Entity{id: w.nextID, active: true}
	w.nextID++
	w.toAdd = append(w.toAdd, e)
	return e
}

// DestroyEntity queues the entity for removal at the start of the next Update.
// Repeated requests for the same id are collapsed.
func (w *World) DestroyEntity(id ID) {
	if w.removing.Has(id) {
		return
	}
	w.removing.Put(id, struct{}{})
	w.toRemove = append(w.toRemove, id)
}

// PendingRemoval reports whether id has been queued for removal.
func (w *World) PendingRemoval(id ID) bool {
	return w.removing.Has(id)
}

// Entity resolves a committed entity by id.
func (w *World) Entity(id ID) (*Entity, bool) {
	i, ok := w.index.Get(id)
	if !ok {
		return nil, false
	}
	return w.entities[i], true
}

// Len returns the number of committed entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Elapsed returns the simulated seconds accumulated by Update.
func (w *World) Elapsed() float64 {
	return w.elapsed
}

// EntitiesWith returns the committed, active entities holding every kind,
// in insertion order. With no kinds it returns every active entity.
func (w *World) EntitiesWith(kinds ...Kind) []*Entity {
	return w.Query(MaskOf(kinds...))
}

// Query is EntitiesWith for a prebuilt mask.
func (w *World) Query(m Mask) []*Entity {
	var out []*Entity
	for _, e := range w.entities {
		if e.active && e.mask.Contains(m) {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first committed, active entity holding every kind.
func (w *World) First(kinds ...Kind) (*Entity, bool) {
	m := MaskOf(kinds...)
	for _, e := range w.entities {
		if e.active && e.mask.Contains(m) {
			return e, true
		}
	}
	return nil, false
}

// Update commits pending changes, then runs every system in registration order.
func (w *World) Update(dt float64) {
	w.flushAdds()
	w.flushRemovals()

	for i, s := range w.systems {
		start := time.Now()
		s.Update(w, dt)
		w.stats[i].record(time.Since(start))
	}
	w.elapsed += dt
}

func (w *World) flushAdds() {
	for _, e := range w.toAdd {
		w.index.Put(e.id, len(w.entities))
		w.entities = append(w.entities, e)
	}
	w.toAdd = w.toAdd[:0]
}

func (w *World) flushRemovals() {
	if len(w.toRemove) == 0 {
		return
	}

	kept := w.entities[:0]
	for _, e := range w.entities {
		if w.removing.Has(e.id) {
			w.index.Del(e.id)
			continue
		}
		w.index.Put(e.id, len(kept))
		kept = append(kept, e)
	}
	for i := len(kept); i < len(w.entities); i++ {
		w.entities[i] = nil
	}
	w.entities = kept

	// Requests for ids that were never committed are dropped with the batch.
	w.toRemove = w.toRemove[:0]
	w.removing.Clear()
}
