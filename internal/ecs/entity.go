// Package ecs is a small entity/component store with deferred structural
// changes and an ordered list of systems.
//
// Components form a closed set: every kind has a fixed slot on the entity and
// a bit in its Mask, so a query is a mask test over the committed entities.
package ecs

import "strings"

// ID identifies an entity. IDs grow monotonically within a World and are never reused.
type ID uint64

// Kind enumerates the component kinds.
type Kind uint8

const (
	KindPosition Kind = iota
	KindVelocity
	KindGrid
	KindPlayer
	KindAI
	KindBomb
	KindExplosion
	KindParticle

	kindCount
)

var kindNames = [kindCount]string{
	"Position", "Velocity", "Grid", "Player", "AI", "Bomb", "Explosion", "Particle",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}

// Mask is a set of component kinds.
type Mask uint32

// MaskOf builds a mask from kinds.
func MaskOf(kinds ...Kind) Mask {
	var m Mask
	for _, k := range kinds {
		m |= 1 << k
	}
	return m
}

// Contains reports whether every kind of other is in m.
func (m Mask) Contains(other Mask) bool {
	return m&other == other
}

func (m Mask) String() string {
	var names []string
	for k := Kind(0); k < kindCount; k++ {
		if m&(1<<k) != 0 {
			names = append(names, k.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Component is implemented by pointers to the component structs in this package.
type Component interface {
	Kind() Kind
}

// Entity is an id plus at most one component per kind.
type Entity struct {
	id     ID
	active bool
	mask   Mask
	slots  [kindCount]Component
}

// ID returns the entity id.
func (e *Entity) ID() ID { return e.id }

// Active reports whether queries may return the entity.
func (e *Entity) Active() bool { return e.active }

// SetActive hides or shows the entity from queries without destroying it.
func (e *Entity) SetActive(active bool) { e.active = active }

// Mask returns the kinds currently attached.
func (e *Entity) Mask() Mask { return e.mask }

// Add attaches c, replacing any component of the same kind. It returns e for chaining.
func (e *Entity) Add(c Component) *Entity {
	k := c.Kind()
	e.slots[k] = c
	e.mask |= 1 << k
	return e
}

// Remove detaches the component of kind k, if any.
func (e *Entity) Remove(k Kind) {
	e.slots[k] = nil
	e.mask &^= 1 << k
}

// Has reports whether all kinds are attached.
func (e *Entity) Has(kinds ...Kind) bool {
	return e.mask.Contains(MaskOf(kinds...))
}

// Get returns the component of kind k, or nil.
func (e *Entity) Get(k Kind) Component {
	return e.slots[k]
}

func (e *Entity) Position() *Position {
	c, _ := e.slots[KindPosition].(*Position)
	return c
}

func (e *Entity) Velocity() *Velocity {
	c, _ := e.slots[KindVelocity].(*Velocity)
	return c
}

func (e *Entity) Grid() *Grid {
	c, _ := e.slots[KindGrid].(*Grid)
	return c
}

func (e *Entity) Player() *Player {
	c, _ := e.slots[KindPlayer].(*Player)
	return c
}

func (e *Entity) AI() *AI {
	c, _ := e.slots[KindAI].(*AI)
	return c
}

func (e *Entity) Bomb() *Bomb {
	c, _ := e.slots[KindBomb].(*Bomb)
	return c
}

func (e *Entity) Explosion() *Explosion {
	c, _ := e.slots[KindExplosion].(*Explosion)
	return c
}

func (e *Entity) Particle() *Particle {
	c, _ := e.slots[KindParticle].(*Particle)
	return c
}
