package model

import "fmt"

// Point2D represents a 2D coordinate in die units.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Placement maps module IDs to the bottom-left corner of each module.
// A Placement is a value: exploring an alternative layout always goes
// through Clone or MovedTo so the accepted state is never mutated behind
// the annealer's back.
type Placement map[string]Point2D

// Clone returns an independent copy of the placement.
func (p Placement) Clone() Placement {
	out := make(Placement, len(p))
	for id, pos := range p {
		out[id] = pos
	}
	return out
}

// PositionOf returns the position of the given module. Asking for a module
// that is not part of the placement is a programming error, not a runtime
// condition, so it panics.
func (p Placement) PositionOf(id string) Point2D {
	pos, ok := p[id]
	if !ok {
		panic(fmt.Sprintf("placement: unknown module ID %q", id))
	}
	return pos
}

// MovedTo returns a copy of the placement with a single module relocated.
// The receiver is left untouched. Panics on an unknown module ID.
func (p Placement) MovedTo(id string, x, y float64) Placement {
	if _, ok := p[id]; !ok {
		panic(fmt.Sprintf("placement: unknown module ID %q", id))
	}
	out := p.Clone()
	out[id] = Point2D{X: x, Y: y}
	return out
}
