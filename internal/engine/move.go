package engine

import (
	"math/rand"

	"github.com/piwi3910/ChipPlace/internal/model"
)

// MoveGenerator proposes neighboring placements by relocating a single
// module. All randomness comes from the injected rng so runs are
// reproducible for a fixed seed.
type MoveGenerator struct {
	netlist  model.Netlist
	settings model.PlaceSettings
	rng      *rand.Rand
}

// NewMoveGenerator builds a generator over a validated netlist. The rng is
// shared with the annealer that owns it.
func NewMoveGenerator(nl model.Netlist, s model.PlaceSettings, rng *rand.Rand) *MoveGenerator {
	return &MoveGenerator{netlist: nl, settings: s, rng: rng}
}

// Propose returns a candidate placement that differs from p in exactly one
// module's position, plus the new position. The input placement is never
// mutated. Proposed positions are clamped so the module stays inside the
// die; the boundary cost term only fires on layouts that arrive from
// outside the generator (e.g. imported placements).
func (g *MoveGenerator) Propose(p model.Placement) (model.Placement, string, model.Point2D) {
	m := g.netlist.Modules[g.rng.Intn(len(g.netlist.Modules))]

	var pos model.Point2D
	switch g.settings.MovePolicy {
	case model.MoveWindow:
		pos = g.windowPosition(m, p.PositionOf(m.ID))
	default:
		pos = g.uniformPosition(m)
	}

	return p.MovedTo(m.ID, pos.X, pos.Y), m.ID, pos
}

// RandomPlacement places every module uniformly at random inside the die.
func (g *MoveGenerator) RandomPlacement() model.Placement {
	p := make(model.Placement, len(g.netlist.Modules))
	for _, m := range g.netlist.Modules {
		pos := g.uniformPosition(m)
		p[m.ID] = pos
	}
	return p
}

// uniformPosition draws a position uniformly over the die, keeping the
// module fully inside.
func (g *MoveGenerator) uniformPosition(m model.Module) model.Point2D {
	return model.Point2D{
		X: g.rng.Float64() * (g.netlist.Die.Width - m.Width),
		Y: g.rng.Float64() * (g.netlist.Die.Height - m.Height),
	}
}

// windowPosition perturbs the current position within a window of
// WindowFraction of each die dimension, clamped to the die.
func (g *MoveGenerator) windowPosition(m model.Module, cur model.Point2D) model.Point2D {
	wx := g.settings.WindowFraction * g.netlist.Die.Width
	wy := g.settings.WindowFraction * g.netlist.Die.Height
	x := cur.X + (g.rng.Float64()*2-1)*wx
	y := cur.Y + (g.rng.Float64()*2-1)*wy
	return model.Point2D{
		X: clamp(x, 0, g.netlist.Die.Width-m.Width),
		Y: clamp(y, 0, g.netlist.Die.Height-m.Height),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
