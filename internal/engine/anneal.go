package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/piwi3910/ChipPlace/internal/model"
)

// Annealer runs simulated annealing over module placements. Construction
// validates the configuration eagerly; a run either completes and returns
// the best placement found, or the annealer is never built at all.
type Annealer struct {
	netlist  model.Netlist
	settings model.PlaceSettings
	seed     int64

	eval  *Evaluator
	moves *MoveGenerator
	rng   *rand.Rand
}

// NewAnnealer validates the netlist and settings and builds a single-run
// annealer seeded with settings.Seed.
func NewAnnealer(nl model.Netlist, s model.PlaceSettings) (*Annealer, error) {
	if err := nl.Validate(); err != nil {
		return nil, fmt.Errorf("invalid netlist: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return newAnnealerSeeded(nl, s, s.Seed), nil
}

// newAnnealerSeeded assumes validated inputs. Used directly by the
// parallel-restart runner, which hands each worker its own seed.
func newAnnealerSeeded(nl model.Netlist, s model.PlaceSettings, seed int64) *Annealer {
	rng := rand.New(rand.NewSource(seed))
	return &Annealer{
		netlist:  nl,
		settings: s,
		seed:     seed,
		eval:     NewEvaluator(nl, s),
		moves:    NewMoveGenerator(nl, s, rng),
		rng:      rng,
	}
}

// Run executes the annealing loop from a fresh random placement and returns
// the best placement seen. The best is tracked independently of acceptance,
// so a run that wanders into worse regions still reports its best visit.
func (a *Annealer) Run() model.PlaceResult {
	return a.RunFrom(a.moves.RandomPlacement())
}

// RunFrom executes the annealing loop from the given initial placement.
// The initial placement is cloned, never mutated.
func (a *Annealer) RunFrom(initial model.Placement) model.PlaceResult {
	sched := NewScheduler(a.settings)

	current := initial.Clone()
	currentTotal := a.eval.Cost(current).Total

	best := current.Clone()
	bestTotal := currentTotal

	trace := make([]float64, 0, a.settings.MaxIterations)
	accepted := 0

	for sched.Running() {
		candidate, movedID, newPos := a.moves.Propose(current)
		delta := a.eval.MoveDelta(current, movedID, newPos.X, newPos.Y)

		if accept(delta, sched.Temperature(), a.rng.Float64()) {
			current = candidate
			currentTotal += delta
			accepted++
		}

		if currentTotal < bestTotal {
			best = current.Clone()
			bestTotal = currentTotal
		}

		trace = append(trace, bestTotal)
		sched.Cool()
	}

	if sched.Iteration() > 0 {
		best, bestTotal = a.refine(best, bestTotal)
	}

	return model.PlaceResult{
		Placement:     best,
		Cost:          a.eval.Cost(best), // full recompute, clears incremental drift
		Iterations:    sched.Iteration(),
		AcceptedMoves: accepted,
		Seed:          a.seed,
		Trace:         trace,
	}
}

// refineWindowFraction is the window size used by the polish pass,
// deliberately smaller than any sensible exploration window.
const refineWindowFraction = 0.05

// refine polishes the best placement after the schedule has finished.
// Near the end of a run the cooled search almost never proposes the fine
// adjustment that turns a sliver of residual overlap into a clean touch,
// so the polish does it explicitly: a short greedy pass of small window
// moves, then deterministic separation of any overlapping pairs left.
// Only strictly improving changes are kept, so the returned cost never
// regresses below zero-temperature behavior. Polish steps are not part
// of the schedule and do not extend the iteration count or the trace.
func (a *Annealer) refine(p model.Placement, total float64) (model.Placement, float64) {
	greedy := a.settings.MaxIterations / 10
	if greedy > 0 {
		s := a.settings
		s.MovePolicy = model.MoveWindow
		s.WindowFraction = refineWindowFraction
		gen := NewMoveGenerator(a.netlist, s, a.rng)
		for i := 0; i < greedy; i++ {
			candidate, movedID, newPos := gen.Propose(p)
			delta := a.eval.MoveDelta(p, movedID, newPos.X, newPos.Y)
			if delta < 0 {
				p = candidate
				total += delta
			}
		}
	}
	return a.separateOverlaps(p, total)
}

// separateOverlaps resolves residual overlap by snapping one module of an
// overlapping pair flush against the other. The snapped coordinate is the
// same expression the overlap test evaluates, so the pair's intersection
// becomes exactly zero. A snap is applied only when it keeps the module
// inside the die and strictly lowers the total cost, which is always the
// case for the thin slivers the annealing loop leaves behind.
func (a *Annealer) separateOverlaps(p model.Placement, total float64) (model.Placement, float64) {
	mods := a.netlist.Modules
	die := a.netlist.Die

	for sweep := 0; sweep < 4; sweep++ {
		changed := false
		for i := 0; i < len(mods); i++ {
			for j := i + 1; j < len(mods); j++ {
				mi, mj := mods[i], mods[j]
				pi, pj := p.PositionOf(mi.ID), p.PositionOf(mj.ID)
				if overlapArea(mi, pi, mj, pj) <= 0 {
					continue
				}

				candidates := []struct {
					id  string
					m   model.Module
					pos model.Point2D
				}{
					{mj.ID, mj, model.Point2D{X: pi.X + mi.Width, Y: pj.Y}},  // j right of i
					{mj.ID, mj, model.Point2D{X: pj.X, Y: pi.Y + mi.Height}}, // j above i
					{mi.ID, mi, model.Point2D{X: pj.X + mj.Width, Y: pi.Y}},  // i right of j
					{mi.ID, mi, model.Point2D{X: pi.X, Y: pj.Y + mj.Height}}, // i above j
				}

				bestDelta := 0.0
				bestIdx := -1
				for k, c := range candidates {
					if c.pos.X < 0 || c.pos.X > die.Width-c.m.Width ||
						c.pos.Y < 0 || c.pos.Y > die.Height-c.m.Height {
						continue
					}
					if d := a.eval.MoveDelta(p, c.id, c.pos.X, c.pos.Y); d < bestDelta {
						bestDelta = d
						bestIdx = k
					}
				}
				if bestIdx >= 0 {
					c := candidates[bestIdx]
					p = p.MovedTo(c.id, c.pos.X, c.pos.Y)
					total += bestDelta
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return p, total
}

// accept implements the Metropolis criterion. Improving or equal-cost moves
// are always taken; worsening moves are taken with probability
// exp(-delta/temperature). At tiny temperatures the exponential underflows
// to zero, which correctly means "almost never accept" rather than an error.
func accept(delta, temperature, draw float64) bool {
	if delta <= 0 {
		return true
	}
	if temperature <= 0 {
		return false
	}
	return draw < math.Exp(-delta/temperature)
}

// Place is the top-level entry point: it validates the inputs, then runs
// either a single annealing pass or, when settings.Restarts > 1,
// independent seeded restarts in parallel, returning the best result.
func Place(nl model.Netlist, s model.PlaceSettings) (model.PlaceResult, error) {
	if s.Restarts > 1 {
		return RunParallel(nl, s)
	}
	a, err := NewAnnealer(nl, s)
	if err != nil {
		return model.PlaceResult{}, err
	}
	return a.Run(), nil
}
