package engine

import (
	"math/rand"
	"testing"

	"github.com/piwi3910/ChipPlace/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairNetlist() model.Netlist {
	return model.Netlist{
		Name: "pair",
		Die:  model.Die{Width: 10, Height: 10},
		Modules: []model.Module{
			{ID: "a", Label: "A", Width: 1, Height: 1},
			{ID: "b", Label: "B", Width: 1, Height: 1},
		},
		Nets: []model.Net{
			{ID: "n1", Label: "N1", Modules: []string{"a", "b"}},
		},
	}
}

func quadTestNetlist() model.Netlist {
	return model.Netlist{
		Name: "quad",
		Die:  model.Die{Width: 20, Height: 20},
		Modules: []model.Module{
			{ID: "a", Label: "A", Width: 2, Height: 3},
			{ID: "b", Label: "B", Width: 3, Height: 2},
			{ID: "c", Label: "C", Width: 2, Height: 2},
			{ID: "d", Label: "D", Width: 1, Height: 4},
		},
		Nets: []model.Net{
			{ID: "n1", Label: "N1", Modules: []string{"a", "b"}},
			{ID: "n2", Label: "N2", Modules: []string{"b", "c", "d"}},
		},
	}
}

func TestEvaluator_DisjointInDieLayoutHasZeroPenalties(t *testing.T) {
	nl := pairNetlist()
	e := NewEvaluator(nl, model.DefaultPlaceSettings())

	p := model.Placement{
		"a": {X: 0, Y: 0},
		"b": {X: 5, Y: 5},
	}

	assert.Equal(t, 0.0, e.Overlap(p))
	assert.Equal(t, 0.0, e.Boundary(p))
}

func TestEvaluator_TermsNonNegative(t *testing.T) {
	nl := quadTestNetlist()
	e := NewEvaluator(nl, model.DefaultPlaceSettings())
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		p := make(model.Placement)
		for _, m := range nl.Modules {
			// Deliberately allow out-of-die positions
			p[m.ID] = model.Point2D{
				X: rng.Float64()*30 - 5,
				Y: rng.Float64()*30 - 5,
			}
		}
		b := e.Cost(p)
		assert.GreaterOrEqual(t, b.Wirelength, 0.0)
		assert.GreaterOrEqual(t, b.Overlap, 0.0)
		assert.GreaterOrEqual(t, b.Boundary, 0.0)
		assert.GreaterOrEqual(t, b.Total, 0.0)
	}
}

func TestEvaluator_TwoPinHPWLEqualsCenterManhattanDistance(t *testing.T) {
	nl := pairNetlist()
	e := NewEvaluator(nl, model.DefaultPlaceSettings())

	p := model.Placement{
		"a": {X: 0, Y: 0}, // center (0.5, 0.5)
		"b": {X: 9, Y: 9}, // center (9.5, 9.5)
	}

	assert.InDelta(t, 18.0, e.Wirelength(p), 1e-12)
}

func TestEvaluator_MultiPinHPWLUsesBoundingBox(t *testing.T) {
	nl := quadTestNetlist()
	e := NewEvaluator(nl, model.DefaultPlaceSettings())

	p := model.Placement{
		"a": {X: 0, Y: 0},
		"b": {X: 0, Y: 0},  // center (1.5, 1.0)
		"c": {X: 5, Y: 0},  // center (6.0, 1.0)
		"d": {X: 2, Y: 10}, // center (2.5, 12.0)
	}

	// Net N2 spans centers x in [1.5, 6.0], y in [1.0, 12.0]
	want := (6.0 - 1.5) + (12.0 - 1.0)
	got := e.netHPWL(p, 1)
	assert.InDelta(t, want, got, 1e-12)
}

func TestEvaluator_OverlapArea(t *testing.T) {
	nl := model.Netlist{
		Name: "overlap",
		Die:  model.Die{Width: 10, Height: 10},
		Modules: []model.Module{
			{ID: "a", Label: "A", Width: 4, Height: 4},
			{ID: "b", Label: "B", Width: 4, Height: 4},
		},
	}
	e := NewEvaluator(nl, model.DefaultPlaceSettings())

	// b offset by (2, 3) from a: overlap is 2 x 1
	p := model.Placement{
		"a": {X: 0, Y: 0},
		"b": {X: 2, Y: 3},
	}
	assert.InDelta(t, 2.0, e.Overlap(p), 1e-12)

	// Touching edges do not count as overlap
	p["b"] = model.Point2D{X: 4, Y: 0}
	assert.Equal(t, 0.0, e.Overlap(p))
}

func TestEvaluator_BoundaryExactlyZeroForInDieModules(t *testing.T) {
	// Coordinates like 0.1 have no exact float64 representation; the
	// boundary term must still be exactly zero for any fully in-die
	// layout, never a rounding residue (which can even turn negative
	// and drag the total below zero).
	nl := quadTestNetlist()
	e := NewEvaluator(nl, model.DefaultPlaceSettings())

	p := model.Placement{
		"a": {X: 0.1, Y: 0.2},
		"b": {X: 7.3, Y: 0.1},
		"c": {X: 0.3, Y: 11.7},
		"d": {X: 13.1, Y: 5.9},
	}
	assert.Equal(t, 0.0, e.Boundary(p))

	rng := rand.New(rand.NewSource(21))
	for i := 0; i < 500; i++ {
		q := make(model.Placement)
		for _, m := range nl.Modules {
			q[m.ID] = model.Point2D{
				X: rng.Float64() * (nl.Die.Width - m.Width),
				Y: rng.Float64() * (nl.Die.Height - m.Height),
			}
		}
		require.Equal(t, 0.0, e.Boundary(q), "in-die layout must have zero boundary penalty")
	}
}

func TestEvaluator_BoundaryPenaltyCountsOutOfDieArea(t *testing.T) {
	nl := pairNetlist()
	e := NewEvaluator(nl, model.DefaultPlaceSettings())

	// a hangs half off the right edge: 0.5 sq units outside
	p := model.Placement{
		"a": {X: 9.5, Y: 0},
		"b": {X: 0, Y: 0},
	}
	assert.InDelta(t, 0.5, e.Boundary(p), 1e-12)

	// Fully outside: whole area is penalized
	p["a"] = model.Point2D{X: 20, Y: 20}
	assert.InDelta(t, 1.0, e.Boundary(p), 1e-12)
}

func TestEvaluator_ZeroWeightsDisableTerms(t *testing.T) {
	nl := pairNetlist()
	s := model.DefaultPlaceSettings()
	s.OverlapWeight = 0
	s.BoundaryWeight = 0
	e := NewEvaluator(nl, s)

	// Fully stacked and out of bounds, so only wirelength should contribute
	p := model.Placement{
		"a": {X: 11, Y: 11},
		"b": {X: 11, Y: 11},
	}
	b := e.Cost(p)
	assert.Greater(t, b.Overlap, 0.0, "unweighted term is still reported")
	assert.InDelta(t, s.WirelengthWeight*b.Wirelength, b.Total, 1e-12)
}

func TestEvaluator_MoveDeltaMatchesFullRecompute(t *testing.T) {
	nl := quadTestNetlist()
	s := model.DefaultPlaceSettings()
	e := NewEvaluator(nl, s)
	rng := rand.New(rand.NewSource(99))

	p := make(model.Placement)
	for _, m := range nl.Modules {
		p[m.ID] = model.Point2D{X: rng.Float64() * 15, Y: rng.Float64() * 15}
	}

	for i := 0; i < 500; i++ {
		m := nl.Modules[rng.Intn(len(nl.Modules))]
		x := rng.Float64()*25 - 3
		y := rng.Float64()*25 - 3

		delta := e.MoveDelta(p, m.ID, x, y)
		moved := p.MovedTo(m.ID, x, y)
		full := e.Cost(moved).Total - e.Cost(p).Total

		require.InDelta(t, full, delta, 1e-9, "incremental delta must match full recompute")

		// Walk forward so deltas are exercised from many states
		p = moved
	}
}

func TestEvaluator_MoveDeltaPanicsOnUnknownModule(t *testing.T) {
	nl := pairNetlist()
	e := NewEvaluator(nl, model.DefaultPlaceSettings())
	p := model.Placement{"a": {X: 0, Y: 0}, "b": {X: 3, Y: 3}}

	assert.Panics(t, func() {
		e.MoveDelta(p, "nope", 1, 1)
	})
}

func TestEvaluator_CostIsDeterministic(t *testing.T) {
	nl := quadTestNetlist()
	e := NewEvaluator(nl, model.DefaultPlaceSettings())
	p := model.Placement{
		"a": {X: 1, Y: 2},
		"b": {X: 3, Y: 4},
		"c": {X: 5, Y: 6},
		"d": {X: 7, Y: 8},
	}
	first := e.Cost(p)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Cost(p))
	}
}
