package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Module represents a rectangular block to be placed on the die.
// Width and height are fixed for the run; only the position moves.
type Module struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Width  float64 `json:"width"`  // die units
	Height float64 `json:"height"` // die units
}

func NewModule(label string, w, h float64) Module {
	return Module{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
	}
}

// Area returns the module footprint area.
func (m Module) Area() float64 {
	return m.Width * m.Height
}

// Net represents a connectivity requirement: the listed modules should end
// up close together. Modules are referenced by their IDs.
type Net struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Modules []string `json:"modules"`
}

func NewNet(label string, moduleIDs ...string) Net {
	return Net{
		ID:      uuid.New().String()[:8],
		Label:   label,
		Modules: moduleIDs,
	}
}

// Die represents the rectangular placement region (the chip boundary).
type Die struct {
	Width  float64 `json:"width"`  // die units
	Height float64 `json:"height"` // die units
}

// Area returns the die area.
func (d Die) Area() float64 {
	return d.Width * d.Height
}

// Netlist bundles the fixed inputs of a placement run: modules, nets, and
// the die they must fit on.
type Netlist struct {
	Name    string   `json:"name"`
	Modules []Module `json:"modules"`
	Nets    []Net    `json:"nets"`
	Die     Die      `json:"die"`
}

// ModuleByID returns the module with the given ID.
func (n Netlist) ModuleByID(id string) (Module, bool) {
	for _, m := range n.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

// ModuleByLabel returns the first module with the given label.
func (n Netlist) ModuleByLabel(label string) (Module, bool) {
	for _, m := range n.Modules {
		if m.Label == label {
			return m, true
		}
	}
	return Module{}, false
}

// Validate checks the structural invariants of the netlist. It is called
// before a run starts; an invalid netlist must never reach the annealer.
func (n Netlist) Validate() error {
	if len(n.Modules) == 0 {
		return fmt.Errorf("netlist has no modules")
	}
	if n.Die.Width <= 0 || n.Die.Height <= 0 {
		return fmt.Errorf("die dimensions must be positive, got %.2f x %.2f", n.Die.Width, n.Die.Height)
	}

	seen := make(map[string]bool, len(n.Modules))
	for _, m := range n.Modules {
		if m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("module %q: dimensions must be positive, got %.2f x %.2f", m.Label, m.Width, m.Height)
		}
		if m.Width > n.Die.Width || m.Height > n.Die.Height {
			return fmt.Errorf("module %q (%.2f x %.2f) does not fit the %.2f x %.2f die", m.Label, m.Width, m.Height, n.Die.Width, n.Die.Height)
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate module ID %q", m.ID)
		}
		seen[m.ID] = true
	}

	for _, net := range n.Nets {
		if len(net.Modules) < 2 {
			return fmt.Errorf("net %q must connect at least 2 modules, got %d", net.Label, len(net.Modules))
		}
		for _, id := range net.Modules {
			if !seen[id] {
				return fmt.Errorf("net %q references unknown module ID %q", net.Label, id)
			}
		}
	}
	return nil
}

// Schedule selects the temperature decay rule.
type Schedule string

const (
	ScheduleGeometric Schedule = "geometric" // T *= CoolingRate each iteration
	ScheduleLinear    Schedule = "linear"    // T decreases by a fixed step each iteration
)

// MovePolicy selects how the move generator proposes new positions.
type MovePolicy string

const (
	MoveUniform MovePolicy = "uniform" // anywhere on the die
	MoveWindow  MovePolicy = "window"  // within a bounded window around the current position
)

// PlaceSettings holds the annealer configuration.
type PlaceSettings struct {
	// Cost weights
	WirelengthWeight float64 `json:"wirelength_weight"` // scales the HPWL term
	OverlapWeight    float64 `json:"overlap_weight"`    // scales pairwise overlap area
	BoundaryWeight   float64 `json:"boundary_weight"`   // scales out-of-die area

	// Annealing schedule
	InitialTemperature float64  `json:"initial_temperature"`
	CoolingRate        float64  `json:"cooling_rate"`   // geometric factor, 0 < rate < 1
	StopThreshold      float64  `json:"stop_threshold"` // terminal temperature
	MaxIterations      int      `json:"max_iterations"`
	Schedule           Schedule `json:"schedule"`

	// Move generation
	MovePolicy     MovePolicy `json:"move_policy"`
	WindowFraction float64    `json:"window_fraction"` // window size as a fraction of each die dimension

	// Reproducibility
	Seed     int64 `json:"seed"`
	Restarts int   `json:"restarts"` // independent seeded runs; best result wins
}

// DefaultPlaceSettings returns the standard annealing parameters: the
// classic T=100, rate=0.995 geometric schedule over 50k iterations.
func DefaultPlaceSettings() PlaceSettings {
	return PlaceSettings{
		WirelengthWeight:   1.0,
		OverlapWeight:      10.0,
		BoundaryWeight:     10.0,
		InitialTemperature: 100.0,
		CoolingRate:        0.995,
		StopThreshold:      0,
		MaxIterations:      50000,
		Schedule:           ScheduleGeometric,
		MovePolicy:         MoveUniform,
		WindowFraction:     0.25,
		Seed:               42,
		Restarts:           1,
	}
}

// Validate checks that the settings describe a well-defined annealing run.
// All violations are fatal configuration errors caught before the loop starts.
func (s PlaceSettings) Validate() error {
	if s.WirelengthWeight < 0 || s.OverlapWeight < 0 || s.BoundaryWeight < 0 {
		return fmt.Errorf("cost weights must be non-negative")
	}
	if s.InitialTemperature <= 0 {
		return fmt.Errorf("initial temperature must be positive, got %g", s.InitialTemperature)
	}
	if s.CoolingRate <= 0 || s.CoolingRate >= 1 {
		return fmt.Errorf("cooling rate must be in (0, 1), got %g", s.CoolingRate)
	}
	if s.StopThreshold < 0 {
		return fmt.Errorf("stop threshold must be non-negative, got %g", s.StopThreshold)
	}
	if s.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", s.MaxIterations)
	}
	switch s.Schedule {
	case ScheduleGeometric, ScheduleLinear:
	default:
		return fmt.Errorf("unknown schedule %q", s.Schedule)
	}
	switch s.MovePolicy {
	case MoveUniform, MoveWindow:
	default:
		return fmt.Errorf("unknown move policy %q", s.MovePolicy)
	}
	if s.MovePolicy == MoveWindow && (s.WindowFraction <= 0 || s.WindowFraction > 1) {
		return fmt.Errorf("window fraction must be in (0, 1], got %g", s.WindowFraction)
	}
	if s.Restarts < 1 {
		return fmt.Errorf("restarts must be at least 1, got %d", s.Restarts)
	}
	return nil
}

// CostBreakdown holds the individual cost terms for a placement. The terms
// are unweighted; Total is the weighted sum.
type CostBreakdown struct {
	Wirelength float64 `json:"wirelength"` // sum of per-net HPWL
	Overlap    float64 `json:"overlap"`    // pairwise overlap area
	Boundary   float64 `json:"boundary"`   // out-of-die area
	Total      float64 `json:"total"`
}

// PlaceResult holds the outcome of an annealing run.
type PlaceResult struct {
	Placement     Placement     `json:"placement"`
	Cost          CostBreakdown `json:"cost"`
	Iterations    int           `json:"iterations"`
	AcceptedMoves int           `json:"accepted_moves"`
	Seed          int64         `json:"seed"` // seed of the winning run when restarts > 1
	Trace         []float64     `json:"trace,omitempty"`
}

// Project ties everything together for save/load.
type Project struct {
	Name     string        `json:"name"`
	Netlist  Netlist       `json:"netlist"`
	Settings PlaceSettings `json:"settings"`
	Result   *PlaceResult  `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Netlist:  Netlist{Name: "Untitled", Die: Die{Width: 20, Height: 20}},
		Settings: DefaultPlaceSettings(),
	}
}
