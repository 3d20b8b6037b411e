package model

import "math"

// NetLength holds the half-perimeter wirelength of a single net.
type NetLength struct {
	NetLabel string  `json:"net_label"`
	Length   float64 `json:"length"`
}

// PlacementStats holds derived figures for a finished placement, used by
// the results view and the exported reports.
type PlacementStats struct {
	ModuleArea       float64     `json:"module_area"`       // total module footprint (sq units)
	DieArea          float64     `json:"die_area"`          // die area (sq units)
	Utilization      float64     `json:"utilization"`       // ModuleArea / DieArea, percent
	OverlappingPairs int         `json:"overlapping_pairs"` // module pairs with positive intersection
	OutOfBounds      int         `json:"out_of_bounds"`     // modules not fully inside the die
	TotalHPWL        float64     `json:"total_hpwl"`        // sum of per-net half-perimeter wirelengths
	NetLengths       []NetLength `json:"net_lengths"`
}

// ComputeStats derives placement statistics for a netlist and placement.
// Modules missing from the placement are skipped rather than treated as
// errors, so partially built projects can still show numbers.
func ComputeStats(nl Netlist, p Placement) PlacementStats {
	stats := PlacementStats{DieArea: nl.Die.Area()}

	placed := make([]Module, 0, len(nl.Modules))
	for _, m := range nl.Modules {
		if _, ok := p[m.ID]; !ok {
			continue
		}
		placed = append(placed, m)
		stats.ModuleArea += m.Area()

		pos := p[m.ID]
		if pos.X < 0 || pos.Y < 0 || pos.X+m.Width > nl.Die.Width || pos.Y+m.Height > nl.Die.Height {
			stats.OutOfBounds++
		}
	}
	if stats.DieArea > 0 {
		stats.Utilization = (stats.ModuleArea / stats.DieArea) * 100.0
	}

	for i := 0; i < len(placed); i++ {
		for j := i + 1; j < len(placed); j++ {
			a, b := placed[i], placed[j]
			pa, pb := p[a.ID], p[b.ID]
			ow := math.Min(pa.X+a.Width, pb.X+b.Width) - math.Max(pa.X, pb.X)
			oh := math.Min(pa.Y+a.Height, pb.Y+b.Height) - math.Max(pa.Y, pb.Y)
			if ow > 0 && oh > 0 {
				stats.OverlappingPairs++
			}
		}
	}

	for _, net := range nl.Nets {
		length, ok := netHPWL(nl, p, net)
		if !ok {
			continue
		}
		stats.TotalHPWL += length
		stats.NetLengths = append(stats.NetLengths, NetLength{NetLabel: net.Label, Length: length})
	}

	return stats
}

// netHPWL returns the half-perimeter of the bounding box spanned by the
// centers of the net's modules. Returns false if any module is unplaced.
func netHPWL(nl Netlist, p Placement, net Net) (float64, bool) {
	first := true
	var minX, minY, maxX, maxY float64
	for _, id := range net.Modules {
		m, ok := nl.ModuleByID(id)
		if !ok {
			return 0, false
		}
		pos, ok := p[id]
		if !ok {
			return 0, false
		}
		cx := pos.X + m.Width/2
		cy := pos.Y + m.Height/2
		if first {
			minX, maxX, minY, maxY = cx, cx, cy, cy
			first = false
			continue
		}
		minX = math.Min(minX, cx)
		maxX = math.Max(maxX, cx)
		minY = math.Min(minY, cy)
		maxY = math.Max(maxY, cy)
	}
	return (maxX - minX) + (maxY - minY), true
}
