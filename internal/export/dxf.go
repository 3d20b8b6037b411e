package export

import (
	"fmt"

	"github.com/piwi3910/ChipPlace/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// ExportDXF writes the placement as a DXF drawing for use in CAD tools.
// The die outline goes on the DIE layer, module rectangles on the MODULES
// layer, and net connections (center to center) on the NETS layer.
func ExportDXF(path string, nl model.Netlist, result model.PlaceResult) error {
	if len(result.Placement) == 0 {
		return fmt.Errorf("no placement to export")
	}

	d := dxf.NewDrawing()

	d.AddLayer("DIE", color.White, dxf.DefaultLineType, true)
	drawRect(d, 0, 0, nl.Die.Width, nl.Die.Height)

	d.AddLayer("MODULES", color.Green, dxf.DefaultLineType, true)
	for _, m := range nl.Modules {
		pos, ok := result.Placement[m.ID]
		if !ok {
			continue
		}
		drawRect(d, pos.X, pos.Y, m.Width, m.Height)
	}

	d.AddLayer("NETS", color.Cyan, dxf.DefaultLineType, true)
	for _, net := range nl.Nets {
		drawNet(d, nl, result.Placement, net)
	}

	return d.SaveAs(path)
}

// drawRect draws an axis-aligned rectangle as four lines.
func drawRect(d *drawing.Drawing, x, y, w, h float64) {
	d.Line(x, y, 0, x+w, y, 0)
	d.Line(x+w, y, 0, x+w, y+h, 0)
	d.Line(x+w, y+h, 0, x, y+h, 0)
	d.Line(x, y+h, 0, x, y, 0)
}

// drawNet draws lines from each member module center to the net centroid.
// Nets with unplaced members are skipped.
func drawNet(d *drawing.Drawing, nl model.Netlist, p model.Placement, net model.Net) {
	type pt struct{ x, y float64 }
	var centers []pt
	for _, id := range net.Modules {
		m, ok := nl.ModuleByID(id)
		if !ok {
			return
		}
		pos, ok := p[id]
		if !ok {
			return
		}
		centers = append(centers, pt{x: pos.X + m.Width/2, y: pos.Y + m.Height/2})
	}
	if len(centers) < 2 {
		return
	}

	var cx, cy float64
	for _, c := range centers {
		cx += c.x
		cy += c.y
	}
	cx /= float64(len(centers))
	cy /= float64(len(centers))

	for _, c := range centers {
		d.Line(cx, cy, 0, c.x, c.y, 0)
	}
}
