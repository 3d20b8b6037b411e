package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/ChipPlace/internal/model"
)

// Module colors, cycled for visual distinction.
var moduleColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

// DieCanvas renders a visual representation of a placement on the die.
type DieCanvas struct {
	widget.BaseWidget
	netlist   model.Netlist
	placement model.Placement
	showNets  bool
	maxWidth  float32
	maxHeight float32
}

func NewDieCanvas(nl model.Netlist, p model.Placement, showNets bool, maxW, maxH float32) *DieCanvas {
	dc := &DieCanvas{
		netlist:   nl,
		placement: p,
		showNets:  showNets,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	dc.ExtendBaseWidget(dc)
	return dc
}

func (dc *DieCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newDieCanvasRenderer(dc)
}

// SetPlacement swaps the rendered placement and refreshes the widget.
func (dc *DieCanvas) SetPlacement(p model.Placement) {
	dc.placement = p
	dc.Refresh()
}

func (dc *DieCanvas) scale() float32 {
	dieW := float32(dc.netlist.Die.Width)
	dieH := float32(dc.netlist.Die.Height)
	scaleX := dc.maxWidth / dieW
	scaleY := dc.maxHeight / dieH
	if scaleY < scaleX {
		return scaleY
	}
	return scaleX
}

type dieCanvasRenderer struct {
	dc      *DieCanvas
	objects []fyne.CanvasObject
}

func newDieCanvasRenderer(dc *DieCanvas) *dieCanvasRenderer {
	r := &dieCanvasRenderer{dc: dc}
	r.rebuild()
	return r
}

func (r *dieCanvasRenderer) rebuild() {
	r.objects = nil

	nl := r.dc.netlist
	scale := r.dc.scale()
	canvasW := float32(nl.Die.Width) * scale
	canvasH := float32(nl.Die.Height) * scale

	// Die background
	bg := canvas.NewRectangle(color.NRGBA{R: 38, G: 50, B: 56, A: 255})
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, bg)

	// Die border
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	border.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, border)

	if r.dc.showNets {
		r.drawNets(scale)
	}

	// Placed modules
	for i, m := range nl.Modules {
		pos, ok := r.dc.placement[m.ID]
		if !ok {
			continue
		}
		col := moduleColors[i%len(moduleColors)]
		mw := float32(m.Width) * scale
		mh := float32(m.Height) * scale
		mx := float32(pos.X) * scale
		my := float32(pos.Y) * scale

		// Module rectangle
		rect := canvas.NewRectangle(col)
		rect.Resize(fyne.NewSize(mw, mh))
		rect.Move(fyne.NewPos(mx, my))
		r.objects = append(r.objects, rect)

		// Module border; red when the module hangs off the die
		borderCol := color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		if pos.X < 0 || pos.Y < 0 ||
			pos.X+m.Width > nl.Die.Width || pos.Y+m.Height > nl.Die.Height {
			borderCol = color.NRGBA{R: 244, G: 67, B: 54, A: 255}
		}
		moduleBorder := canvas.NewRectangle(color.Transparent)
		moduleBorder.StrokeColor = borderCol
		moduleBorder.StrokeWidth = 1
		moduleBorder.Resize(fyne.NewSize(mw, mh))
		moduleBorder.Move(fyne.NewPos(mx, my))
		r.objects = append(r.objects, moduleBorder)

		// Label (only if big enough)
		if mw > 30 && mh > 16 {
			label := canvas.NewText(
				fmt.Sprintf("%s %.0fx%.0f", m.Label, m.Width, m.Height),
				color.White,
			)
			label.TextSize = 10
			label.Move(fyne.NewPos(mx+3, my+2))
			r.objects = append(r.objects, label)
		}
	}
}

// drawNets renders each net as lines from the member centers to the net centroid.
func (r *dieCanvasRenderer) drawNets(scale float32) {
	nl := r.dc.netlist
	for _, net := range nl.Nets {
		type pt struct{ x, y float32 }
		var centers []pt
		for _, id := range net.Modules {
			m, ok := nl.ModuleByID(id)
			if !ok {
				continue
			}
			pos, placed := r.dc.placement[id]
			if !placed {
				continue
			}
			centers = append(centers, pt{
				x: float32(pos.X+m.Width/2) * scale,
				y: float32(pos.Y+m.Height/2) * scale,
			})
		}
		if len(centers) < 2 {
			continue
		}

		var cx, cy float32
		for _, c := range centers {
			cx += c.x
			cy += c.y
		}
		cx /= float32(len(centers))
		cy /= float32(len(centers))

		for _, c := range centers {
			line := canvas.NewLine(color.NRGBA{R: 255, G: 255, B: 255, A: 90})
			line.StrokeWidth = 1
			line.Position1 = fyne.NewPos(cx, cy)
			line.Position2 = fyne.NewPos(c.x, c.y)
			r.objects = append(r.objects, line)
		}
	}
}

func (r *dieCanvasRenderer) Layout(size fyne.Size)        {}
func (r *dieCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *dieCanvasRenderer) Destroy()                     {}
func (r *dieCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *dieCanvasRenderer) MinSize() fyne.Size {
	scale := r.dc.scale()
	return fyne.NewSize(
		float32(r.dc.netlist.Die.Width)*scale,
		float32(r.dc.netlist.Die.Height)*scale,
	)
}

// RenderPlacementResult creates a scrollable view of a finished run:
// the die canvas followed by the cost breakdown and placement statistics.
func RenderPlacementResult(nl model.Netlist, result *model.PlaceResult) fyne.CanvasObject {
	if result == nil || len(result.Placement) == 0 {
		return widget.NewLabel("No results yet. Add modules and nets, then click Place.")
	}

	header := widget.NewLabel(fmt.Sprintf(
		"%s (%.0f × %.0f die) — %d modules, cost %.3f",
		nl.Name, nl.Die.Width, nl.Die.Height, len(nl.Modules), result.Cost.Total,
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	dieCanvas := NewDieCanvas(nl, result.Placement, true, 600, 400)

	stats := model.ComputeStats(nl, result.Placement)
	items := []fyne.CanvasObject{
		header,
		dieCanvas,
		widget.NewSeparator(),
		widget.NewLabel(fmt.Sprintf("Wirelength: %.3f | Overlap: %.3f | Boundary: %.3f",
			result.Cost.Wirelength, result.Cost.Overlap, result.Cost.Boundary)),
		widget.NewLabel(fmt.Sprintf("Utilization: %.1f%% | Overlapping pairs: %d | Out of bounds: %d",
			stats.Utilization, stats.OverlappingPairs, stats.OutOfBounds)),
		widget.NewLabel(fmt.Sprintf("Iterations: %d | Accepted: %d | Seed: %d",
			result.Iterations, result.AcceptedMoves, result.Seed)),
	}

	if stats.OverlappingPairs > 0 || stats.OutOfBounds > 0 {
		warning := widget.NewLabel("WARNING: placement has overlaps or out-of-die modules. Rerun with a higher penalty weight or more iterations.")
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}

	if len(result.Trace) > 1 {
		items = append(items, widget.NewSeparator(), NewCostChart(result.Trace, 600, 160))
	}

	return container.NewVScroll(container.NewVBox(items...))
}
