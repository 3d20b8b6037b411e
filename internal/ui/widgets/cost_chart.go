package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// CostChart renders the best-cost trace of an annealing run as a line chart.
type CostChart struct {
	widget.BaseWidget
	trace  []float64
	width  float32
	height float32
}

func NewCostChart(trace []float64, w, h float32) *CostChart {
	cc := &CostChart{trace: trace, width: w, height: h}
	cc.ExtendBaseWidget(cc)
	return cc
}

func (cc *CostChart) CreateRenderer() fyne.WidgetRenderer {
	return newCostChartRenderer(cc)
}

type costChartRenderer struct {
	cc      *CostChart
	objects []fyne.CanvasObject
}

func newCostChartRenderer(cc *CostChart) *costChartRenderer {
	r := &costChartRenderer{cc: cc}
	r.rebuild()
	return r
}

func (r *costChartRenderer) rebuild() {
	r.objects = nil

	trace := r.cc.trace
	w, h := r.cc.width, r.cc.height
	if len(trace) < 2 {
		return
	}

	// Chart background
	bg := canvas.NewRectangle(color.NRGBA{R: 25, G: 25, B: 30, A: 255})
	bg.Resize(fyne.NewSize(w, h))
	bg.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, bg)

	minCost, maxCost := trace[0], trace[0]
	for _, c := range trace {
		if c < minCost {
			minCost = c
		}
		if c > maxCost {
			maxCost = c
		}
	}
	span := maxCost - minCost
	if span <= 0 {
		span = 1
	}

	const pad = float32(8)
	plotW := w - 2*pad
	plotH := h - 2*pad

	// One line segment per horizontal pixel keeps the object count bounded
	step := 1
	if len(trace) > int(plotW) {
		step = len(trace) / int(plotW)
	}

	n := len(trace)
	pointAt := func(i int) fyne.Position {
		x := pad + float32(i)/float32(n-1)*plotW
		y := pad + plotH - float32((trace[i]-minCost)/span)*plotH
		return fyne.NewPos(x, y)
	}

	prev := pointAt(0)
	for i := step; i < n; i += step {
		p := pointAt(i)
		line := canvas.NewLine(color.NRGBA{R: 33, G: 150, B: 243, A: 255})
		line.StrokeWidth = 1.5
		line.Position1 = prev
		line.Position2 = p
		r.objects = append(r.objects, line)
		prev = p
	}

	// Min/max annotations
	maxLabel := canvas.NewText(fmt.Sprintf("%.1f", maxCost), color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	maxLabel.TextSize = 9
	maxLabel.Move(fyne.NewPos(2, 0))
	r.objects = append(r.objects, maxLabel)

	minLabel := canvas.NewText(fmt.Sprintf("%.1f", minCost), color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	minLabel.TextSize = 9
	minLabel.Move(fyne.NewPos(2, h-12))
	r.objects = append(r.objects, minLabel)
}

func (r *costChartRenderer) Layout(size fyne.Size)        {}
func (r *costChartRenderer) Refresh()                     { r.rebuild() }
func (r *costChartRenderer) Destroy()                     {}
func (r *costChartRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *costChartRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.cc.width, r.cc.height)
}
