// Package export provides functionality for exporting placement results
// to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/ChipPlace/internal/model"
)

// moduleColor represents an RGB color for a placed module.
type moduleColor struct {
	R, G, B int
}

// moduleColors mirrors the color scheme used in the UI die canvas widget.
var moduleColors = []moduleColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document containing the placement results.
// The first page shows the die with all placed modules and their nets,
// the second a convergence chart of the annealing run, and the last a
// summary with cost breakdown and per-net wirelengths.
func ExportPDF(path string, nl model.Netlist, result model.PlaceResult, settings model.PlaceSettings) error {
	if len(result.Placement) == 0 {
		return fmt.Errorf("no placement to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderDiePage(pdf, nl, result)

	if len(result.Trace) > 1 {
		pdf.AddPage()
		renderConvergencePage(pdf, result)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, nl, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderDiePage draws the die outline with all placed modules and net connections.
func renderDiePage(pdf *fpdf.Fpdf, nl model.Netlist, result model.PlaceResult) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Placement: %s (%.0f x %.0f die)", nl.Name, nl.Die.Width, nl.Die.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	stats := model.ComputeStats(nl, result.Placement)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	line := fmt.Sprintf("Modules: %d | Nets: %d | Wirelength: %.2f | Utilization: %.1f%% | Cost: %.3f",
		len(nl.Modules), len(nl.Nets), stats.TotalHPWL, stats.Utilization, result.Cost.Total)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")

	// Calculate drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	// Calculate scale to fit the die within the drawing area
	scaleX := drawWidth / nl.Die.Width
	scaleY := drawHeight / nl.Die.Height
	scale := math.Min(scaleX, scaleY)

	canvasW := nl.Die.Width * scale
	canvasH := nl.Die.Height * scale

	// Center the drawing horizontally
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Draw die background
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Net connections under the modules
	drawNetLines(pdf, nl, result.Placement, scale, offsetX, offsetY)

	// Draw placed modules
	for i, m := range nl.Modules {
		pos, ok := result.Placement[m.ID]
		if !ok {
			continue
		}
		col := moduleColors[i%len(moduleColors)]
		mw := m.Width * scale
		mh := m.Height * scale
		mx := offsetX + pos.X*scale
		my := offsetY + pos.Y*scale

		// Module fill
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(mx, my, mw, mh, "FD")

		// Module label (only if rectangle is large enough)
		if mw > 12 && mh > 7 {
			pdf.SetFont("Helvetica", "", labelFontSize(mw, mh))
			pdf.SetTextColor(0, 0, 0)

			label := m.Label
			dims := fmt.Sprintf("%.0fx%.0f", m.Width, m.Height)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			// First line: label
			if labelW < mw-2 {
				pdf.SetXY(mx+(mw-labelW)/2, my+mh/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}

			// Second line: dimensions
			if mh > 12 && dimsW < mw-2 {
				pdf.SetXY(mx+(mw-dimsW)/2, my+mh/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	// Dimension annotations along the edges
	drawDimensionAnnotations(pdf, nl.Die, scale, offsetX, offsetY, canvasW, canvasH)

	// Module legend at bottom of page
	drawModuleLegend(pdf, nl, offsetY+canvasH+5)
}

// drawNetLines renders each net as lines from every member center to the
// net's bounding-box center.
func drawNetLines(pdf *fpdf.Fpdf, nl model.Netlist, p model.Placement, scale, offsetX, offsetY float64) {
	pdf.SetDrawColor(90, 90, 90)
	pdf.SetLineWidth(0.2)

	for _, net := range nl.Nets {
		type pt struct{ x, y float64 }
		var centers []pt
		for _, id := range net.Modules {
			m, ok := nl.ModuleByID(id)
			if !ok {
				continue
			}
			pos, placed := p[id]
			if !placed {
				continue
			}
			centers = append(centers, pt{
				x: offsetX + (pos.X+m.Width/2)*scale,
				y: offsetY + (pos.Y+m.Height/2)*scale,
			})
		}
		if len(centers) < 2 {
			continue
		}

		var cx, cy float64
		for _, c := range centers {
			cx += c.x
			cy += c.y
		}
		cx /= float64(len(centers))
		cy /= float64(len(centers))

		for _, c := range centers {
			pdf.Line(cx, cy, c.x, c.y)
		}
	}
}

// drawDimensionAnnotations adds width and height dimension labels outside the die rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, die model.Die, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the die)
	widthLabel := fmt.Sprintf("%.0f", die.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the die, rotated)
	heightLabel := fmt.Sprintf("%.0f", die.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	// Reset text color
	pdf.SetTextColor(0, 0, 0)
}

// drawModuleLegend renders a compact legend of placed modules at the bottom of the die page.
func drawModuleLegend(pdf *fpdf.Fpdf, nl model.Netlist, startY float64) {
	if len(nl.Modules) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Modules:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, m := range nl.Modules {
		col := moduleColors[i%len(moduleColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f)", m.Label, m.Width, m.Height)
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		// Color swatch
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		// Label text
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderConvergencePage draws the best-cost trace of the annealing run as a line chart.
func renderConvergencePage(pdf *fpdf.Fpdf, result model.PlaceResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Convergence", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	line := fmt.Sprintf("Iterations: %d | Accepted moves: %d | Final cost: %.3f | Seed: %d",
		result.Iterations, result.AcceptedMoves, result.Cost.Total, result.Seed)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, line, "", 0, "L", false, 0, "")

	chartX := marginLeft + 10
	chartY := drawAreaTop + 5
	chartW := pageWidth - marginLeft - marginRight - 20
	chartH := pageHeight - chartY - marginBottom - 10

	// Axes
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.Line(chartX, chartY, chartX, chartY+chartH)
	pdf.Line(chartX, chartY+chartH, chartX+chartW, chartY+chartH)

	minCost, maxCost := result.Trace[0], result.Trace[0]
	for _, c := range result.Trace {
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

	// Axis labels
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(chartX-8, chartY-2)
	pdf.CellFormat(16, 4, fmt.Sprintf("%.1f", maxCost), "", 0, "L", false, 0, "")
	pdf.SetXY(chartX-8, chartY+chartH-4)
	pdf.CellFormat(16, 4, fmt.Sprintf("%.1f", minCost), "", 0, "L", false, 0, "")
	pdf.SetXY(chartX+chartW-20, chartY+chartH+2)
	pdf.CellFormat(20, 4, fmt.Sprintf("%d", len(result.Trace)), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// Downsample to at most one point per horizontal half-millimeter
	step := 1
	maxPoints := int(chartW * 2)
	if len(result.Trace) > maxPoints {
		step = len(result.Trace) / maxPoints
	}

	pdf.SetDrawColor(33, 150, 243)
	pdf.SetLineWidth(0.3)
	n := len(result.Trace)
	prevX := chartX
	prevY := chartY + chartH - (result.Trace[0]-minCost)/span*chartH
	for i := step; i < n; i += step {
		x := chartX + float64(i)/float64(n-1)*chartW
		y := chartY + chartH - (result.Trace[i]-minCost)/span*chartH
		pdf.Line(prevX, prevY, x, y)
		prevX, prevY = x, y
	}
}

// renderSummaryPage draws the final summary page with the cost breakdown
// and per-net wirelengths.
func renderSummaryPage(pdf *fpdf.Fpdf, nl model.Netlist, result model.PlaceResult, settings model.PlaceSettings) {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Placement Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	stats := model.ComputeStats(nl, result.Placement)

	// Cost breakdown
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cost Breakdown", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Wirelength", fmt.Sprintf("%.3f", result.Cost.Wirelength)},
		{"Overlap", fmt.Sprintf("%.3f", result.Cost.Overlap)},
		{"Boundary", fmt.Sprintf("%.3f", result.Cost.Boundary)},
		{"Total", fmt.Sprintf("%.3f", result.Cost.Total)},
		{"Utilization", fmt.Sprintf("%.1f%%", stats.Utilization)},
		{"Overlapping Pairs", fmt.Sprintf("%d", stats.OverlappingPairs)},
		{"Out of Bounds", fmt.Sprintf("%d", stats.OutOfBounds)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-net wirelength table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Net Wirelengths", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{50, 110, 35}
	headers := []string{"Net", "Modules", "Length"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	lengths := make(map[string]float64, len(stats.NetLengths))
	for _, n := range stats.NetLengths {
		lengths[n.NetLabel] = n.Length
	}

	pdf.SetFont("Helvetica", "", 9)
	for i, net := range nl.Nets {
		if y > pageHeight-marginBottom-20 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			net.Label,
			memberLabels(nl, net.Modules),
			fmt.Sprintf("%.3f", lengths[net.Label]),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Annealing settings summary
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Annealing Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Initial Temperature", fmt.Sprintf("%.1f", settings.InitialTemperature)},
		{"Cooling Rate", fmt.Sprintf("%.4f", settings.CoolingRate)},
		{"Max Iterations", fmt.Sprintf("%d", settings.MaxIterations)},
		{"Schedule", string(settings.Schedule)},
		{"Move Policy", string(settings.MovePolicy)},
		{"Restarts", fmt.Sprintf("%d", settings.Restarts)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by ChipPlace - Annealing Floorplacer", "", 0, "C", false, 0, "")
}

// memberLabels joins the labels of a net's member modules.
func memberLabels(nl model.Netlist, ids []string) string {
	out := ""
	for i, id := range ids {
		m, ok := nl.ModuleByID(id)
		if !ok {
			continue
		}
		if i > 0 {
			out += ", "
		}
		out += m.Label
	}
	return out
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
