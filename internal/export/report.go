package export

import (
	"fmt"

	"github.com/piwi3910/ChipPlace/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportReport writes an Excel workbook with three sheets: the placed
// module coordinates, per-net wirelengths, and a run summary.
func ExportReport(path string, nl model.Netlist, result model.PlaceResult, settings model.PlaceSettings) error {
	if len(result.Placement) == 0 {
		return fmt.Errorf("no placement to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writePlacementSheet(f, nl, result); err != nil {
		return err
	}
	if err := writeNetSheet(f, nl, result); err != nil {
		return err
	}
	if err := writeSummarySheet(f, nl, result, settings); err != nil {
		return err
	}

	// The default "Sheet1" is replaced by our sheets
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("cannot remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save report: %w", err)
	}
	return nil
}

func writePlacementSheet(f *excelize.File, nl model.Netlist, result model.PlaceResult) error {
	const sheet = "Placement"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("cannot create sheet: %w", err)
	}

	header := []interface{}{"Module", "ID", "X", "Y", "Width", "Height", "Area"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}

	rowNum := 2
	for _, m := range nl.Modules {
		pos, ok := result.Placement[m.ID]
		if !ok {
			continue
		}
		row := []interface{}{m.Label, m.ID, pos.X, pos.Y, m.Width, m.Height, m.Area()}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("cannot write row: %w", err)
		}
		rowNum++
	}
	return nil
}

func writeNetSheet(f *excelize.File, nl model.Netlist, result model.PlaceResult) error {
	const sheet = "Nets"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("cannot create sheet: %w", err)
	}

	header := []interface{}{"Net", "Pins", "Modules", "Wirelength"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}

	stats := model.ComputeStats(nl, result.Placement)
	lengths := make(map[string]float64, len(stats.NetLengths))
	for _, n := range stats.NetLengths {
		lengths[n.NetLabel] = n.Length
	}

	for i, net := range nl.Nets {
		row := []interface{}{net.Label, len(net.Modules), memberLabels(nl, net.Modules), lengths[net.Label]}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("cannot write row: %w", err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, nl model.Netlist, result model.PlaceResult, settings model.PlaceSettings) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("cannot create sheet: %w", err)
	}

	stats := model.ComputeStats(nl, result.Placement)
	rows := [][]interface{}{
		{"Netlist", nl.Name},
		{"Die", fmt.Sprintf("%.1f x %.1f", nl.Die.Width, nl.Die.Height)},
		{"Modules", len(nl.Modules)},
		{"Nets", len(nl.Nets)},
		{"Utilization %", stats.Utilization},
		{},
		{"Wirelength cost", result.Cost.Wirelength},
		{"Overlap cost", result.Cost.Overlap},
		{"Boundary cost", result.Cost.Boundary},
		{"Total cost", result.Cost.Total},
		{"Overlapping pairs", stats.OverlappingPairs},
		{"Out of bounds", stats.OutOfBounds},
		{},
		{"Iterations", result.Iterations},
		{"Accepted moves", result.AcceptedMoves},
		{"Seed", result.Seed},
		{"Initial temperature", settings.InitialTemperature},
		{"Cooling rate", settings.CoolingRate},
		{"Schedule", string(settings.Schedule)},
		{"Move policy", string(settings.MovePolicy)},
		{"Restarts", settings.Restarts},
	}

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("cannot write row: %w", err)
		}
	}
	return nil
}
