package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/ChipPlace/internal/engine"
	"github.com/piwi3910/ChipPlace/internal/export"
	netimporter "github.com/piwi3910/ChipPlace/internal/importer"
	"github.com/piwi3910/ChipPlace/internal/model"
	"github.com/piwi3910/ChipPlace/internal/project"
	"github.com/piwi3910/ChipPlace/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	window fyne.Window
	proj   model.Project
	config model.AppConfig
	tabs   *container.AppTabs

	// UI references for dynamic updates
	modulesContainer *fyne.Container
	netsContainer    *fyne.Container
	resultContainer  *fyne.Container
}

func NewApp(window fyne.Window) *App {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		config = model.DefaultAppConfig()
	}
	proj := model.NewProject()
	config.ApplyToSettings(&proj.Settings)
	return &App{
		window: window,
		proj:   proj,
		config: config,
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.proj = model.NewProject()
			a.config.ApplyToSettings(&a.proj.Settings)
			a.refreshModulesList()
			a.refreshNetsList()
			a.refreshResults()
		}),
		fyne.NewMenuItem("Open Project...", func() {
			a.loadProject()
		}),
		fyne.NewMenuItem("Save Project...", func() {
			a.saveProject()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Modules from CSV...", func() {
			a.importCSV()
		}),
		fyne.NewMenuItem("Import Modules from Excel...", func() {
			a.importExcel()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Report...", func() {
			a.exportWith("placement.pdf", func(path string) error {
				return export.ExportPDF(path, a.proj.Netlist, *a.proj.Result, a.proj.Settings)
			})
		}),
		fyne.NewMenuItem("Export Excel Report...", func() {
			a.exportWith("placement.xlsx", func(path string) error {
				return export.ExportReport(path, a.proj.Netlist, *a.proj.Result, a.proj.Settings)
			})
		}),
		fyne.NewMenuItem("Export DXF...", func() {
			a.exportWith("placement.dxf", func(path string) error {
				return export.ExportDXF(path, a.proj.Netlist, *a.proj.Result)
			})
		}),
		fyne.NewMenuItem("Export Module Labels...", func() {
			a.exportWith("labels.pdf", func(path string) error {
				return export.ExportLabels(path, a.proj.Netlist, *a.proj.Result)
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	// Edit Menu
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Clear All Modules", func() {
			a.proj.Netlist.Modules = nil
			a.proj.Netlist.Nets = nil
			a.refreshModulesList()
			a.refreshNetsList()
		}),
		fyne.NewMenuItem("Clear All Nets", func() {
			a.proj.Netlist.Nets = nil
			a.refreshNetsList()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Load Demo Netlist", func() {
			a.proj.Netlist = model.DemoNetlist()
			a.refreshModulesList()
			a.refreshNetsList()
		}),
	)

	// Tools Menu
	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Place", func() {
			a.runPlace()
			a.tabs.SelectIndex(3) // Switch to Results tab
		}),
	)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	mainMenu := fyne.NewMainMenu(
		fileMenu,
		editMenu,
		toolsMenu,
		helpMenu,
	)
	a.window.SetMainMenu(mainMenu)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About ChipPlace",
		"ChipPlace — Annealing Floorplacer\n\n"+
			"A cross-platform desktop application for placing\n"+
			"rectangular modules on a die by simulated annealing.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	modulesTab := container.NewTabItem("Modules", a.buildModulesPanel())
	netsTab := container.NewTabItem("Nets", a.buildNetsPanel())
	settingsTab := container.NewTabItem("Annealing", a.buildSettingsPanel())
	resultsTab := container.NewTabItem("Results", a.buildResultsPanel())

	a.tabs = container.NewAppTabs(modulesTab, netsTab, settingsTab, resultsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return a.tabs
}

// ─── Modules Panel ─────────────────────────────────────────

func (a *App) buildModulesPanel() fyne.CanvasObject {
	a.modulesContainer = container.NewVBox()
	a.refreshModulesList()

	addBtn := widget.NewButtonWithIcon("Add Module", theme.ContentAddIcon(), func() {
		a.showAddModuleDialog()
	})
	dieBtn := widget.NewButtonWithIcon("Die Size", theme.SettingsIcon(), func() {
		a.showDieDialog()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Modules", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			dieBtn,
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.modulesContainer),
	)
}

func (a *App) refreshModulesList() {
	a.modulesContainer.RemoveAll()

	die := a.proj.Netlist.Die
	a.modulesContainer.Add(widget.NewLabel(fmt.Sprintf("Die: %.1f x %.1f", die.Width, die.Height)))
	a.modulesContainer.Add(widget.NewSeparator())

	if len(a.proj.Netlist.Modules) == 0 {
		a.modulesContainer.Add(widget.NewLabel("No modules added yet. Click 'Add Module' to begin."))
		return
	}

	header := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Label", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Width", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Height", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.modulesContainer.Add(header)
	a.modulesContainer.Add(widget.NewSeparator())

	for i := range a.proj.Netlist.Modules {
		idx := i // capture
		m := a.proj.Netlist.Modules[idx]
		row := container.NewGridWithColumns(5,
			widget.NewLabel(m.Label),
			widget.NewLabel(fmt.Sprintf("%.1f", m.Width)),
			widget.NewLabel(fmt.Sprintf("%.1f", m.Height)),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showEditModuleDialog(idx)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.removeModule(idx)
			}),
		)
		a.modulesContainer.Add(row)
	}
}

// removeModule deletes a module and drops it from every net. Nets left
// with fewer than two pins are removed as well.
func (a *App) removeModule(idx int) {
	nl := &a.proj.Netlist
	id := nl.Modules[idx].ID
	nl.Modules = append(nl.Modules[:idx], nl.Modules[idx+1:]...)

	kept := nl.Nets[:0]
	for _, net := range nl.Nets {
		members := net.Modules[:0]
		for _, mid := range net.Modules {
			if mid != id {
				members = append(members, mid)
			}
		}
		net.Modules = members
		if len(net.Modules) >= 2 {
			kept = append(kept, net)
		}
	}
	nl.Nets = kept

	a.refreshModulesList()
	a.refreshNetsList()
}

func (a *App) showDieDialog() {
	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.1f", a.proj.Netlist.Die.Width))

	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.1f", a.proj.Netlist.Die.Height))

	form := dialog.NewForm("Die Size", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Width", widthEntry),
			widget.NewFormItem("Height", heightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			if w <= 0 || h <= 0 {
				dialog.ShowError(fmt.Errorf("die width and height must be > 0"), a.window)
				return
			}
			a.proj.Netlist.Die = model.Die{Width: w, Height: h}
			a.refreshModulesList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(350, 250))
	form.Show()
}

func (a *App) showAddModuleDialog() {
	labelEntry := widget.NewEntry()
	labelEntry.SetPlaceHolder("Module name")
	labelEntry.SetText(fmt.Sprintf("Module %d", len(a.proj.Netlist.Modules)+1))

	widthEntry := widget.NewEntry()
	widthEntry.SetPlaceHolder("Width")

	heightEntry := widget.NewEntry()
	heightEntry.SetPlaceHolder("Height")

	form := dialog.NewForm("Add Module", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Label", labelEntry),
			widget.NewFormItem("Width", widthEntry),
			widget.NewFormItem("Height", heightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			if w <= 0 || h <= 0 {
				dialog.ShowError(fmt.Errorf("width and height must be > 0"), a.window)
				return
			}

			a.proj.Netlist.Modules = append(a.proj.Netlist.Modules, model.NewModule(labelEntry.Text, w, h))
			a.refreshModulesList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

func (a *App) showEditModuleDialog(idx int) {
	m := a.proj.Netlist.Modules[idx]

	labelEntry := widget.NewEntry()
	labelEntry.SetText(m.Label)

	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.1f", m.Width))

	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.1f", m.Height))

	form := dialog.NewForm("Edit Module", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Label", labelEntry),
			widget.NewFormItem("Width", widthEntry),
			widget.NewFormItem("Height", heightEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			w, _ := strconv.ParseFloat(widthEntry.Text, 64)
			h, _ := strconv.ParseFloat(heightEntry.Text, 64)
			if w <= 0 || h <= 0 {
				dialog.ShowError(fmt.Errorf("width and height must be > 0"), a.window)
				return
			}

			a.proj.Netlist.Modules[idx].Label = labelEntry.Text
			a.proj.Netlist.Modules[idx].Width = w
			a.proj.Netlist.Modules[idx].Height = h
			a.refreshModulesList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 300))
	form.Show()
}

// ─── Nets Panel ────────────────────────────────────────────

func (a *App) buildNetsPanel() fyne.CanvasObject {
	a.netsContainer = container.NewVBox()
	a.refreshNetsList()

	addBtn := widget.NewButtonWithIcon("Add Net", theme.ContentAddIcon(), func() {
		a.showAddNetDialog()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Nets", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.netsContainer),
	)
}

func (a *App) refreshNetsList() {
	a.netsContainer.RemoveAll()

	if len(a.proj.Netlist.Nets) == 0 {
		a.netsContainer.Add(widget.NewLabel("No nets defined. Click 'Add Net' to connect modules."))
		return
	}

	header := container.NewGridWithColumns(4,
		widget.NewLabelWithStyle("Label", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Modules", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.netsContainer.Add(header)
	a.netsContainer.Add(widget.NewSeparator())

	for i := range a.proj.Netlist.Nets {
		idx := i
		n := a.proj.Netlist.Nets[idx]
		row := container.NewGridWithColumns(4,
			widget.NewLabel(n.Label),
			widget.NewLabel(a.memberSummary(n)),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showEditNetDialog(idx)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.proj.Netlist.Nets = append(a.proj.Netlist.Nets[:idx], a.proj.Netlist.Nets[idx+1:]...)
				a.refreshNetsList()
			}),
		)
		a.netsContainer.Add(row)
	}
}

func (a *App) memberSummary(n model.Net) string {
	labels := make([]string, 0, len(n.Modules))
	for _, id := range n.Modules {
		if m, ok := a.proj.Netlist.ModuleByID(id); ok {
			labels = append(labels, m.Label)
		}
	}
	return strings.Join(labels, ", ")
}

// parseNetMembers resolves a comma-separated list of module labels to IDs.
func (a *App) parseNetMembers(text string) ([]string, error) {
	var ids []string
	for _, raw := range strings.Split(text, ",") {
		label := strings.TrimSpace(raw)
		if label == "" {
			continue
		}
		m, ok := a.proj.Netlist.ModuleByLabel(label)
		if !ok {
			return nil, fmt.Errorf("unknown module %q", label)
		}
		ids = append(ids, m.ID)
	}
	if len(ids) < 2 {
		return nil, fmt.Errorf("a net must connect at least 2 modules")
	}
	return ids, nil
}

func (a *App) showAddNetDialog() {
	labelEntry := widget.NewEntry()
	labelEntry.SetText(fmt.Sprintf("N%02d", len(a.proj.Netlist.Nets)+1))

	membersEntry := widget.NewEntry()
	membersEntry.SetPlaceHolder("Module labels, comma separated")

	form := dialog.NewForm("Add Net", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Label", labelEntry),
			widget.NewFormItem("Modules", membersEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			ids, err := a.parseNetMembers(membersEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.proj.Netlist.Nets = append(a.proj.Netlist.Nets, model.NewNet(labelEntry.Text, ids...))
			a.refreshNetsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 250))
	form.Show()
}

func (a *App) showEditNetDialog(idx int) {
	n := a.proj.Netlist.Nets[idx]

	labelEntry := widget.NewEntry()
	labelEntry.SetText(n.Label)

	membersEntry := widget.NewEntry()
	membersEntry.SetText(a.memberSummary(n))

	form := dialog.NewForm("Edit Net", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Label", labelEntry),
			widget.NewFormItem("Modules", membersEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			ids, err := a.parseNetMembers(membersEntry.Text)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.proj.Netlist.Nets[idx].Label = labelEntry.Text
			a.proj.Netlist.Nets[idx].Modules = ids
			a.refreshNetsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 250))
	form.Show()
}

// ─── Annealing Settings Panel ──────────────────────────────

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	s := &a.proj.Settings

	// Helper to create a bound float entry
	floatEntry := func(val *float64, format string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf(format, *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	seedEntry := widget.NewEntry()
	seedEntry.SetText(fmt.Sprintf("%d", s.Seed))
	seedEntry.OnChanged = func(text string) {
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			s.Seed = v
		}
	}

	scheduleSelect := widget.NewSelect([]string{"Geometric (T *= rate)", "Linear"}, func(selected string) {
		if selected == "Linear" {
			s.Schedule = model.ScheduleLinear
		} else {
			s.Schedule = model.ScheduleGeometric
		}
	})
	if s.Schedule == model.ScheduleLinear {
		scheduleSelect.SetSelected("Linear")
	} else {
		scheduleSelect.SetSelected("Geometric (T *= rate)")
	}

	moveSelect := widget.NewSelect([]string{"Uniform (anywhere on die)", "Window (near current spot)"}, func(selected string) {
		if strings.HasPrefix(selected, "Window") {
			s.MovePolicy = model.MoveWindow
		} else {
			s.MovePolicy = model.MoveUniform
		}
	})
	if s.MovePolicy == model.MoveWindow {
		moveSelect.SetSelected("Window (near current spot)")
	} else {
		moveSelect.SetSelected("Uniform (anywhere on die)")
	}

	costSection := widget.NewCard("Cost Weights", "", container.NewGridWithColumns(2,
		widget.NewLabel("Wirelength Weight"), floatEntry(&s.WirelengthWeight, "%.1f"),
		widget.NewLabel("Overlap Weight"), floatEntry(&s.OverlapWeight, "%.1f"),
		widget.NewLabel("Boundary Weight"), floatEntry(&s.BoundaryWeight, "%.1f"),
	))

	annealSection := widget.NewCard("Annealing", "", container.NewGridWithColumns(2,
		widget.NewLabel("Preset"), a.buildPresetSelector(),
		widget.NewLabel("Initial Temperature"), floatEntry(&s.InitialTemperature, "%.1f"),
		widget.NewLabel("Cooling Rate"), floatEntry(&s.CoolingRate, "%.4f"),
		widget.NewLabel("Stop Temperature"), floatEntry(&s.StopThreshold, "%.4f"),
		widget.NewLabel("Max Iterations"), intEntry(&s.MaxIterations),
		widget.NewLabel("Schedule"), scheduleSelect,
	))

	moveSection := widget.NewCard("Moves", "", container.NewGridWithColumns(2,
		widget.NewLabel("Move Policy"), moveSelect,
		widget.NewLabel("Window Fraction"), floatEntry(&s.WindowFraction, "%.2f"),
		widget.NewLabel("Seed"), seedEntry,
		widget.NewLabel("Parallel Restarts"), intEntry(&s.Restarts),
	))

	placeBtn := widget.NewButtonWithIcon("Place", theme.MediaPlayIcon(), func() {
		a.runPlace()
		a.tabs.SelectIndex(3)
	})
	placeBtn.Importance = widget.HighImportance

	return container.NewVScroll(container.NewVBox(
		costSection,
		annealSection,
		moveSection,
		placeBtn,
	))
}

func (a *App) buildPresetSelector() *widget.Select {
	presets, err := project.AllPresets(project.DefaultPresetsPath())
	if err != nil {
		presets = model.BuiltinPresets()
	}
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	selector := widget.NewSelect(names, func(selected string) {
		if p, ok := model.PresetByName(presets, selected); ok {
			a.proj.Settings = p.Settings
			// Rebuild so the entries pick up the preset values
			a.tabs.Items[2].Content = a.buildSettingsPanel()
			a.tabs.Refresh()
		}
	})
	selector.PlaceHolder = "Apply a preset..."
	return selector
}

// ─── Results Panel ─────────────────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.resultContainer = container.NewStack(
		widget.NewLabel("No results yet. Add modules and nets, then click Place."),
	)
	return a.resultContainer
}

func (a *App) refreshResults() {
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderPlacementResult(a.proj.Netlist, a.proj.Result))
	a.resultContainer.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

func (a *App) runPlace() {
	if len(a.proj.Netlist.Modules) == 0 {
		dialog.ShowInformation("Nothing to place", "Add at least one module first.", a.window)
		return
	}

	result, err := engine.Place(a.proj.Netlist, a.proj.Settings)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.proj.Result = &result
	a.refreshResults()

	record := model.NewRunRecord(a.proj.Netlist, result)
	if err := project.AppendRun(project.DefaultHistoryPath(), record, a.config.HistoryLimit); err != nil {
		// History is best effort; the run itself succeeded
		fmt.Printf("cannot record run history: %v\n", err)
	}
}

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SaveProject(path, a.proj); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.config.AddRecentProject(path)
		if err := project.SaveAppConfig(project.DefaultConfigPath(), a.config); err != nil {
			fmt.Printf("cannot save config: %v\n", err)
		}
	}, a.window)
	d.SetFileName(a.proj.Name + ".json")
	d.Show()
}

func (a *App) loadProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		proj, err := project.LoadProject(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.proj = proj
		a.config.AddRecentProject(reader.URI().Path())
		a.refreshModulesList()
		a.refreshNetsList()
		if a.proj.Result != nil {
			a.refreshResults()
		}
	}, a.window)
	d.Show()
}

// exportWith prompts for a save location and runs the export function.
// Requires a finished placement.
func (a *App) exportWith(defaultName string, fn func(path string) error) {
	if a.proj.Result == nil || len(a.proj.Result.Placement) == 0 {
		dialog.ShowInformation("No results", "Run the placer first before exporting.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := fn(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete",
			fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := netimporter.ImportCSV(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) importExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := netimporter.ImportExcel(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) handleImportResult(result netimporter.ImportResult) {
	// Show errors if any
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	// Show warnings if any
	if len(result.Warnings) > 0 {
		// Just log warnings, don't block
		fmt.Printf("Import warnings: %v\n", result.Warnings)
	}

	// Add imported modules and nets
	if len(result.Modules) > 0 {
		a.proj.Netlist.Modules = append(a.proj.Netlist.Modules, result.Modules...)
		a.proj.Netlist.Nets = append(a.proj.Netlist.Nets, result.Nets...)
		a.refreshModulesList()
		a.refreshNetsList()

		msg := fmt.Sprintf("Successfully imported %d modules and %d nets.", len(result.Modules), len(result.Nets))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}
