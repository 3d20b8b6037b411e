package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ChipPlace/internal/engine"
	"github.com/piwi3910/ChipPlace/internal/export"
	"github.com/piwi3910/ChipPlace/internal/importer"
	"github.com/piwi3910/ChipPlace/internal/model"
	"github.com/piwi3910/ChipPlace/internal/project"
)

// placeOptions collects the flags of the place command.
type placeOptions struct {
	input   string
	builtin string
	preset  string
	output  string

	dieWidth  float64
	dieHeight float64

	wirelengthWeight float64
	overlapWeight    float64
	boundaryWeight   float64

	temperature float64
	cooling     float64
	iterations  int
	schedule    string
	movePolicy  string
	window      float64
	seed        int64
	restarts    int

	pdfPath    string
	dxfPath    string
	reportPath string
	labelsPath string

	noHistory bool
}

func newPlaceCmd() *cobra.Command {
	opts := &placeOptions{}

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Run simulated annealing on a netlist",
		Long: `Place loads a netlist from a CSV, Excel, or project JSON file (or one of
the built-in examples), runs the annealing placer, and writes the solved
project back out. Optional flags export the result as a PDF report, DXF
drawing, Excel workbook, or QR label sheet.`,
		Example: `  chipplace place --netlist demo --output demo.json
  chipplace place --input modules.csv --die-width 30 --die-height 30 --pdf report.pdf
  chipplace place --input chip.json --preset Thorough --restarts 8 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlace(cmd, opts)
		},
	}

	defaults := model.DefaultPlaceSettings()

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "netlist file (.csv, .xlsx, or project .json)")
	cmd.Flags().StringVar(&opts.builtin, "netlist", "", "built-in netlist name (see 'chipplace netlists')")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "annealing preset name (Quick, Standard, Thorough, Compact)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the solved project JSON to this path")

	cmd.Flags().Float64Var(&opts.dieWidth, "die-width", 20, "die width for CSV/Excel inputs")
	cmd.Flags().Float64Var(&opts.dieHeight, "die-height", 20, "die height for CSV/Excel inputs")

	cmd.Flags().Float64Var(&opts.wirelengthWeight, "wirelength-weight", defaults.WirelengthWeight, "weight of the wirelength cost term")
	cmd.Flags().Float64Var(&opts.overlapWeight, "overlap-weight", defaults.OverlapWeight, "weight of the overlap cost term")
	cmd.Flags().Float64Var(&opts.boundaryWeight, "boundary-weight", defaults.BoundaryWeight, "weight of the boundary cost term")

	cmd.Flags().Float64Var(&opts.temperature, "temperature", defaults.InitialTemperature, "initial annealing temperature")
	cmd.Flags().Float64Var(&opts.cooling, "cooling", defaults.CoolingRate, "geometric cooling rate (0 < rate < 1)")
	cmd.Flags().IntVar(&opts.iterations, "iterations", defaults.MaxIterations, "maximum annealing iterations")
	cmd.Flags().StringVar(&opts.schedule, "schedule", string(defaults.Schedule), "cooling schedule: geometric or linear")
	cmd.Flags().StringVar(&opts.movePolicy, "move", string(defaults.MovePolicy), "move policy: uniform or window")
	cmd.Flags().Float64Var(&opts.window, "window", defaults.WindowFraction, "window size as a fraction of each die dimension")
	cmd.Flags().Int64Var(&opts.seed, "seed", defaults.Seed, "random seed")
	cmd.Flags().IntVar(&opts.restarts, "restarts", defaults.Restarts, "independent seeded runs; best result wins")

	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "export a PDF report to this path")
	cmd.Flags().StringVar(&opts.dxfPath, "dxf", "", "export a DXF drawing to this path")
	cmd.Flags().StringVar(&opts.reportPath, "xlsx", "", "export an Excel report to this path")
	cmd.Flags().StringVar(&opts.labelsPath, "labels", "", "export a QR label sheet PDF to this path")

	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "skip recording the run in ~/.chipplace/history.json")

	return cmd
}

func runPlace(cmd *cobra.Command, opts *placeOptions) error {
	logger := loggerFromContext(cmd.Context())

	proj, err := loadInput(cmd, opts)
	if err != nil {
		return err
	}
	nl := proj.Netlist
	logger.Infof("Loaded netlist %q: %d modules, %d nets, die %gx%g",
		nl.Name, len(nl.Modules), len(nl.Nets), nl.Die.Width, nl.Die.Height)

	settings, err := buildSettings(cmd, opts, proj.Settings)
	if err != nil {
		return err
	}
	proj.Settings = settings
	logger.Debugf("Settings: T=%g rate=%g iterations=%d schedule=%s move=%s seed=%d restarts=%d",
		settings.InitialTemperature, settings.CoolingRate, settings.MaxIterations,
		settings.Schedule, settings.MovePolicy, settings.Seed, settings.Restarts)

	prog := newProgress(logger)
	result, err := engine.Place(nl, settings)
	if err != nil {
		return fmt.Errorf("placement failed: %w", err)
	}
	prog.done(fmt.Sprintf("Placed %d modules", len(nl.Modules)))
	proj.Result = &result

	stats := model.ComputeStats(nl, result.Placement)
	logger.Infof("Cost: %.3f (wirelength %.3f, overlap %.3f, boundary %.3f)",
		result.Cost.Total, result.Cost.Wirelength, result.Cost.Overlap, result.Cost.Boundary)
	logger.Infof("Accepted %d of %d moves, winning seed %d",
		result.AcceptedMoves, result.Iterations, result.Seed)
	logger.Infof("Utilization %.1f%%, HPWL %.3f", stats.Utilization, stats.TotalHPWL)
	if stats.OverlappingPairs > 0 {
		logger.Warnf("%d module pairs still overlap; try a higher --overlap-weight or more --iterations", stats.OverlappingPairs)
	}
	if stats.OutOfBounds > 0 {
		logger.Warnf("%d modules extend past the die edge", stats.OutOfBounds)
	}

	if !opts.noHistory {
		config, cfgErr := project.LoadAppConfig(project.DefaultConfigPath())
		if cfgErr != nil {
			config = model.DefaultAppConfig()
		}
		record := model.NewRunRecord(nl, result)
		if err := project.AppendRun(project.DefaultHistoryPath(), record, config.HistoryLimit); err != nil {
			logger.Debugf("Could not record run history: %v", err)
		}
	}

	if opts.output != "" {
		if err := project.SaveProject(opts.output, proj); err != nil {
			return fmt.Errorf("writing project: %w", err)
		}
		logger.Infof("Wrote project to %s", opts.output)
	}
	return runExports(cmd, opts, nl, result, settings)
}

// runExports writes whichever export formats were requested.
func runExports(cmd *cobra.Command, opts *placeOptions, nl model.Netlist, result model.PlaceResult, settings model.PlaceSettings) error {
	logger := loggerFromContext(cmd.Context())
	exports := []struct {
		path string
		name string
		fn   func(string) error
	}{
		{opts.pdfPath, "PDF report", func(p string) error { return export.ExportPDF(p, nl, result, settings) }},
		{opts.dxfPath, "DXF drawing", func(p string) error { return export.ExportDXF(p, nl, result) }},
		{opts.reportPath, "Excel report", func(p string) error { return export.ExportReport(p, nl, result, settings) }},
		{opts.labelsPath, "label sheet", func(p string) error { return export.ExportLabels(p, nl, result) }},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.fn(e.path); err != nil {
			return fmt.Errorf("exporting %s: %w", e.name, err)
		}
		logger.Infof("Wrote %s to %s", e.name, e.path)
	}
	return nil
}

// loadInput resolves the --input / --netlist flags into a project.
// CSV and Excel inputs produce a fresh project with the flag-specified die;
// JSON inputs load a saved project including its settings.
func loadInput(cmd *cobra.Command, opts *placeOptions) (model.Project, error) {
	logger := loggerFromContext(cmd.Context())

	switch {
	case opts.input != "" && opts.builtin != "":
		return model.Project{}, fmt.Errorf("--input and --netlist are mutually exclusive")
	case opts.builtin != "":
		nl, err := builtinNetlist(opts.builtin)
		if err != nil {
			return model.Project{}, err
		}
		proj := model.NewProject()
		proj.Name = nl.Name
		proj.Netlist = nl
		return proj, nil
	case opts.input == "":
		return model.Project{}, fmt.Errorf("either --input or --netlist is required")
	}

	switch strings.ToLower(filepath.Ext(opts.input)) {
	case ".json":
		return project.LoadProject(opts.input)
	case ".csv":
		return projectFromImport(logger.Warnf, importer.ImportCSV(opts.input), opts)
	case ".xlsx":
		return projectFromImport(logger.Warnf, importer.ImportExcel(opts.input), opts)
	default:
		return model.Project{}, fmt.Errorf("unsupported input format %q (want .csv, .xlsx, or .json)", filepath.Ext(opts.input))
	}
}

// projectFromImport converts an import result into a fresh project using
// the die dimensions from the flags. Row errors are fatal in the CLI so
// scripted runs never silently place a partial netlist.
func projectFromImport(warnf func(string, ...interface{}), res importer.ImportResult, opts *placeOptions) (model.Project, error) {
	for _, w := range res.Warnings {
		warnf("%s", w)
	}
	if len(res.Errors) > 0 {
		return model.Project{}, fmt.Errorf("import failed: %s", strings.Join(res.Errors, "; "))
	}
	if len(res.Modules) == 0 {
		return model.Project{}, fmt.Errorf("import produced no modules")
	}

	name := strings.TrimSuffix(filepath.Base(opts.input), filepath.Ext(opts.input))
	proj := model.NewProject()
	proj.Name = name
	proj.Netlist = model.Netlist{
		Name:    name,
		Modules: res.Modules,
		Nets:    res.Nets,
		Die:     model.Die{Width: opts.dieWidth, Height: opts.dieHeight},
	}
	return proj, nil
}

// builtinNetlist finds a built-in netlist by name. Matching is
// case-insensitive and accepts a unique prefix, so "demo" selects
// "Demo A-J (20x20)". An exact match wins outright; an ambiguous
// prefix is an error rather than a silent first pick.
func builtinNetlist(name string) (model.Netlist, error) {
	available := model.BuiltinNetlists()
	names := make([]string, 0, len(available))
	var matches []model.Netlist
	for _, nl := range available {
		if strings.EqualFold(nl.Name, name) {
			return nl, nil
		}
		if strings.HasPrefix(strings.ToLower(nl.Name), strings.ToLower(name)) {
			matches = append(matches, nl)
		}
		names = append(names, nl.Name)
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.Netlist{}, fmt.Errorf("unknown netlist %q (available: %s)", name, strings.Join(names, ", "))
	default:
		ambiguous := make([]string, len(matches))
		for i, nl := range matches {
			ambiguous[i] = nl.Name
		}
		return model.Netlist{}, fmt.Errorf("ambiguous netlist %q matches %s", name, strings.Join(ambiguous, ", "))
	}
}

// buildSettings layers the settings sources: project (or default) settings,
// then the chosen preset, then any flag explicitly set on the command line.
func buildSettings(cmd *cobra.Command, opts *placeOptions, base model.PlaceSettings) (model.PlaceSettings, error) {
	settings := base

	if opts.preset != "" {
		presets, err := project.AllPresets(project.DefaultPresetsPath())
		if err != nil {
			presets = model.BuiltinPresets()
		}
		preset, ok := model.PresetByName(presets, opts.preset)
		if !ok {
			names := make([]string, 0, len(presets))
			for _, p := range presets {
				names = append(names, p.Name)
			}
			return model.PlaceSettings{}, fmt.Errorf("unknown preset %q (available: %s)", opts.preset, strings.Join(names, ", "))
		}
		settings = preset.Settings
	}

	flags := cmd.Flags()
	if flags.Changed("wirelength-weight") {
		settings.WirelengthWeight = opts.wirelengthWeight
	}
	if flags.Changed("overlap-weight") {
		settings.OverlapWeight = opts.overlapWeight
	}
	if flags.Changed("boundary-weight") {
		settings.BoundaryWeight = opts.boundaryWeight
	}
	if flags.Changed("temperature") {
		settings.InitialTemperature = opts.temperature
	}
	if flags.Changed("cooling") {
		settings.CoolingRate = opts.cooling
	}
	if flags.Changed("iterations") {
		settings.MaxIterations = opts.iterations
	}
	if flags.Changed("schedule") {
		settings.Schedule = model.Schedule(strings.ToLower(opts.schedule))
	}
	if flags.Changed("move") {
		settings.MovePolicy = model.MovePolicy(strings.ToLower(opts.movePolicy))
	}
	if flags.Changed("window") {
		settings.WindowFraction = opts.window
	}
	if flags.Changed("seed") {
		settings.Seed = opts.seed
	}
	if flags.Changed("restarts") {
		settings.Restarts = opts.restarts
	}

	if err := settings.Validate(); err != nil {
		return model.PlaceSettings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// writeJSON marshals v with indentation to path, or to stdout when path is "-".
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = fmt.Println(string(data))
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
