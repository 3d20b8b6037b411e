package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ChipPlace/internal/importer"
	"github.com/piwi3910/ChipPlace/internal/model"
	"github.com/piwi3910/ChipPlace/internal/project"
)

func newStatsCmd() *cobra.Command {
	var jsonPath string

	cmd := &cobra.Command{
		Use:   "stats <project.json>",
		Short: "Print placement statistics for a solved project",
		Long: `Stats loads a project file produced by 'chipplace place --output' and
prints the cost breakdown, utilization, and per-net wirelengths of its
stored result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args[0], jsonPath)
		},
	}

	cmd.Flags().StringVar(&jsonPath, "json", "", "also write the statistics as JSON (use - for stdout)")
	return cmd
}

func runStats(cmd *cobra.Command, path, jsonPath string) error {
	proj, err := project.LoadProject(path)
	if err != nil {
		return err
	}
	if proj.Result == nil || len(proj.Result.Placement) == 0 {
		return fmt.Errorf("project %q has no placement result; run 'chipplace place' first", proj.Name)
	}

	nl := proj.Netlist
	result := *proj.Result
	stats := model.ComputeStats(nl, result.Placement)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Project:      %s\n", proj.Name)
	fmt.Fprintf(out, "Netlist:      %s (%d modules, %d nets)\n", nl.Name, len(nl.Modules), len(nl.Nets))
	fmt.Fprintf(out, "Die:          %g x %g\n", nl.Die.Width, nl.Die.Height)
	fmt.Fprintf(out, "Utilization:  %.1f%%\n", stats.Utilization)
	fmt.Fprintf(out, "Total cost:   %.3f\n", result.Cost.Total)
	fmt.Fprintf(out, "  Wirelength: %.3f\n", result.Cost.Wirelength)
	fmt.Fprintf(out, "  Overlap:    %.3f (%d pairs)\n", result.Cost.Overlap, stats.OverlappingPairs)
	fmt.Fprintf(out, "  Boundary:   %.3f (%d modules out of die)\n", result.Cost.Boundary, stats.OutOfBounds)
	fmt.Fprintf(out, "Moves:        %d accepted of %d, seed %d\n", result.AcceptedMoves, result.Iterations, result.Seed)

	if len(stats.NetLengths) > 0 {
		lengths := append([]model.NetLength(nil), stats.NetLengths...)
		sort.Slice(lengths, func(i, j int) bool { return lengths[i].Length > lengths[j].Length })

		fmt.Fprintln(out)
		w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NET\tWIRELENGTH")
		for _, n := range lengths {
			fmt.Fprintf(w, "%s\t%.3f\n", n.NetLabel, n.Length)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if jsonPath != "" {
		return writeJSON(jsonPath, stats)
	}
	return nil
}

func newNetlistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "netlists",
		Short: "List the built-in example netlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODULES\tNETS\tDIE")
			for _, nl := range model.BuiltinNetlists() {
				fmt.Fprintf(w, "%s\t%d\t%d\t%gx%g\n",
					nl.Name, len(nl.Modules), len(nl.Nets), nl.Die.Width, nl.Die.Height)
			}
			return w.Flush()
		},
	}
}

func newValidateCmd() *cobra.Command {
	var dieWidth, dieHeight float64

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a netlist or project file without placing it",
		Long: `Validate loads a CSV, Excel, or project JSON file, reports any import
warnings, and checks the netlist invariants (positive dimensions, unique
labels, nets with at least two known members).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], dieWidth, dieHeight)
		},
	}

	cmd.Flags().Float64Var(&dieWidth, "die-width", 20, "die width for CSV/Excel inputs")
	cmd.Flags().Float64Var(&dieHeight, "die-height", 20, "die height for CSV/Excel inputs")
	return cmd
}

func runValidate(cmd *cobra.Command, path string, dieWidth, dieHeight float64) error {
	logger := loggerFromContext(cmd.Context())

	var nl model.Netlist
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		proj, err := project.LoadProject(path)
		if err != nil {
			return err
		}
		nl = proj.Netlist
	case ".csv", ".xlsx":
		var res importer.ImportResult
		if strings.ToLower(filepath.Ext(path)) == ".csv" {
			res = importer.ImportCSV(path)
		} else {
			res = importer.ImportExcel(path)
		}
		for _, w := range res.Warnings {
			logger.Warnf("%s", w)
		}
		if len(res.Errors) > 0 {
			return fmt.Errorf("import failed: %s", strings.Join(res.Errors, "; "))
		}
		nl = model.Netlist{
			Name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Modules: res.Modules,
			Nets:    res.Nets,
			Die:     model.Die{Width: dieWidth, Height: dieHeight},
		}
	default:
		return fmt.Errorf("unsupported input format %q (want .csv, .xlsx, or .json)", filepath.Ext(path))
	}

	if err := nl.Validate(); err != nil {
		return fmt.Errorf("netlist is invalid: %w", err)
	}
	logger.Infof("Netlist %q is valid: %d modules, %d nets, die %gx%g",
		nl.Name, len(nl.Modules), len(nl.Nets), nl.Die.Width, nl.Die.Height)
	return nil
}
