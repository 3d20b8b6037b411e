package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/ChipPlace/internal/importer"
	"github.com/piwi3910/ChipPlace/internal/model"
)

// ─── Logging Helpers ───

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	logger.Info("test message")
	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	time.Sleep(10 * time.Millisecond)
	prog.done("placement completed")

	if !bytes.Contains(buf.Bytes(), []byte("placement completed")) {
		t.Error("progress.done() output should contain message")
	}
}

func TestLoggerFromContext(t *testing.T) {
	ctx := context.Background()
	logger := log.Default()

	retrieved := loggerFromContext(withLogger(ctx, logger))
	if retrieved != logger {
		t.Error("loggerFromContext should return the attached logger")
	}

	if loggerFromContext(ctx) == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}
}

// ─── Built-in Netlists ───

func TestBuiltinNetlistByName(t *testing.T) {
	demo := model.DemoNetlist()

	nl, err := builtinNetlist(demo.Name)
	if err != nil {
		t.Fatalf("builtinNetlist(%q) error: %v", demo.Name, err)
	}
	if len(nl.Modules) != len(demo.Modules) {
		t.Errorf("expected %d modules, got %d", len(demo.Modules), len(nl.Modules))
	}
}

func TestBuiltinNetlistCaseInsensitive(t *testing.T) {
	demo := model.DemoNetlist()

	_, err := builtinNetlist(strings.ToUpper(demo.Name))
	if err != nil {
		t.Errorf("lookup should be case-insensitive, got %v", err)
	}
}

func TestBuiltinNetlistPrefix(t *testing.T) {
	nl, err := builtinNetlist("demo")
	if err != nil {
		t.Fatalf("prefix lookup failed: %v", err)
	}
	if !strings.HasPrefix(nl.Name, "Demo") {
		t.Errorf("expected the demo netlist, got %q", nl.Name)
	}

	if _, err := builtinNetlist("quad"); err != nil {
		t.Errorf("prefix lookup for quad failed: %v", err)
	}
}

func TestBuiltinNetlistAmbiguousPrefix(t *testing.T) {
	// The empty string is a prefix of every name, so it must be rejected
	// as ambiguous instead of silently picking the first netlist.
	_, err := builtinNetlist("")
	if err == nil {
		t.Fatal("expected error for ambiguous prefix")
	}
	if !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("error should report ambiguity, got %q", err.Error())
	}
}

func TestBuiltinNetlistUnknown(t *testing.T) {
	_, err := builtinNetlist("does-not-exist")
	if err == nil {
		t.Fatal("expected error for unknown netlist")
	}
	if !strings.Contains(err.Error(), "available:") {
		t.Errorf("error should list available netlists, got %q", err.Error())
	}
}

// ─── Import Conversion ───

func TestProjectFromImport(t *testing.T) {
	res := importer.ImportResult{
		Modules: []model.Module{
			{ID: "m1", Label: "CPU", Width: 4, Height: 3},
			{ID: "m2", Label: "RAM", Width: 3, Height: 3},
		},
		Nets: []model.Net{
			{ID: "n1", Label: "bus", Modules: []string{"m1", "m2"}},
		},
	}
	opts := &placeOptions{input: "/tmp/chip_modules.csv", dieWidth: 30, dieHeight: 25}

	warned := 0
	proj, err := projectFromImport(func(string, ...interface{}) { warned++ }, res, opts)
	if err != nil {
		t.Fatalf("projectFromImport error: %v", err)
	}
	if proj.Name != "chip_modules" {
		t.Errorf("expected project name from file base, got %q", proj.Name)
	}
	if proj.Netlist.Die.Width != 30 || proj.Netlist.Die.Height != 25 {
		t.Errorf("die should come from flags, got %gx%g", proj.Netlist.Die.Width, proj.Netlist.Die.Height)
	}
	if len(proj.Netlist.Modules) != 2 || len(proj.Netlist.Nets) != 1 {
		t.Errorf("netlist contents lost: %d modules, %d nets", len(proj.Netlist.Modules), len(proj.Netlist.Nets))
	}
	if warned != 0 {
		t.Errorf("no warnings expected, got %d", warned)
	}
}

func TestProjectFromImportErrorsAreFatal(t *testing.T) {
	res := importer.ImportResult{
		Modules: []model.Module{{ID: "m1", Label: "CPU", Width: 4, Height: 3}},
		Errors:  []string{"row 3: width must be positive"},
	}
	opts := &placeOptions{input: "bad.csv", dieWidth: 20, dieHeight: 20}

	_, err := projectFromImport(func(string, ...interface{}) {}, res, opts)
	if err == nil {
		t.Fatal("row errors should fail the import")
	}
	if !strings.Contains(err.Error(), "width must be positive") {
		t.Errorf("error should carry the row message, got %q", err.Error())
	}
}

func TestProjectFromImportEmpty(t *testing.T) {
	opts := &placeOptions{input: "empty.csv", dieWidth: 20, dieHeight: 20}
	_, err := projectFromImport(func(string, ...interface{}) {}, importer.ImportResult{}, opts)
	if err == nil {
		t.Fatal("empty import should fail")
	}
}

// ─── Settings Layering ───

func TestBuildSettingsDefaults(t *testing.T) {
	cmd := newPlaceCmd()
	opts := &placeOptions{}

	settings, err := buildSettings(cmd, opts, model.DefaultPlaceSettings())
	if err != nil {
		t.Fatalf("buildSettings error: %v", err)
	}
	defaults := model.DefaultPlaceSettings()
	if settings.InitialTemperature != defaults.InitialTemperature {
		t.Errorf("unchanged flags should keep base settings, got T=%g", settings.InitialTemperature)
	}
}

func TestBuildSettingsFlagOverrides(t *testing.T) {
	cmd := newPlaceCmd()
	for flag, value := range map[string]string{
		"temperature": "250",
		"seed":        "99",
		"restarts":    "4",
		"schedule":    "Linear",
	} {
		if err := cmd.Flags().Set(flag, value); err != nil {
			t.Fatalf("setting --%s: %v", flag, err)
		}
	}
	opts := &placeOptions{temperature: 250, seed: 99, restarts: 4, schedule: "Linear"}

	settings, err := buildSettings(cmd, opts, model.DefaultPlaceSettings())
	if err != nil {
		t.Fatalf("buildSettings error: %v", err)
	}
	if settings.InitialTemperature != 250 {
		t.Errorf("expected temperature 250, got %g", settings.InitialTemperature)
	}
	if settings.Seed != 99 {
		t.Errorf("expected seed 99, got %d", settings.Seed)
	}
	if settings.Restarts != 4 {
		t.Errorf("expected 4 restarts, got %d", settings.Restarts)
	}
	if settings.Schedule != model.ScheduleLinear {
		t.Errorf("schedule flag should be lowercased, got %q", settings.Schedule)
	}
}

func TestBuildSettingsPreset(t *testing.T) {
	cmd := newPlaceCmd()
	opts := &placeOptions{preset: "Quick"}

	settings, err := buildSettings(cmd, opts, model.DefaultPlaceSettings())
	if err != nil {
		t.Fatalf("buildSettings error: %v", err)
	}
	quick, ok := model.PresetByName(model.BuiltinPresets(), "Quick")
	if !ok {
		t.Fatal("Quick preset missing")
	}
	if settings.MaxIterations != quick.Settings.MaxIterations {
		t.Errorf("expected preset iterations %d, got %d", quick.Settings.MaxIterations, settings.MaxIterations)
	}
}

func TestBuildSettingsPresetThenFlag(t *testing.T) {
	cmd := newPlaceCmd()
	if err := cmd.Flags().Set("iterations", "123"); err != nil {
		t.Fatal(err)
	}
	opts := &placeOptions{preset: "Quick", iterations: 123}

	settings, err := buildSettings(cmd, opts, model.DefaultPlaceSettings())
	if err != nil {
		t.Fatalf("buildSettings error: %v", err)
	}
	if settings.MaxIterations != 123 {
		t.Errorf("explicit flag should override the preset, got %d", settings.MaxIterations)
	}
}

func TestBuildSettingsUnknownPreset(t *testing.T) {
	cmd := newPlaceCmd()
	opts := &placeOptions{preset: "nope"}

	_, err := buildSettings(cmd, opts, model.DefaultPlaceSettings())
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestBuildSettingsInvalid(t *testing.T) {
	cmd := newPlaceCmd()
	if err := cmd.Flags().Set("cooling", "2.5"); err != nil {
		t.Fatal(err)
	}
	opts := &placeOptions{cooling: 2.5}

	_, err := buildSettings(cmd, opts, model.DefaultPlaceSettings())
	if err == nil {
		t.Fatal("cooling rate above 1 should be rejected")
	}
}
