package model

import "testing"

func TestBuiltinPresetsValidate(t *testing.T) {
	presets := BuiltinPresets()
	if len(presets) == 0 {
		t.Fatal("expected built-in presets")
	}
	for _, p := range presets {
		if !p.IsBuiltIn {
			t.Errorf("preset %q must be marked built-in", p.Name)
		}
		if err := p.Settings.Validate(); err != nil {
			t.Errorf("preset %q has invalid settings: %v", p.Name, err)
		}
	}
}

func TestPresetByName(t *testing.T) {
	presets := BuiltinPresets()
	if _, ok := PresetByName(presets, "Thorough"); !ok {
		t.Error("expected Thorough preset")
	}
	if _, ok := PresetByName(presets, "nope"); ok {
		t.Error("expected miss for unknown preset")
	}
}
