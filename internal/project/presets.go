package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/ChipPlace/internal/model"
)

// DefaultPresetsPath returns the default file path for custom presets.
// This is located at ~/.chipplace/presets.json.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SaveCustomPresets saves custom presets to a JSON file.
func SaveCustomPresets(path string, presets []model.PlacePreset) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomPresets loads custom presets from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomPresets(path string) ([]model.PlacePreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.PlacePreset{}, nil
		}
		return nil, err
	}

	var presets []model.PlacePreset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, err
	}

	// Ensure loaded presets are not marked as built-in
	for i := range presets {
		presets[i].IsBuiltIn = false
	}
	return presets, nil
}

// AllPresets returns the built-in presets followed by the custom ones
// stored at the given path.
func AllPresets(path string) ([]model.PlacePreset, error) {
	custom, err := LoadCustomPresets(path)
	if err != nil {
		return model.BuiltinPresets(), err
	}
	return append(model.BuiltinPresets(), custom...), nil
}

// ExportPreset exports a single preset to a JSON file (for sharing).
func ExportPreset(path string, preset model.PlacePreset) error {
	preset.IsBuiltIn = false
	data, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportPreset imports a single preset from a JSON file.
func ImportPreset(path string) (model.PlacePreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PlacePreset{}, err
	}

	var preset model.PlacePreset
	if err := json.Unmarshal(data, &preset); err != nil {
		return model.PlacePreset{}, err
	}

	preset.IsBuiltIn = false
	if preset.Name == "" {
		return model.PlacePreset{}, errors.New("imported preset has no name")
	}
	if err := preset.Settings.Validate(); err != nil {
		return model.PlacePreset{}, err
	}
	return preset, nil
}
