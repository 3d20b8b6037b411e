package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/ChipPlace/internal/model"
)

// DefaultLibraryPath returns the default file path for the netlist library.
// This is located at ~/.chipplace/netlists.json.
func DefaultLibraryPath() string {
	return filepath.Join(DefaultConfigDir(), "netlists.json")
}

// SaveLibrary writes the user's netlist library to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveLibrary(path string, netlists []model.Netlist) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(netlists, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadLibrary reads the netlist library from the specified JSON file.
// If the file does not exist, it returns the built-in netlists and saves them.
func LoadLibrary(path string) ([]model.Netlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lib := model.BuiltinNetlists()
			if saveErr := SaveLibrary(path, lib); saveErr != nil {
				return lib, saveErr
			}
			return lib, nil
		}
		return nil, err
	}
	var netlists []model.Netlist
	if err := json.Unmarshal(data, &netlists); err != nil {
		return nil, err
	}
	return netlists, nil
}

// ImportLibrary imports netlists from a user-specified JSON file, merging
// them with the existing library. Duplicate names are skipped.
func ImportLibrary(path string, existing []model.Netlist) ([]model.Netlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported []model.Netlist
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	names := make(map[string]bool, len(existing))
	for _, nl := range existing {
		names[nl.Name] = true
	}
	for _, nl := range imported {
		if names[nl.Name] {
			continue
		}
		if err := nl.Validate(); err != nil {
			continue
		}
		existing = append(existing, nl)
		names[nl.Name] = true
	}

	return existing, nil
}
