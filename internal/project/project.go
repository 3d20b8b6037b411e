package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/ChipPlace/internal/model"
)

// SaveProject writes a project to the given path as indented JSON.
// It creates parent directories if they do not exist.
func SaveProject(path string, p model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProject reads a project from the given path. The netlist and
// settings are validated so a corrupted file is rejected on load rather
// than when a run is started.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("cannot parse project file: %w", err)
	}
	if len(p.Netlist.Modules) > 0 {
		if err := p.Netlist.Validate(); err != nil {
			return model.Project{}, fmt.Errorf("project has invalid netlist: %w", err)
		}
	}
	if err := p.Settings.Validate(); err != nil {
		return model.Project{}, fmt.Errorf("project has invalid settings: %w", err)
	}
	return p, nil
}
