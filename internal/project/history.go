package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/ChipPlace/internal/model"
)

// DefaultHistoryPath returns the default file path for the run history.
// This is located at ~/.chipplace/history.json.
func DefaultHistoryPath() string {
	return filepath.Join(DefaultConfigDir(), "history.json")
}

// SaveHistory writes the run history to the specified JSON file.
func SaveHistory(path string, records []model.RunRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadHistory reads the run history from the specified JSON file.
// If the file does not exist, it returns an empty history.
func LoadHistory(path string) ([]model.RunRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.RunRecord{}, nil
		}
		return nil, err
	}
	var records []model.RunRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AppendRun prepends a record to the history file at path, trimming to
// limit entries. A non-positive limit keeps everything.
func AppendRun(path string, record model.RunRecord, limit int) error {
	records, err := LoadHistory(path)
	if err != nil {
		return err
	}
	records = append([]model.RunRecord{record}, records...)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return SaveHistory(path, records)
}
