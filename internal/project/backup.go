package project

import (
	"errors"
	"fmt"
	"time"

	"github.com/piwi3910/EndGrain/internal/model"
)

// ErrMissingVersion marks a design or backup file with no version field.
var ErrMissingVersion = errors.New("missing version field")

// BackupData bundles the config and template store into one file.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Config    model.AppConfig     `json:"config"`
	Templates model.TemplateStore `json:"templates"`
}

// ExportAllData writes config and templates to path as one backup file.
func ExportAllData(path string, config model.AppConfig, templates model.TemplateStore) error {
	backup := BackupData{
		Version:   model.DesignVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Templates: templates,
	}
	if err := writeJSON(path, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup file. Nothing is applied; the caller saves the
// config and templates it wants to keep.
func ImportAllData(path string) (BackupData, error) {
	var backup BackupData
	found, err := readJSON(path, &backup)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	if !found {
		return BackupData{}, fmt.Errorf("backup file %s does not exist", path)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: %w", ErrMissingVersion)
	}
	normalizeConfig(&backup.Config)
	normalizeTemplates(&backup.Templates)
	return backup, nil
}
