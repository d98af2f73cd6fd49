package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/EndGrain/internal/model"
)

// VersionWarning is returned by LoadDesign when the file was written by a
// different major version. The design is still usable.
const VersionWarning = "Loading design from different version"

// SaveDesign writes a design to path as indented JSON, stamping the current
// format version.
func SaveDesign(path string, d model.Design) error {
	d = d.Clone()
	d.Version = model.DesignVersion
	if err := writeJSON(path, d); err != nil {
		return fmt.Errorf("failed to save design: %w", err)
	}
	return nil
}

// LoadDesign reads a design file. The returned warning is empty unless the
// file's major version differs from model.DesignVersion.
func LoadDesign(path string) (model.Design, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Design{}, "", fmt.Errorf("failed to read design: %w", err)
	}
	d, warning, err := ParseDesign(data)
	if err != nil {
		return model.Design{}, "", fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, warning, nil
}

// ParseDesign decodes a design document.
func ParseDesign(data []byte) (model.Design, string, error) {
	var d model.Design
	if err := json.Unmarshal(data, &d); err != nil {
		return model.Design{}, "", fmt.Errorf("failed to parse design: %w", err)
	}
	if d.Version == "" {
		return model.Design{}, "", fmt.Errorf("invalid design file: %w", ErrMissingVersion)
	}

	var warning string
	if majorVersion(d.Version) != majorVersion(model.DesignVersion) {
		warning = VersionWarning
	}
	if d.Units == "" {
		d.Units = model.UnitsInches
	}
	// Clone normalises nil slices to empty ones
	return d.Clone(), warning, nil
}

func majorVersion(v string) string {
	major, _, _ := strings.Cut(strings.TrimPrefix(v, "v"), ".")
	return major
}
