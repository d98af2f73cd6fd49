package project

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/piwi3910/EndGrain/internal/model"
)

// writeJSON marshals v with indentation and writes it to path, creating any
// missing parent directories.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// readJSON decodes the file at path into v, leaving fields the file omits
// untouched. A missing file reports found=false and no error.
func readJSON(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

func normalizeConfig(c *model.AppConfig) {
	if c.RecentDesigns == nil {
		c.RecentDesigns = []string{}
	}
}

func normalizeTemplates(s *model.TemplateStore) {
	if s.Templates == nil {
		s.Templates = []model.DesignTemplate{}
	}
}
