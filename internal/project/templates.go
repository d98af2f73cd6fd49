package project

import (
	"path/filepath"

	"github.com/piwi3910/EndGrain/internal/model"
)

// DefaultTemplatePath is templates.json inside DefaultConfigDir.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store as JSON.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, store)
}

// LoadTemplates reads a template store. A store that has never been saved
// starts out holding the built-in templates.
func LoadTemplates(path string) (model.TemplateStore, error) {
	var store model.TemplateStore
	found, err := readJSON(path, &store)
	if err != nil {
		return model.TemplateStore{}, err
	}
	if !found {
		store = model.NewTemplateStore()
		for _, t := range model.BuiltInTemplates() {
			store.Add(t)
		}
	}
	normalizeTemplates(&store)
	return store, nil
}

func LoadDefaultTemplates() (model.TemplateStore, error) {
	return LoadTemplates(DefaultTemplatePath())
}

func SaveDefaultTemplates(store model.TemplateStore) error {
	return SaveTemplates(DefaultTemplatePath(), store)
}
