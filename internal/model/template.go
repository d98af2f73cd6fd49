package model

import (
	"time"

	"github.com/google/uuid"
)

// DesignTemplate represents a reusable board pattern that captures the
// palette, layers and settings of a design.
type DesignTemplate struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	Units       string     `json:"units"`
	Woods       []WoodInfo `json:"woods"`
	Layers      []Layer    `json:"layers"`
	Settings    Settings   `json:"settings"`
}

// NewDesignTemplate creates a new template from the given design.
func NewDesignTemplate(name, description string, d Design) DesignTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return DesignTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Units:       d.Units,
		Woods:       CopyWoods(d.Woods),
		Layers:      CopyLayers(d.Layers),
		Settings:    d.Settings,
	}
}

// ToDesign creates a new Design from this template.
// Woods get fresh IDs so they are independent of the template.
func (t DesignTemplate) ToDesign(designName string) Design {
	woods := make([]WoodInfo, len(t.Woods))
	for i, w := range t.Woods {
		woods[i] = NewWood(w.Name, w.Color)
	}
	units := t.Units
	if units == "" {
		units = UnitsInches
	}
	return Design{
		Name:     designName,
		Version:  DesignVersion,
		Units:    units,
		Settings: t.Settings,
		Woods:    woods,
		Layers:   CopyLayers(t.Layers),
	}
}

// TemplateStore holds a collection of design templates.
type TemplateStore struct {
	Templates []DesignTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []DesignTemplate{},
	}
}

// BuiltInTemplates returns the templates every installation starts with.
func BuiltInTemplates() []DesignTemplate {
	classic := NewDesign()
	classic.Name = "Classic stripe"

	chevron := NewDesign()
	chevron.Layers = []Layer{
		{WoodIndex: 5, Width: 1, TrailingAngle: 30},
		{WoodIndex: 3, Width: 0.5, TrailingAngle: 30},
		{WoodIndex: 0, Width: 1, TrailingAngle: 30},
		{WoodIndex: 3, Width: 0.5, TrailingAngle: 30},
		{WoodIndex: 5, Width: 1, TrailingAngle: 30},
	}
	chevron.Settings.FlipEveryOther = true

	return []DesignTemplate{
		NewDesignTemplate("Classic stripe", "Walnut and maple stripes with an ebony accent", classic),
		NewDesignTemplate("Chevron", "Angled strips flipped every other slice", chevron),
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t DesignTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *DesignTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *DesignTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}
