package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new designs
	DefaultSettings Settings `json:"default_settings"`
	DefaultUnits    string   `json:"default_units"` // "in" or "mm"

	// Application preferences
	WastePercent  float64  `json:"waste_percent"`  // Extra stock on purchase estimates, percent
	RecentDesigns []string `json:"recent_designs"` // Most recent first
	MaxRecent     int      `json:"max_recent"`
	HistoryDepth  int      `json:"history_depth"` // Undo snapshots kept, 0 = default
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultSettings: DefaultSettings(),
		DefaultUnits:    UnitsInches,
		WastePercent:    15,
		RecentDesigns:   []string{},
		MaxRecent:       10,
		HistoryDepth:    50,
	}
}

// ApplyToDesign copies the default settings and units into a design.
// This is used when creating a new design so it inherits the user's saved defaults.
func (c AppConfig) ApplyToDesign(d *Design) {
	d.Settings = c.DefaultSettings
	if c.DefaultUnits != "" {
		d.Units = c.DefaultUnits
	}
}

// AddRecentDesign moves path to the front of the recent list, trimming it to MaxRecent.
func (c *AppConfig) AddRecentDesign(path string) {
	recent := []string{path}
	for _, p := range c.RecentDesigns {
		if p != path {
			recent = append(recent, p)
		}
	}
	limit := c.MaxRecent
	if limit <= 0 {
		limit = 10
	}
	if len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentDesigns = recent
}
