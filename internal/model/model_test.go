package model

import (
	"testing"
)

func TestNewDesignUsesSamplePattern(t *testing.T) {
	d := NewDesign()

	if d.Version != DesignVersion {
		t.Errorf("expected version %s, got %s", DesignVersion, d.Version)
	}
	if len(d.Woods) != 6 {
		t.Fatalf("expected 6 default woods, got %d", len(d.Woods))
	}
	if len(d.Layers) != 11 {
		t.Fatalf("expected 11 sample layers, got %d", len(d.Layers))
	}
	if d.Woods[5].Name != "Walnut" {
		t.Errorf("expected wood 5 to be Walnut, got %s", d.Woods[5].Name)
	}
	if err := Validate(d.Settings, d.Layers, d.Woods); err != nil {
		t.Errorf("sample design should validate, got %v", err)
	}
}

func TestNewWoodAssignsID(t *testing.T) {
	a := NewWood("Oak", "#aa8844")
	b := NewWood("Oak", "#aa8844")

	if a.ID == "" || b.ID == "" {
		t.Fatal("expected non-empty IDs")
	}
	if a.ID == b.ID {
		t.Error("expected distinct IDs for separate woods")
	}
	if a.Color != "#AA8844" {
		t.Errorf("expected upper-cased color, got %s", a.Color)
	}
}

func TestDesignCloneIsDeep(t *testing.T) {
	d := NewDesign()
	cp := d.Clone()

	cp.Layers[0].Width = 99
	cp.Woods[0].Name = "Changed"

	if d.Layers[0].Width == 99 {
		t.Error("clone shares layer storage with original")
	}
	if d.Woods[0].Name == "Changed" {
		t.Error("clone shares wood storage with original")
	}
}

func TestLayersUsingWood(t *testing.T) {
	d := NewDesign()

	used := d.LayersUsingWood(1)
	if len(used) != 1 || used[0] != 5 {
		t.Errorf("expected Ebony only at layer index 5, got %v", used)
	}
	if got := d.LayersUsingWood(4); len(got) != 0 {
		t.Errorf("expected Purpleheart unused, got %v", got)
	}
}

func TestWoodIndexByName(t *testing.T) {
	woods := DefaultWoods()

	idx, ok := WoodIndexByName(woods, "  maple ")
	if !ok || idx != 3 {
		t.Errorf("expected Maple at 3, got %d (%v)", idx, ok)
	}
	if _, ok := WoodIndexByName(woods, "Teak"); ok {
		t.Error("expected Teak to be missing")
	}
}

func TestCopyHelpersNeverNil(t *testing.T) {
	if CopyWoods(nil) == nil {
		t.Error("CopyWoods(nil) should return an empty slice")
	}
	if CopyLayers(nil) == nil {
		t.Error("CopyLayers(nil) should return an empty slice")
	}
}
