package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/EndGrain/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.WastePercent = 25
	cfg.DefaultUnits = model.UnitsMillimeters

	store := model.NewTemplateStore()
	store.Add(model.NewDesignTemplate("Mine", "", model.NewDesign()))

	if err := ExportAllData(path, cfg, store); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != model.DesignVersion {
		t.Errorf("expected version %s, got %s", model.DesignVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.WastePercent != 25 {
		t.Errorf("expected WastePercent=25, got %f", backup.Config.WastePercent)
	}
	if backup.Config.DefaultUnits != model.UnitsMillimeters {
		t.Errorf("expected units mm, got %s", backup.Config.DefaultUnits)
	}
	if len(backup.Templates.Templates) != 1 || backup.Templates.Templates[0].Name != "Mine" {
		t.Errorf("templates were not preserved: %+v", backup.Templates.Names())
	}
}

func TestExportAllDataCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "backup.json")

	if err := ExportAllData(path, model.DefaultAppConfig(), model.NewTemplateStore()); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config":{}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); !errors.Is(err, ErrMissingVersion) {
		t.Fatalf("expected ErrMissingVersion, got %v", err)
	}
}

func TestImportAllDataNilSlices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nil.json")
	data := []byte(`{"version":"3.0.0","config":{"recent_designs":null},"templates":{"templates":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentDesigns == nil {
		t.Error("RecentDesigns should not be nil")
	}
	if backup.Templates.Templates == nil {
		t.Error("Templates should not be nil")
	}
}
