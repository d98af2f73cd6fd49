// EndGrain: end grain cutting board designer
//
// Computes the slice geometry, board measurements and per-wood usage of an
// end grain cutting board from a strip glue-up, and renders the result.
//
// Build:
//   go build -o endgrain ./cmd/endgrain
//
// Examples:
//   endgrain -svg board.svg
//   endgrain -design walnut.json -pdf walnut.pdf -labels strips.pdf
//   endgrain -template Chevron -import layers.xlsx -compare
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/EndGrain/internal/editor"
	"github.com/piwi3910/EndGrain/internal/engine"
	"github.com/piwi3910/EndGrain/internal/export"
	"github.com/piwi3910/EndGrain/internal/importer"
	"github.com/piwi3910/EndGrain/internal/model"
	"github.com/piwi3910/EndGrain/internal/project"
	"go.uber.org/zap"
)

// ErrInvalidDesign is returned when the design cannot be calculated.
var ErrInvalidDesign = errors.New("invalid design")

type options struct {
	designPath   string
	templateName string
	importPath   string
	configPath   string
	svgPath      string
	pngPath      string
	pngSize      int
	pdfPath      string
	labelsPath   string
	dxfPath      string
	savePath     string
	saveTemplate string
	backupPath   string
	compare      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.designPath, "design", "", "design file to load (JSON)")
	flag.StringVar(&opts.templateName, "template", "", "start from a saved template by name")
	flag.StringVar(&opts.importPath, "import", "", "replace the layers with a CSV or Excel file")
	flag.StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "application config file")
	flag.StringVar(&opts.svgPath, "svg", "", "write both views as SVG")
	flag.StringVar(&opts.pngPath, "png", "", "write both views as PNG")
	flag.IntVar(&opts.pngSize, "png-size", export.DefaultPNGSize, "pixel size of each PNG view")
	flag.StringVar(&opts.pdfPath, "pdf", "", "write a PDF cut report")
	flag.StringVar(&opts.labelsPath, "labels", "", "write QR-coded strip labels as PDF")
	flag.StringVar(&opts.dxfPath, "dxf", "", "write the slice cross-section as DXF")
	flag.StringVar(&opts.savePath, "save", "", "save the design (JSON)")
	flag.StringVar(&opts.saveTemplate, "save-template", "", "store the design as a named template")
	flag.StringVar(&opts.backupPath, "backup", "", "export config and templates to a backup file")
	flag.BoolVar(&opts.compare, "compare", false, "print what-if scenarios")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	var err error
	var l *zap.Logger
	if *verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck

	if err := run(l, opts); err != nil {
		l.Error("endgrain failed", zap.Error(err))
		l.Sync() //nolint:errcheck
		os.Exit(1)
	}
}

func run(l *zap.Logger, opts options) error {
	cfg, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	templates, err := project.LoadDefaultTemplates()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	d, err := loadDesign(l, opts, cfg, templates)
	if err != nil {
		return err
	}
	if opts.designPath != "" {
		cfg.AddRecentDesign(opts.designPath)
	}

	notifier := editor.NotifierFunc(func(w model.ValidationWarning) {
		l.Warn("bad cut", zap.Int("layer", w.Layer), zap.String("message", w.Message))
	})
	ed := editor.NewWithHistory(d, notifier, editor.NewHistoryWithDepth(cfg.HistoryDepth))

	if opts.importPath != "" {
		if err := importLayers(l, ed, opts.importPath); err != nil {
			return err
		}
	}

	plan, err := ed.Recalculate()
	if err != nil {
		for _, de := range model.DataErrors(err) {
			l.Error("data error", zap.String("field", de.Field), zap.Int("index", de.Index), zap.String("reason", de.Reason))
		}
		return fmt.Errorf("%w: %w", ErrInvalidDesign, err)
	}
	d = ed.Design()
	l.Debug("calculated",
		zap.Int("layers", len(d.Layers)),
		zap.Int("slices", plan.Measurements.SliceCount),
		zap.Int("warnings", len(plan.Warnings)))

	estimate := model.EstimateStock(plan.Measurements.WoodUsage, d.Settings, d.Units, cfg.WastePercent)
	fmt.Println(renderSummary(d, plan, estimate))

	if opts.compare {
		results := engine.CompareScenarios(engine.BuildDefaultScenarios(d.Settings), d.Layers, d.Woods)
		fmt.Println(renderComparison(results, d.Units))
	}

	if err := writeOutputs(l, opts, d, plan, cfg.WastePercent); err != nil {
		return err
	}

	if opts.savePath != "" {
		if err := project.SaveDesign(opts.savePath, d); err != nil {
			return err
		}
		cfg.AddRecentDesign(opts.savePath)
		l.Info("saved design", zap.String("path", opts.savePath))
	}

	if opts.saveTemplate != "" {
		if existing := templates.FindByName(opts.saveTemplate); existing != nil {
			templates.Remove(existing.ID)
		}
		templates.Add(model.NewDesignTemplate(opts.saveTemplate, "", d))
		if err := project.SaveDefaultTemplates(templates); err != nil {
			return fmt.Errorf("save templates: %w", err)
		}
		l.Info("saved template", zap.String("name", opts.saveTemplate))
	}

	if opts.backupPath != "" {
		if err := project.ExportAllData(opts.backupPath, cfg, templates); err != nil {
			return err
		}
		l.Info("wrote backup", zap.String("path", opts.backupPath))
	}

	if opts.designPath != "" || opts.savePath != "" {
		if err := project.SaveAppConfig(opts.configPath, cfg); err != nil {
			l.Warn("save config", zap.String("path", opts.configPath), zap.Error(err))
		}
	}
	return nil
}

func loadDesign(l *zap.Logger, opts options, cfg model.AppConfig, templates model.TemplateStore) (model.Design, error) {
	switch {
	case opts.designPath != "":
		d, warning, err := project.LoadDesign(opts.designPath)
		if err != nil {
			return model.Design{}, err
		}
		if warning != "" {
			l.Warn(warning, zap.String("path", opts.designPath), zap.String("version", d.Version))
		}
		l.Info("loaded design", zap.String("path", opts.designPath), zap.String("name", d.Name))
		return d, nil

	case opts.templateName != "":
		t := templates.FindByName(opts.templateName)
		if t == nil {
			return model.Design{}, fmt.Errorf("no template named %q (have %s)", opts.templateName, strings.Join(templates.Names(), ", "))
		}
		l.Info("loaded template", zap.String("name", t.Name))
		return t.ToDesign(t.Name), nil

	default:
		d := model.NewDesign()
		cfg.ApplyToDesign(&d)
		return d, nil
	}
}

func importLayers(l *zap.Logger, ed *editor.Editor, path string) error {
	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		result = importer.ImportExcel(path, ed.Woods())
	default:
		result = importer.ImportCSV(path, ed.Woods())
	}

	for _, w := range result.Warnings {
		l.Debug("import", zap.String("path", path), zap.String("note", w))
	}
	for _, e := range result.Errors {
		l.Warn("import", zap.String("path", path), zap.String("error", e))
	}
	if len(result.Layers) == 0 {
		return fmt.Errorf("import %s: no usable layers", path)
	}

	d := ed.Design()
	d.Layers = result.Layers
	ed.Load(d, "Import Layers")
	l.Info("imported layers", zap.String("path", path), zap.Int("layers", len(result.Layers)), zap.Int("rejected", len(result.Errors)))
	return nil
}

func writeOutputs(l *zap.Logger, opts options, d model.Design, plan engine.Plan, wastePercent float64) error {
	outputs := []struct {
		path  string
		kind  string
		write func(string) error
	}{
		{opts.svgPath, "svg", func(p string) error { return export.ExportSVG(p, plan) }},
		{opts.pngPath, "png", func(p string) error { return export.ExportPNG(p, plan, opts.pngSize) }},
		{opts.pdfPath, "pdf", func(p string) error { return export.ExportPDF(p, d, plan, wastePercent) }},
		{opts.labelsPath, "labels", func(p string) error { return export.ExportLabels(p, d) }},
		{opts.dxfPath, "dxf", func(p string) error { return export.ExportDXF(p, plan) }},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := o.write(o.path); err != nil {
			return fmt.Errorf("write %s: %w", o.kind, err)
		}
		l.Info("wrote output", zap.String("kind", o.kind), zap.String("path", o.path))
	}
	return nil
}
