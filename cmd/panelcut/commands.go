package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/piwi3910/PanelCut/internal/cnc"
	"github.com/piwi3910/PanelCut/internal/config"
	"github.com/piwi3910/PanelCut/internal/engine"
	"github.com/piwi3910/PanelCut/internal/export"
	"github.com/piwi3910/PanelCut/internal/importer"
	"github.com/piwi3910/PanelCut/internal/model"
	"github.com/piwi3910/PanelCut/internal/monitoring"
)

// Output file names written by the layout command.
const (
	cuttingPathFile     = "cutting.tpa"
	drillingPatternFile = "drilling.cix"
	labelsFile          = "labels.pdf"
	reportFile          = "report.xlsx"
	dxfFile             = "layout.dxf"
)

type commonFlags struct {
	items  *string
	config *string
	kerf   *float64
	quiet  *bool
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		items:  fs.String("items", "", "Cut list file (.csv, .xlsx or .dxf)"),
		config: fs.String("config", "", "Settings file (defaults to ~/.panelcut/config.toml)"),
		kerf:   fs.Float64("kerf", -1, "Blade width in mm, overrides the config"),
		quiet:  fs.Bool("quiet", false, "Suppress diagnostic logging"),
	}
}

// load resolves the settings file and imports the cut list.
func (c commonFlags) load() (config.Config, []model.RawItem, error) {
	if *c.quiet {
		monitoring.SetLogger(nil)
	}

	if *c.items == "" {
		return config.Config{}, nil, errors.New("-items flag is required")
	}

	path := *c.config
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	if *c.kerf >= 0 {
		cfg.Layout.KerfWidth = *c.kerf
	}

	result := importer.Import(*c.items)
	for _, w := range result.Warnings {
		monitoring.Logf("import: %s", w)
	}
	for _, e := range result.Errors {
		monitoring.Logf("import error: %s", e)
	}
	if len(result.Items) == 0 {
		return config.Config{}, nil, fmt.Errorf("no items imported from %s", *c.items)
	}

	return cfg, result.Items, nil
}

func runLayout(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	common := addCommonFlags(fs)
	outDir := fs.String("out", "", "Output directory")
	perSheet := fs.Bool("per-sheet", false, "Also write one drilling pattern per sheet")
	labels := fs.Bool("labels", false, "Write QR-coded part labels")
	report := fs.Bool("report", false, "Write the placement report workbook")
	drawing := fs.Bool("dxf", false, "Write the DXF contour drawing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, items, err := common.load()
	if err != nil {
		return err
	}

	dir := cfg.Output.Dir
	if *outDir != "" {
		dir = *outDir
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	layout := engine.New(cfg.Layout).Layout(items)
	kerf := cfg.Layout.KerfWidth
	docs := cnc.Export(layout, kerf)

	if err := writeDocument(filepath.Join(dir, cuttingPathFile), docs.CuttingPath); err != nil {
		return err
	}
	if err := writeDocument(filepath.Join(dir, drillingPatternFile), docs.DrillingPattern); err != nil {
		return err
	}
	if *perSheet {
		for i, doc := range cnc.ExportSheets(layout) {
			name := fmt.Sprintf("drilling_%d.cix", i+1)
			if err := writeDocument(filepath.Join(dir, name), doc); err != nil {
				return err
			}
		}
	}

	parsed, err := cnc.ParseCuttingPath(docs.CuttingPath)
	if err != nil {
		return fmt.Errorf("re-read cutting path: %w", err)
	}
	for _, p := range cnc.VerifyCuttingPath(parsed, kerf) {
		monitoring.Logf("cutting path: %s", p)
	}

	if *labels || cfg.Output.Labels {
		if err := export.ExportLabels(filepath.Join(dir, labelsFile), layout); err != nil {
			return fmt.Errorf("labels: %w", err)
		}
	}
	if *report || cfg.Output.Report {
		if err := export.ExportReport(filepath.Join(dir, reportFile), layout, kerf); err != nil {
			return err
		}
	}
	if *drawing || cfg.Output.DXF {
		if err := export.ExportDXF(filepath.Join(dir, dxfFile), layout, kerf); err != nil {
			return err
		}
	}

	offcuts := model.DetectAllOffcuts(layout, kerf)
	fmt.Fprintf(out, "Sheets: %d  Placements: %d  Efficiency: %.1f%%  Unplaced: %d\n",
		len(layout.Sheets), layout.PlacementCount(), layout.TotalEfficiency(), len(layout.Unplaced))
	fmt.Fprintf(out, "Offcuts: %d (%.2f m²)\n", len(offcuts), model.TotalOffcutArea(offcuts)/1e6)
	fmt.Fprintf(out, "Wrote %s and %s to %s\n", cuttingPathFile, drillingPatternFile, dir)
	return nil
}

func writeDocument(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func runCompare(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, items, err := common.load()
	if err != nil {
		return err
	}

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(cfg.Layout), items)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tSHEETS\tPLACED\tWASTE %\tUNPLACED")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\t%d\n",
			r.Scenario.Name, r.SheetsUsed, r.PlacementCount, r.WastePercent, r.UnplacedCount)
	}
	return tw.Flush()
}

func runEstimate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("estimate", flag.ContinueOnError)
	common := addCommonFlags(fs)
	waste := fs.Float64("waste", 10, "Waste allowance in percent")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, items, err := common.load()
	if err != nil {
		return err
	}

	pieces := engine.NormalizeItems(items, cfg.Layout.DefaultThickness)
	estimates := engine.EstimateSheets(pieces, cfg.Layout, *waste)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tPIECES\tEXACT\tMIN\tWITH WASTE")
	for _, e := range estimates {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%d\t%d\n",
			e.Group, e.PieceCount, e.SheetsNeededExact, e.SheetsNeededMin, e.SheetsWithWaste)
	}
	return tw.Flush()
}
