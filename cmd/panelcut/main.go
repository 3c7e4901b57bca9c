// PanelCut: cut-list layout and CNC document generator
//
// Reads a cut list (CSV, XLSX or DXF), lays the pieces out on stock sheets
// grouped by material and thickness, and writes the cutting-path and
// drilling-pattern documents consumed by the CNC equipment.
//
// Build:
//   go build -o panelcut ./cmd/panelcut

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

const version = "0.1.0"

func main() {
	flag.Usage = func() { printUsage(os.Stdout) }
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Args()[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string, out io.Writer) error {
	switch command {
	case "layout":
		return runLayout(args, out)
	case "compare":
		return runCompare(args, out)
	case "estimate":
		return runEstimate(args, out)
	case "version":
		fmt.Fprintf(out, "panelcut version %s\n", version)
		return nil
	case "help":
		printUsage(out)
		return nil
	default:
		printUsage(out)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `panelcut - cut-list layout and CNC document generator

Usage: panelcut <command> [options]

Commands:
  layout     Lay out the cut list and write the CNC documents
  compare    Compare sheet usage across kerf and sheet orientation variants
  estimate   Estimate how many sheets to buy per material group
  version    Show panelcut version
  help       Show this help message

Common Flags:
  -items <file>     Cut list (.csv, .xlsx or .dxf), required
  -config <file>    Settings file (.toml or .json)
                    Defaults to ~/.panelcut/config.toml
  -kerf <mm>        Override the configured blade width
  -quiet            Suppress diagnostic logging

Layout Flags:
  -out <dir>        Output directory (default from config, else .)
  -per-sheet        Also write one drilling pattern per sheet
  -labels           Write labels.pdf with QR-coded part labels
  -report           Write report.xlsx with sheets and placements
  -dxf              Write layout.dxf with contours and holes

Estimate Flags:
  -waste <pct>      Waste allowance on top of the exact count (default 10)

Examples:
  panelcut layout -items parts.csv -out build -labels -report
  panelcut compare -items parts.xlsx -config shop.toml
  panelcut estimate -items parts.csv -waste 15`)
}
