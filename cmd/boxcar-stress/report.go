package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/billie-coop/boxcar/internal/stress"
	"github.com/charmbracelet/glamour/v2"
)

// runPlain executes the scenarios headless and prints the outcome.
func runPlain(cfg *stress.Config, withReport bool) error {
	runner := stress.NewRunner(cfg)
	results, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	if !withReport {
		for _, res := range results {
			fmt.Printf("%-8s %11.0f ops/s  verified=%v compound=%v (%s)\n",
				res.Backend, res.OpsPerSec, res.Verified, res.CompoundOK,
				res.Elapsed.Round(time.Millisecond))
		}
		return nil
	}

	md := buildReport(cfg, results)
	if out, err := renderReport(md); err == nil {
		fmt.Print(out)
	} else {
		// Renderer trouble shouldn't eat the results
		fmt.Print(md)
	}

	if cfg.ReportPath != "" {
		if err := os.WriteFile(cfg.ReportPath, []byte(md), 0o644); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
	}
	return nil
}

// buildReport assembles the markdown summary of a finished run.
func buildReport(cfg *stress.Config, results []stress.Result) string {
	var b strings.Builder

	b.WriteString("# boxcar stress report\n\n")
	fmt.Fprintf(&b, "%d writers × %d increments and %d readers × %d gets per backend.\n\n",
		cfg.Writers, cfg.OpsPerWriter, cfg.Readers, cfg.OpsPerReader)

	b.WriteString("| backend | ops/sec | writes | reads | counter | compound |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, res := range results {
		counter := "exact"
		if !res.Verified {
			counter = fmt.Sprintf("lost %d", res.Expected-res.Got)
		}
		compound := "ok"
		if !res.CompoundOK {
			compound = "broken"
		}
		fmt.Fprintf(&b, "| %s | %.0f | %d | %d | %s | %s |\n",
			res.Backend, res.OpsPerSec, res.Writes, res.Reads, counter, compound)
	}

	b.WriteString("\nA counter marked *exact* means no increment was lost: ")
	b.WriteString("every read-modify-write ran under a single acquisition.\n")
	return b.String()
}

// renderReport renders the markdown for the terminal.
func renderReport(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dracula"),
		glamour.WithWordWrap(100),
		glamour.WithPreservedNewLines(),
		glamour.WithEmoji(),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
