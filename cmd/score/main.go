// Package main scores pulse payload files in one shot and prints the
// resulting assessments. Reads stdin when no files are given.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"dexpath/internal/ingestion"
	"dexpath/internal/reporting"
	"dexpath/internal/scoring"
	"dexpath/internal/storage/memory"
)

func main() {
	validateMints := flag.Bool("validate-mints", false, "Reject rows whose mint is not a valid Solana address")
	format := flag.String("format", "markdown", "Output format: markdown, csv or json")
	flag.Parse()

	ctx := context.Background()

	assessments := memory.NewAssessmentStore()
	history := memory.NewScoreHistoryStore()

	logger := log.New(os.Stderr, "[score] ", log.LstdFlags)
	runner := scoring.NewRunner(assessments, history, logger, scoring.Config{
		ValidateMints: *validateMints,
	})

	var source ingestion.PayloadSource
	if flag.NArg() > 0 {
		source = ingestion.NewFileSource(flag.Args()...)
	} else {
		source = ingestion.NewReaderSource(os.Stdin)
	}

	if err := runner.Run(ctx, source); err != nil {
		fmt.Fprintf(os.Stderr, "Error scoring payloads: %v\n", err)
		os.Exit(1)
	}

	report, err := reporting.NewGenerator(assessments).Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
		os.Exit(1)
	}

	switch *format {
	case "csv":
		fmt.Print(reporting.RenderCSV(report.Rows))
	case "markdown":
		fmt.Print(reporting.RenderMarkdown(report))
	case "json":
		all, err := assessments.ListLatest(ctx, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing assessments: %v\n", err)
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(all); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding assessments: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q (use markdown, csv or json)\n", *format)
		os.Exit(1)
	}
}
