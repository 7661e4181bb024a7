package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/screening-agent/internal/extraction"
	"github.com/jonathan/screening-agent/internal/fit"
	"github.com/jonathan/screening-agent/internal/llm"
	"github.com/jonathan/screening-agent/internal/observability"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Extract evidence and score a screening transcript",
	Long: `Reads a transcript file ("role: content" lines), extracts baseline answers
and SPARC evidence items, computes the weighted fit score, and prints the
screening report. Without an API key the heuristic extraction path runs.`,
	RunE: runReport,
}

var (
	reportTranscriptPath string
	reportAPIKey         string
	reportAdvance        int
	reportHold           int
)

func init() {
	reportCmd.Flags().StringVarP(&reportTranscriptPath, "transcript", "f", "", "Path to transcript text file (required)")
	reportCmd.Flags().StringVar(&reportAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	reportCmd.Flags().IntVar(&reportAdvance, "advance-threshold", 75, "Minimum fit score for an advance recommendation")
	reportCmd.Flags().IntVar(&reportHold, "hold-threshold", 55, "Minimum fit score for a hold recommendation")

	if err := reportCmd.MarkFlagRequired("transcript"); err != nil {
		panic(fmt.Sprintf("failed to mark transcript flag as required: %v", err))
	}

	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	transcript, err := os.ReadFile(reportTranscriptPath)
	if err != nil {
		return fmt.Errorf("failed to read transcript file: %w", err)
	}

	if reportAPIKey == "" {
		reportAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), reportAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	ext, outcome := extraction.NewExtractor(client).Extract(ctx, string(transcript))
	if outcome != extraction.ExtractOK {
		fmt.Fprintf(os.Stderr, "Note: model extraction %s, using heuristic results\n", outcome)
	}

	score := fit.ComputeWeightedFit(ext.Sparc, fit.DefaultWeights())

	recommendation := "reject"
	switch {
	case score >= reportAdvance:
		recommendation = "advance"
	case score >= reportHold:
		recommendation = "hold"
	}

	observability.NewPrinter(os.Stdout).PrintReport(&ext, score, recommendation)

	return nil
}
