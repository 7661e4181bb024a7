// Package main implements the screening_agent CLI for automated first-round
// candidate screening.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "screening_agent",
	Short: "Screening orchestration engine for first-round candidate interviews",
	Long: `screening_agent plans, conducts, and scores first-round screening interviews.

It analyzes a job description against a candidate CV, generates a tailored
question plan, drives a retrieval-grounded streamed dialogue, extracts
structured evidence from the transcript, and computes a weighted fit score.`,
}

func main() {
	// Load .env file if present (ignore errors; env vars may be set directly)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
