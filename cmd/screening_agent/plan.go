package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/screening-agent/internal/llm"
	"github.com/jonathan/screening-agent/internal/observability"
	"github.com/jonathan/screening-agent/internal/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a screening question plan from a JD and CV",
	Long: `Analyzes a job description against a candidate CV and prints the ordered
question plan: fixed baseline questions first, then gap-driven tailored
questions. With an API key set the plan is refined by the model; without one
the deterministic plan is printed unchanged.`,
	RunE: runPlanCmd,
}

var (
	planTitle   string
	planJobPath string
	planCVPath  string
	planAPIKey  string
)

func init() {
	planCmd.Flags().StringVarP(&planTitle, "title", "t", "", "Job title")
	planCmd.Flags().StringVarP(&planJobPath, "job", "j", "", "Path to job description text file (required)")
	planCmd.Flags().StringVarP(&planCVPath, "cv", "c", "", "Path to candidate CV text file (required)")
	planCmd.Flags().StringVar(&planAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	if err := planCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := planCmd.MarkFlagRequired("cv"); err != nil {
		panic(fmt.Sprintf("failed to mark cv flag as required: %v", err))
	}

	rootCmd.AddCommand(planCmd)
}

func runPlanCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	jobText, err := os.ReadFile(planJobPath)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	cvText, err := os.ReadFile(planCVPath)
	if err != nil {
		return fmt.Errorf("failed to read cv file: %w", err)
	}

	if planAPIKey == "" {
		planAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), planAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	analysis := plan.Analyze(planTitle, string(jobText), string(cvText))
	builder := plan.NewBuilder(plan.NewLLMRefiner(client))
	questions := builder.Generate(ctx, planTitle, string(jobText), string(cvText))

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintAnalysis(&analysis)
	printer.PrintPlan(questions)

	return nil
}
