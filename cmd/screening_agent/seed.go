package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/screening-agent/internal/db"
	"github.com/jonathan/screening-agent/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo job, candidate, and question bank",
	Long:  "Applies migrations, then inserts the demo Senior Backend Engineer job, a demo candidate, and the interviewer question bank, indexing all of them for retrieval.",
	RunE:  runSeed,
}

var seedDatabaseURL string

func init() {
	seedCmd.Flags().StringVar(&seedDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if seedDatabaseURL == "" {
		seedDatabaseURL = os.Getenv("DATABASE_URL")
	}
	if seedDatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set (set DATABASE_URL environment variable or use --db-url flag)")
	}

	database, err := db.Connect(ctx, seedDatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	result, err := seed.Run(ctx, database)
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	fmt.Printf("Seeded job %s, candidate %s, %d question bank entries\n",
		result.JobID, result.CandidateID, result.Questions)
	return nil
}
