package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/claritycareer/claritycareer/internal/db"
	"github.com/claritycareer/claritycareer/internal/seed"
)

var (
	seedFile string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load fixture data into the database",
	Long:  `Validate a JSON seed file against its schema and insert the users, companies, jobs, reviews, salaries, and interviews it contains.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "seed.json", "Path to the seed JSON file")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := seed.Run(ctx, database, seedFile); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	log.Printf("Seeded database from %s", seedFile)
	return nil
}
