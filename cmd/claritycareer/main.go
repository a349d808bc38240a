// Package main provides the entry point for the ClarityCareer HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "claritycareer",
	Short: "ClarityCareer HTTP API Server",
	Long:  "ClarityCareer serves a job board REST API: listings, company profiles, reviews, salaries, interview experiences, applications, and live watch streams.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
