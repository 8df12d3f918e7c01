// Package main provides the entry point for the résumé match scoring API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matcher_api",
	Short: "Résumé match scoring API server",
	Long:  "Matches user résumés against a catalog of job postings and serves per-user, per-job compatibility scores gated by subscription tier.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
