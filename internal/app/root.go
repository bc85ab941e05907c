package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath string

	// RootCmd is the root command for cooccur
	RootCmd = &cobra.Command{
		Use:   "cooccur",
		Short: "Pairwise association metrics for market-basket data",
		Long: `cooccur computes association-strength metrics between items that
co-occur in transactions ("baskets"): which products predict the purchase
of which other products, and how strongly.

Three metrics are available:
  lmi  Local mutual information — cheap single-cell score; sign gives the
       direction of association, but sample size is ignored.
  mi   Generalized mutual information over the full 2x2 contingency table.
  llr  Log-likelihood ratio — a tractable approximation of Fisher's Exact
       Test; the most reliable ranking for "which pairs really go together".

Quick Start:
  1. cooccur demo                  # see the metrics on built-in sample data
  2. cooccur import orders.txt    # load your own baskets
  3. cooccur rank --metric llr    # most associated pairs
  4. cooccur pair Milk Flour      # full contingency table for one pair

Examples:
  # Most dissociated pairs (items that avoid each other)
  cooccur rank --metric lmi --asc

  # Ignore items seen in fewer than 5 baskets
  cooccur rank --min-baskets 5

  # Keep ingesting baskets appended to ~/.cooccur/transactions.log
  cooccur watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := getDBPath()
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Println("cooccur: pairwise association metrics for market-basket data")
				fmt.Println()
				fmt.Println("Run 'cooccur demo' to see the metrics on sample data.")
				fmt.Println("Run 'cooccur --help' for the full reference.")
			} else {
				fmt.Println("cooccur: pairwise association metrics for market-basket data")
				fmt.Println()
				fmt.Println("Tip: Run 'cooccur stats' to inspect the stored corpus.")
				fmt.Println("     Run 'cooccur rank' to list the most associated pairs.")
				fmt.Println("     Run 'cooccur --help' for all commands.")
			}
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.cooccur/cooccur.db)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDataDir returns ~/.cooccur, creating it if needed.
func getDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".cooccur")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cooccur directory: %w", err)
	}

	return dir, nil
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	dir, err := getDataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "cooccur.db"), nil
}
