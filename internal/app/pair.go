package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/cooccur/internal/basket"
	"github.com/blackwell-systems/cooccur/internal/output"
	"github.com/blackwell-systems/cooccur/internal/ranker"
)

var pairInput string

var pairCmd = &cobra.Command{
	Use:   "pair <item-i> <item-j>",
	Short: "Show the full contingency table and metrics for one pair",
	Long: `Build the 2x2 contingency table for a single item pair and print the
observed counts, the counts expected under independence, and all three
association metrics.

Items that appear in no basket are valid input — every observed
co-occurrence count is simply zero and the metrics follow from that.
The two items must be distinct.`,
	Example: `  cooccur pair Milk Flour

  # Quote labels containing spaces
  cooccur pair "Laundry Detergent" Softener

  # Against a basket file instead of the database
  cooccur pair Milk Flour --input orders.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runPair,
}

func init() {
	pairCmd.Flags().StringVar(&pairInput, "input", "", "Use a basket file instead of the database")

	RootCmd.AddCommand(pairCmd)
}

func runPair(cmd *cobra.Command, args []string) error {
	i, j := args[0], args[1]

	corpus, err := loadPairCorpus()
	if err != nil {
		return err
	}
	if len(corpus) == 0 {
		return fmt.Errorf("no baskets found; run 'cooccur import' first")
	}

	report, err := ranker.ScorePair(corpus, i, j)
	if err != nil {
		return err
	}

	fmt.Print(output.RenderPairReport(report))
	return nil
}

func loadPairCorpus() (basket.Corpus, error) {
	if pairInput != "" {
		f, err := os.Open(pairInput)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", pairInput, err)
		}
		defer f.Close()

		corpus, err := basket.ParseCorpus(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", pairInput, err)
		}
		return corpus, nil
	}

	st, err := openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()

	return st.LoadCorpus()
}
