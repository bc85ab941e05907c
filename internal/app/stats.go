package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/cooccur/internal/output"
)

var statsTop int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for the stored corpus",
	Long: `Display corpus-level statistics: transaction count, vocabulary size,
total item occurrences, and the most frequent items.

Note the two different totals in play: the basket count is the N used by
the contingency-table metrics, while the item-occurrence total (sum of
basket sizes) is the N used by local mutual information.`,
	Example: `  cooccur stats

  # Show the 25 most frequent items
  cooccur stats --top 25`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsTop, "top", 10, "Number of most frequent items to list")

	RootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsTop < 0 {
		return fmt.Errorf("invalid --top value %d: must be >= 0", statsTop)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	transactions, err := st.TransactionCount()
	if err != nil {
		return err
	}
	if transactions == 0 {
		fmt.Println("No baskets found. Run 'cooccur import' or 'cooccur watch' to load data.")
		return nil
	}

	items, err := st.DistinctItemCount()
	if err != nil {
		return err
	}
	occurrences, err := st.ItemOccurrenceCount()
	if err != nil {
		return err
	}

	fmt.Print(output.RenderCorpusStats(output.CorpusStats{
		Transactions:    transactions,
		DistinctItems:   items,
		ItemOccurrences: occurrences,
		Pairs:           items * (items - 1) / 2,
	}))

	if statsTop > 0 {
		counts, err := st.ItemFrequencies(statsTop)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(output.RenderItemTable(counts, transactions))
	}

	return nil
}
