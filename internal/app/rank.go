package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/cooccur/internal/basket"
	"github.com/blackwell-systems/cooccur/internal/output"
	"github.com/blackwell-systems/cooccur/internal/ranker"
)

var (
	rankMetric     string
	rankTop        int
	rankAsc        bool
	rankMinBaskets int
	rankWorkers    int
	rankInput      string
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank item pairs by association strength",
	Long: `Score every unordered pair of distinct items in the corpus and list
the pairs sorted by the chosen metric.

Each pair is enumerated exactly once in canonical (lexicographic) order, so
(Milk, Flour) and (Flour, Milk) are never both computed — all three metrics
are symmetric.

Metrics:
  llr  Log-likelihood ratio (default). Strength of dependence; large values
       mean the pair's co-occurrence pattern is far from independent.
  mi   Generalized mutual information. Signed; negative values indicate the
       pair co-occurs less than chance predicts.
  lmi  Local mutual information. Fast, but blind to sample size: a pair seen
       twice scores the same as one seen two million times at the same ratio.

By default the corpus is loaded from the database; --input ranks a basket
file directly without touching the database.`,
	Example: `  # Most associated pairs by log-likelihood ratio
  cooccur rank

  # Most dissociated pairs (negative local MI first)
  cooccur rank --metric lmi --asc

  # Top 10 only, ignoring items seen in fewer than 5 baskets
  cooccur rank --top 10 --min-baskets 5

  # Rank a file directly, scoring pairs on 4 goroutines
  cooccur rank --input orders.txt --workers 4`,
	RunE: runRank,
}

func init() {
	rankCmd.Flags().StringVar(&rankMetric, "metric", "llr", "Metric: llr, mi, lmi")
	rankCmd.Flags().IntVar(&rankTop, "top", 0, "Show only the first N pairs (0 = all)")
	rankCmd.Flags().BoolVar(&rankAsc, "asc", false, "Sort ascending (lowest score first)")
	rankCmd.Flags().IntVar(&rankMinBaskets, "min-baskets", 0, "Drop items appearing in fewer than N baskets")
	rankCmd.Flags().IntVar(&rankWorkers, "workers", 1, "Goroutines scoring pairs")
	rankCmd.Flags().StringVar(&rankInput, "input", "", "Rank a basket file directly instead of the database")

	RootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	metric, err := ranker.ParseMetric(rankMetric)
	if err != nil {
		return err
	}
	if rankTop < 0 {
		return fmt.Errorf("invalid --top value %d: must be >= 0", rankTop)
	}
	if rankWorkers < 0 {
		return fmt.Errorf("invalid --workers value %d: must be >= 0", rankWorkers)
	}

	corpus, err := loadRankCorpus()
	if err != nil {
		return err
	}
	if len(corpus) == 0 {
		fmt.Println("No baskets found. Run 'cooccur import' or 'cooccur watch' to load data.")
		return nil
	}

	opts := ranker.Options{
		Metric:     metric,
		Ascending:  rankAsc,
		MinBaskets: rankMinBaskets,
		Workers:    rankWorkers,
	}

	// A progress bar is only worth the redraws on big vocabularies.
	total := ranker.NumPairs(corpus, rankMinBaskets)
	var bar *output.ProgressBar
	if total > 1000 {
		bar = output.NewProgress(total, "Scoring pairs")
		opts.Progress = bar.Increment
	}

	scores, err := ranker.Rank(corpus, opts)
	if err != nil {
		return fmt.Errorf("failed to rank pairs: %w", err)
	}
	if bar != nil {
		bar.Finish()
	}

	if rankTop > 0 && rankTop < len(scores) {
		scores = scores[:rankTop]
	}

	fmt.Print(output.RenderPairTable(scores, metric))
	fmt.Printf("\n%d pairs over %d baskets\n", total, len(corpus))
	return nil
}

// loadRankCorpus reads baskets from --input when given, otherwise from the
// database.
func loadRankCorpus() (basket.Corpus, error) {
	if rankInput != "" {
		f, err := os.Open(rankInput)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", rankInput, err)
		}
		defer f.Close()

		corpus, err := basket.ParseCorpus(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", rankInput, err)
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
