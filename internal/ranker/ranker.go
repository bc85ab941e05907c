// Package ranker enumerates unordered item pairs over a corpus, scores each
// pair with an association metric, and returns the sorted results. The metric
// computations themselves live in the metrics package; this package is the
// driving caller.
package ranker

import (
	"fmt"
	"sort"
	"sync"

	"github.com/blackwell-systems/cooccur/internal/basket"
	"github.com/blackwell-systems/cooccur/internal/metrics"
)

// Metric selects which association statistic to rank by.
type Metric string

const (
	// MetricLocalMI is local mutual information: cheap, single-cell,
	// ignores sample size.
	MetricLocalMI Metric = "lmi"
	// MetricMutualInfo is generalized mutual information over the full
	// contingency table.
	MetricMutualInfo Metric = "mi"
	// MetricLogLikelihood is the log-likelihood ratio, the Fisher's Exact
	// Test approximation.
	MetricLogLikelihood Metric = "llr"
)

// ParseMetric validates a metric name from user input.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricLocalMI, MetricMutualInfo, MetricLogLikelihood:
		return Metric(s), nil
	}
	return "", fmt.Errorf("invalid metric %q: must be one of: lmi, mi, llr", s)
}

// PairScore is one scored unordered item pair. I < J always holds.
type PairScore struct {
	I, J  basket.Item
	Score float64
}

// Options controls a ranking run.
type Options struct {
	Metric Metric

	// Ascending sorts lowest score first (most dissociated pairs).
	// Default is descending (most associated first).
	Ascending bool

	// MinBaskets drops items appearing in fewer than this many baskets
	// before pairing. 0 or 1 keeps everything.
	MinBaskets int

	// Workers sets the number of goroutines scoring pairs. Each pair is
	// independent, so no coordination is needed beyond collecting
	// results. 0 or 1 runs sequentially.
	Workers int

	// Progress, if non-nil, is called after each pair is scored. It must
	// be safe for concurrent use when Workers > 1.
	Progress func()
}

// Rank scores every unordered pair of distinct items in the corpus exactly
// once (lexicographic canonical order, so (i, j) and (j, i) are never both
// computed) and returns the pairs sorted by score. Ties break by item
// labels for deterministic output.
func Rank(corpus basket.Corpus, opts Options) ([]PairScore, error) {
	if len(corpus) == 0 {
		return nil, metrics.ErrEmptyCorpus
	}
	if _, err := ParseMetric(string(opts.Metric)); err != nil {
		return nil, err
	}

	items := eligibleItems(corpus, opts.MinBaskets)

	var pairs []PairScore
	for a := 0; a < len(items); a++ {
		for b := a + 1; b < len(items); b++ {
			pairs = append(pairs, PairScore{I: items[a], J: items[b]})
		}
	}

	if err := scorePairs(corpus, opts, pairs); err != nil {
		return nil, err
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		if pairs[a].Score != pairs[b].Score {
			if opts.Ascending {
				return pairs[a].Score < pairs[b].Score
			}
			return pairs[a].Score > pairs[b].Score
		}
		if pairs[a].I != pairs[b].I {
			return pairs[a].I < pairs[b].I
		}
		return pairs[a].J < pairs[b].J
	})

	return pairs, nil
}

// NumPairs returns the number of pairs a ranking run will score, for
// progress reporting.
func NumPairs(corpus basket.Corpus, minBaskets int) int {
	n := len(eligibleItems(corpus, minBaskets))
	return n * (n - 1) / 2
}

// eligibleItems returns the sorted distinct items of the corpus, dropping
// those below the basket-frequency floor.
func eligibleItems(corpus basket.Corpus, minBaskets int) []basket.Item {
	items := corpus.Items()
	if minBaskets <= 1 {
		return items
	}

	freq := make(map[basket.Item]int, len(items))
	for _, b := range corpus {
		for it := range b {
			freq[it]++
		}
	}

	kept := items[:0]
	for _, it := range items {
		if freq[it] >= minBaskets {
			kept = append(kept, it)
		}
	}
	return kept
}

// scorePairs fills in the Score field of each pair, either sequentially or
// with a bounded pool of workers. Workers write to disjoint slice indices,
// so results need no locking.
func scorePairs(corpus basket.Corpus, opts Options, pairs []PairScore) error {
	score := func(p *PairScore) error {
		s, err := scoreOne(corpus, opts.Metric, p.I, p.J)
		if err != nil {
			return err
		}
		p.Score = s
		if opts.Progress != nil {
			opts.Progress()
		}
		return nil
	}

	if opts.Workers <= 1 {
		for k := range pairs {
			if err := score(&pairs[k]); err != nil {
				return err
			}
		}
		return nil
	}

	indexes := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Keep draining after an error so the feed below never
			// blocks on a dead pool; only the first error is kept.
			for k := range indexes {
				if err := score(&pairs[k]); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}()
	}

	for k := range pairs {
		indexes <- k
	}
	close(indexes)
	wg.Wait()

	return firstErr
}

func scoreOne(corpus basket.Corpus, m Metric, i, j basket.Item) (float64, error) {
	switch m {
	case MetricLocalMI:
		return metrics.LocalMutualInformation(i, j, corpus)
	case MetricMutualInfo, MetricLogLikelihood:
		ct, err := metrics.NewContingencyTable(i, j, corpus)
		if err != nil {
			return 0, err
		}
		if m == MetricMutualInfo {
			return ct.MutualInformation(), nil
		}
		return ct.LogLikelihood(), nil
	}
	return 0, fmt.Errorf("invalid metric %q", m)
}
