package metrics

import (
	"fmt"
	"math"

	"github.com/blackwell-systems/cooccur/internal/basket"
)

// LocalMutualInformation scores the association between two items using only
// their co-occurrence cell: the log ratio of observed co-occurrences to the
// count expected if items were distributed among baskets uniformly at random.
//
//	0  => no association (buying one says nothing about the other)
//	>0 => positive association (co-purchase more likely than chance)
//	<0 => negative association (co-purchase less likely than chance)
//
// If the items never co-occur the result is exactly 0: "never seen together"
// carries zero information here, not negative infinity. The expected count is
// freq(i) * freq(j) / N where N is the total item-occurrence count across all
// baskets — not the basket count used by ContingencyTable.
//
// The measure ignores absolute sample size: (O=2, E=1) scores the same as
// (O=2e25, E=1e25). That is a property of the statistic, and it makes the
// score unreliable for rarely purchased items.
func LocalMutualInformation(i, j basket.Item, corpus basket.Corpus) (float64, error) {
	if i == j {
		return 0, fmt.Errorf("local mutual information for %q: %w", i, ErrSameItem)
	}
	if len(corpus) == 0 {
		return 0, fmt.Errorf("local mutual information for (%q, %q): %w", i, j, ErrEmptyCorpus)
	}

	observed := 0
	for _, b := range corpus {
		if b.Contains(i) && b.Contains(j) {
			observed++
		}
	}
	if observed == 0 {
		return 0, nil
	}

	freqI := corpus.Frequency(i)
	freqJ := corpus.Frequency(j)
	n := corpus.Occurrences()

	expected := float64(freqI) * float64(freqJ) / float64(n)

	return math.Log2(float64(observed) / expected), nil
}
