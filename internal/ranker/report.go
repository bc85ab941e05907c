package ranker

import (
	"github.com/blackwell-systems/cooccur/internal/basket"
	"github.com/blackwell-systems/cooccur/internal/metrics"
)

// PairReport holds all three association statistics for one pair, plus the
// underlying contingency table for diagnostic rendering.
type PairReport struct {
	I, J basket.Item

	Table *metrics.ContingencyTable

	LocalMI       float64
	MutualInfo    float64
	LogLikelihood float64
}

// ScorePair computes the full report for a single pair. The contingency
// table is built once and queried for both generalized statistics.
func ScorePair(corpus basket.Corpus, i, j basket.Item) (*PairReport, error) {
	ct, err := metrics.NewContingencyTable(i, j, corpus)
	if err != nil {
		return nil, err
	}

	lmi, err := metrics.LocalMutualInformation(i, j, corpus)
	if err != nil {
		return nil, err
	}

	return &PairReport{
		I:             i,
		J:             j,
		Table:         ct,
		LocalMI:       lmi,
		MutualInfo:    ct.MutualInformation(),
		LogLikelihood: ct.LogLikelihood(),
	}, nil
}
