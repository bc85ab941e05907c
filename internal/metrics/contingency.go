// Package metrics computes pairwise association statistics between items
// co-occurring in baskets: a 2x2 contingency table with generalized mutual
// information and log-likelihood ratio, plus a standalone local mutual
// information score.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/blackwell-systems/cooccur/internal/basket"
)

var (
	// ErrEmptyCorpus is returned when a metric is requested over zero
	// baskets. Expected counts divide by the basket count, so an empty
	// corpus is a precondition violation, not a NaN.
	ErrEmptyCorpus = errors.New("corpus must be non-empty")

	// ErrSameItem is returned when both item labels are equal. Comparing
	// an item against itself is a caller error.
	ErrSameItem = errors.New("items must be distinct")
)

// ContingencyTable holds co-occurrence counts for an item pair (i, j) over a
// corpus of baskets, together with marginals and the counts expected under
// the independence null hypothesis. Layout:
//
//	          j   |  ¬j   |
//	---------------------------
//	  i   |  O11  |  O12  |  R1
//	 ¬i   |  O21  |  O22  |  R2
//	      |   C1  |   C2  |   N
//
// The table is immutable after construction: all counts are computed once
// from the corpus and never updated.
type ContingencyTable struct {
	I, J basket.Item

	// Observed basket counts.
	O11 int // both i and j present
	O12 int // i present, j absent
	O21 int // i absent, j present
	O22 int // neither present

	// Marginals and grand total.
	R1, R2 int
	C1, C2 int
	N      int

	// Expected counts under independence: (row marginal x column
	// marginal) / N. Fractional even though observations are integers.
	E11, E12, E21, E22 float64
}

// NewContingencyTable builds the table for the pair (i, j) over the corpus
// in a single pass. The corpus must be non-empty and the items distinct.
func NewContingencyTable(i, j basket.Item, corpus basket.Corpus) (*ContingencyTable, error) {
	if i == j {
		return nil, fmt.Errorf("contingency table for %q: %w", i, ErrSameItem)
	}
	if len(corpus) == 0 {
		return nil, fmt.Errorf("contingency table for (%q, %q): %w", i, j, ErrEmptyCorpus)
	}

	t := &ContingencyTable{I: i, J: j}

	for _, b := range corpus {
		hasI, hasJ := b.Contains(i), b.Contains(j)
		switch {
		case hasI && hasJ:
			t.O11++
		case hasI:
			t.O12++
		case hasJ:
			t.O21++
		default:
			t.O22++
		}
	}

	t.R1 = t.O11 + t.O12
	t.R2 = t.O21 + t.O22
	t.C1 = t.O11 + t.O21
	t.C2 = t.O12 + t.O22
	t.N = t.R1 + t.R2

	n := float64(t.N)
	t.E11 = float64(t.R1) * float64(t.C1) / n
	t.E12 = float64(t.R1) * float64(t.C2) / n
	t.E21 = float64(t.R2) * float64(t.C1) / n
	t.E22 = float64(t.R2) * float64(t.C2) / n

	return t, nil
}

// MutualInformation returns the generalized mutual information for the pair:
//
//	MI(i, j) = sum over the four cells of O * log2(O / E)
//
// the log-dampened divergence between what the corpus shows and what
// uniformly random basket assembly would predict. Cells with a zero observed
// count contribute exactly 0 (the limiting value of x*log x as x -> 0); each
// term is guarded separately so a zero never reaches the log. The result may
// be negative, zero, or positive.
func (t *ContingencyTable) MutualInformation() float64 {
	sum := 0.0
	if t.O11 > 0 {
		sum += float64(t.O11) * math.Log2(float64(t.O11)/t.E11)
	}
	if t.O12 > 0 {
		sum += float64(t.O12) * math.Log2(float64(t.O12)/t.E12)
	}
	if t.O21 > 0 {
		sum += float64(t.O21) * math.Log2(float64(t.O21)/t.E21)
	}
	if t.O22 > 0 {
		sum += float64(t.O22) * math.Log2(float64(t.O22)/t.E22)
	}
	return sum
}

// LogLikelihood returns the log-likelihood ratio for the pair:
//
//	LL(i, j) = 2 * sum over the four cells of O * ln(O / E)
//
// Same structure as MutualInformation with the natural log and a factor of
// 2; a classical, tractable approximation to Fisher's Exact Test for 2x2
// association. Asymptotically non-negative, but the value is not clamped:
// floating-point edge cases can yield tiny negatives near zero and callers
// must tolerate them. Zero-count cells contribute exactly 0.
func (t *ContingencyTable) LogLikelihood() float64 {
	sum := 0.0
	if t.O11 > 0 {
		sum += float64(t.O11) * math.Log(float64(t.O11)/t.E11)
	}
	if t.O12 > 0 {
		sum += float64(t.O12) * math.Log(float64(t.O12)/t.E12)
	}
	if t.O21 > 0 {
		sum += float64(t.O21) * math.Log(float64(t.O21)/t.E21)
	}
	if t.O22 > 0 {
		sum += float64(t.O22) * math.Log(float64(t.O22)/t.E22)
	}
	return 2 * sum
}

// String renders the observed and expected tables for diagnostic output.
func (t *ContingencyTable) String() string {
	var sb strings.Builder

	w := len(t.I)
	if len(t.J) > w {
		w = len(t.J)
	}

	fmt.Fprintf(&sb, "Observed:\n")
	fmt.Fprintf(&sb, "%*s | %s | ¬%s |\n", w+1, "", t.J, t.J)
	fmt.Fprintf(&sb, " %-*s | %d | %d | %d\n", w, t.I, t.O11, t.O12, t.R1)
	fmt.Fprintf(&sb, "¬%-*s | %d | %d | %d\n", w, t.I, t.O21, t.O22, t.R2)
	fmt.Fprintf(&sb, "%*s | %d | %d | %d\n", w+1, "", t.C1, t.C2, t.N)
	fmt.Fprintf(&sb, "Expected:\n")
	fmt.Fprintf(&sb, " %-*s | %.3f | %.3f\n", w, t.I, t.E11, t.E12)
	fmt.Fprintf(&sb, "¬%-*s | %.3f | %.3f\n", w, t.I, t.E21, t.E22)

	return sb.String()
}
