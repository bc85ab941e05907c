package metrics

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/blackwell-systems/cooccur/internal/basket"
)

const epsilon = 1e-9

func closeTo(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// testCorpus is the reference scenario: N=4, and for the pair (A, B) every
// cell of the contingency table equals 1.
func testCorpus() basket.Corpus {
	return basket.Corpus{
		basket.New("A", "B"),
		basket.New("A"),
		basket.New("B"),
		basket.New("C"),
	}
}

func TestNewContingencyTable_ReferenceScenario(t *testing.T) {
	ct, err := NewContingencyTable("A", "B", testCorpus())
	if err != nil {
		t.Fatalf("NewContingencyTable failed: %v", err)
	}

	if ct.O11 != 1 || ct.O12 != 1 || ct.O21 != 1 || ct.O22 != 1 {
		t.Errorf("expected all observed cells 1, got O11=%d O12=%d O21=%d O22=%d",
			ct.O11, ct.O12, ct.O21, ct.O22)
	}
	if ct.R1 != 2 || ct.R2 != 2 || ct.C1 != 2 || ct.C2 != 2 {
		t.Errorf("expected all marginals 2, got R1=%d R2=%d C1=%d C2=%d",
			ct.R1, ct.R2, ct.C1, ct.C2)
	}
	if ct.N != 4 {
		t.Errorf("expected N=4, got %d", ct.N)
	}

	for name, e := range map[string]float64{"E11": ct.E11, "E12": ct.E12, "E21": ct.E21, "E22": ct.E22} {
		if !closeTo(e, 1.0, epsilon) {
			t.Errorf("expected %s=1.0, got %g", name, e)
		}
	}

	// All four ratios are 1/1, so both statistics are exactly zero.
	if mi := ct.MutualInformation(); !closeTo(mi, 0, epsilon) {
		t.Errorf("expected MutualInformation 0, got %g", mi)
	}
	if ll := ct.LogLikelihood(); !closeTo(ll, 0, epsilon) {
		t.Errorf("expected LogLikelihood 0, got %g", ll)
	}
}

func TestNewContingencyTable_EmptyCorpus(t *testing.T) {
	_, err := NewContingencyTable("A", "B", nil)
	if err == nil {
		t.Fatal("expected error for empty corpus, got nil")
	}
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestNewContingencyTable_SameItem(t *testing.T) {
	_, err := NewContingencyTable("A", "A", testCorpus())
	if err == nil {
		t.Fatal("expected error for identical items, got nil")
	}
	if !errors.Is(err, ErrSameItem) {
		t.Errorf("expected ErrSameItem, got %v", err)
	}
}

// randomCorpus builds a corpus where each of the given items lands in each
// basket independently with its own probability.
func randomCorpus(rng *rand.Rand, n int, probs map[basket.Item]float64) basket.Corpus {
	corpus := make(basket.Corpus, 0, n)
	for k := 0; k < n; k++ {
		b := make(basket.Basket)
		for item, p := range probs {
			if rng.Float64() < p {
				b.Add(item)
			}
		}
		corpus = append(corpus, b)
	}
	return corpus
}

func TestContingencyTable_MarginalConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 20; trial++ {
		corpus := randomCorpus(rng, 50+trial, map[basket.Item]float64{
			"x": 0.3, "y": 0.6, "z": 0.1,
		})

		ct, err := NewContingencyTable("x", "y", corpus)
		if err != nil {
			t.Fatalf("trial %d: NewContingencyTable failed: %v", trial, err)
		}

		if sum := ct.O11 + ct.O12 + ct.O21 + ct.O22; sum != len(corpus) {
			t.Errorf("trial %d: cell sum %d != basket count %d", trial, sum, len(corpus))
		}
		if ct.R1+ct.R2 != ct.N || ct.C1+ct.C2 != ct.N {
			t.Errorf("trial %d: marginals do not sum to N: R1+R2=%d C1+C2=%d N=%d",
				trial, ct.R1+ct.R2, ct.C1+ct.C2, ct.N)
		}
		if ct.R1 != ct.O11+ct.O12 {
			t.Errorf("trial %d: R1=%d != O11+O12=%d", trial, ct.R1, ct.O11+ct.O12)
		}
		if ct.C1 != ct.O11+ct.O21 {
			t.Errorf("trial %d: C1=%d != O11+O21=%d", trial, ct.C1, ct.O11+ct.O21)
		}

		// Expected counts reproduce the same marginals as the observed ones.
		if !closeTo(ct.E11+ct.E12, float64(ct.R1), 1e-6) {
			t.Errorf("trial %d: E11+E12=%g != R1=%d", trial, ct.E11+ct.E12, ct.R1)
		}
		if !closeTo(ct.E21+ct.E22, float64(ct.R2), 1e-6) {
			t.Errorf("trial %d: E21+E22=%g != R2=%d", trial, ct.E21+ct.E22, ct.R2)
		}
		if !closeTo(ct.E11+ct.E21, float64(ct.C1), 1e-6) {
			t.Errorf("trial %d: E11+E21=%g != C1=%d", trial, ct.E11+ct.E21, ct.C1)
		}
		if !closeTo(ct.E12+ct.E22, float64(ct.C2), 1e-6) {
			t.Errorf("trial %d: E12+E22=%g != C2=%d", trial, ct.E12+ct.E22, ct.C2)
		}
	}
}

func TestContingencyTable_Symmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	corpus := randomCorpus(rng, 200, map[basket.Item]float64{
		"milk": 0.5, "flour": 0.25, "soap": 0.1,
	})

	pairs := [][2]basket.Item{{"milk", "flour"}, {"milk", "soap"}, {"flour", "soap"}}
	for _, p := range pairs {
		ab, err := NewContingencyTable(p[0], p[1], corpus)
		if err != nil {
			t.Fatalf("NewContingencyTable(%s, %s) failed: %v", p[0], p[1], err)
		}
		ba, err := NewContingencyTable(p[1], p[0], corpus)
		if err != nil {
			t.Fatalf("NewContingencyTable(%s, %s) failed: %v", p[1], p[0], err)
		}

		if !closeTo(ab.MutualInformation(), ba.MutualInformation(), epsilon) {
			t.Errorf("MutualInformation not symmetric for (%s, %s): %g vs %g",
				p[0], p[1], ab.MutualInformation(), ba.MutualInformation())
		}
		if !closeTo(ab.LogLikelihood(), ba.LogLikelihood(), epsilon) {
			t.Errorf("LogLikelihood not symmetric for (%s, %s): %g vs %g",
				p[0], p[1], ab.LogLikelihood(), ba.LogLikelihood())
		}
	}
}

// TestContingencyTable_ExactIndependence builds a corpus where
// P(i and j) = P(i) * P(j) holds exactly: over 4 baskets, i appears in 2,
// j appears in 2, and they share exactly 1.
func TestContingencyTable_ExactIndependence(t *testing.T) {
	corpus := basket.Corpus{
		basket.New("i", "j"),
		basket.New("i"),
		basket.New("j"),
		basket.New(),
	}

	ct, err := NewContingencyTable("i", "j", corpus)
	if err != nil {
		t.Fatalf("NewContingencyTable failed: %v", err)
	}

	if mi := ct.MutualInformation(); !closeTo(mi, 0, epsilon) {
		t.Errorf("expected MutualInformation ~0 under exact independence, got %g", mi)
	}
	if ll := ct.LogLikelihood(); !closeTo(ll, 0, epsilon) {
		t.Errorf("expected LogLikelihood ~0 under exact independence, got %g", ll)
	}
}

func TestContingencyTable_ZeroCooccurrenceCell(t *testing.T) {
	// "a" and "b" never share a basket: O11 = 0.
	corpus := basket.Corpus{
		basket.New("a"),
		basket.New("b"),
		basket.New("a"),
		basket.New("c"),
	}

	ct, err := NewContingencyTable("a", "b", corpus)
	if err != nil {
		t.Fatalf("NewContingencyTable failed: %v", err)
	}
	if ct.O11 != 0 {
		t.Fatalf("expected O11=0, got %d", ct.O11)
	}

	// The zero cell must contribute exactly 0, never NaN or -Inf.
	mi := ct.MutualInformation()
	ll := ct.LogLikelihood()
	if math.IsNaN(mi) || math.IsInf(mi, 0) {
		t.Errorf("MutualInformation produced %g with a zero cell", mi)
	}
	if math.IsNaN(ll) || math.IsInf(ll, 0) {
		t.Errorf("LogLikelihood produced %g with a zero cell", ll)
	}

	// Recomputing from the three non-zero cells confirms the zero cell
	// contributed nothing.
	want := float64(ct.O12)*math.Log2(float64(ct.O12)/ct.E12) +
		float64(ct.O21)*math.Log2(float64(ct.O21)/ct.E21) +
		float64(ct.O22)*math.Log2(float64(ct.O22)/ct.E22)
	if !closeTo(mi, want, epsilon) {
		t.Errorf("expected MutualInformation %g from non-zero cells, got %g", want, mi)
	}
}

func TestContingencyTable_AssociatedPairScoresHigh(t *testing.T) {
	corpus := basket.Sample()

	assoc, err := NewContingencyTable("Laundry Detergent", "Softener", corpus)
	if err != nil {
		t.Fatalf("NewContingencyTable failed: %v", err)
	}
	unrelated, err := NewContingencyTable("Screwdriver", "Toothpaste", corpus)
	if err != nil {
		t.Fatalf("NewContingencyTable failed: %v", err)
	}

	if assoc.LogLikelihood() <= unrelated.LogLikelihood() {
		t.Errorf("expected detergent/softener LL %g > screwdriver/toothpaste LL %g",
			assoc.LogLikelihood(), unrelated.LogLikelihood())
	}
	if assoc.MutualInformation() <= unrelated.MutualInformation() {
		t.Errorf("expected detergent/softener MI %g > screwdriver/toothpaste MI %g",
			assoc.MutualInformation(), unrelated.MutualInformation())
	}
}

// TestLogLikelihood_NullHypothesisClustersNearZero generates corpora where
// the two items really are independent and checks that the log-likelihood
// ratio stays small on average. A statistical property, so it is asserted
// with generous tolerance over repetitions rather than strictly per-trial.
func TestLogLikelihood_NullHypothesisClustersNearZero(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	const trials = 50
	total := 0.0
	for trial := 0; trial < trials; trial++ {
		corpus := randomCorpus(rng, 500, map[basket.Item]float64{
			"p": 0.4, "q": 0.4,
		})
		ct, err := NewContingencyTable("p", "q", corpus)
		if err != nil {
			t.Fatalf("trial %d: NewContingencyTable failed: %v", trial, err)
		}

		ll := ct.LogLikelihood()
		// Tiny negatives are tolerated (floating point near zero), but a
		// meaningfully negative value would be a computation bug.
		if ll < -1e-6 {
			t.Errorf("trial %d: LogLikelihood meaningfully negative: %g", trial, ll)
		}
		total += ll
	}

	// Under the null, 2*sum O ln(O/E) is asymptotically chi-squared with
	// 1 degree of freedom: mean 1. An average far above that indicates
	// the statistic is finding association where none exists.
	if mean := total / trials; mean > 3.0 {
		t.Errorf("expected mean LogLikelihood near 1 under the null, got %g", mean)
	}
}

func TestContingencyTable_StringIncludesCounts(t *testing.T) {
	ct, err := NewContingencyTable("A", "B", testCorpus())
	if err != nil {
		t.Fatalf("NewContingencyTable failed: %v", err)
	}

	s := ct.String()
	if s == "" {
		t.Fatal("expected non-empty rendering")
	}
	for _, want := range []string{"Observed", "Expected", "A", "B"} {
		if !strings.Contains(s, want) {
			t.Errorf("rendering missing %q:\n%s", want, s)
		}
	}
}
