package basket

import (
	"reflect"
	"testing"
)

func TestBasket_SetSemantics(t *testing.T) {
	b := New("Milk", "Flour", "Milk")

	if b.Len() != 2 {
		t.Errorf("expected 2 distinct items, got %d", b.Len())
	}
	if !b.Contains("Milk") || !b.Contains("Flour") {
		t.Error("expected basket to contain Milk and Flour")
	}
	if b.Contains("Softener") {
		t.Error("did not expect basket to contain Softener")
	}

	b.Add("Softener")
	if !b.Contains("Softener") {
		t.Error("expected basket to contain Softener after Add")
	}
}

func TestBasket_ItemsSorted(t *testing.T) {
	b := New("c", "a", "b")
	got := b.Items()
	want := []Item{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCorpus_Items(t *testing.T) {
	c := Corpus{
		New("b", "a"),
		New("c", "a"),
		New(),
	}

	got := c.Items()
	want := []Item{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCorpus_FrequencyAndOccurrences(t *testing.T) {
	c := Corpus{
		New("a", "b"),
		New("a"),
		New("b"),
		New("c"),
	}

	if got := c.Frequency("a"); got != 2 {
		t.Errorf("expected Frequency(a)=2, got %d", got)
	}
	if got := c.Frequency("missing"); got != 0 {
		t.Errorf("expected Frequency(missing)=0, got %d", got)
	}
	// 2+1+1+1 item occurrences, distinct from the basket count of 4.
	if got := c.Occurrences(); got != 5 {
		t.Errorf("expected Occurrences()=5, got %d", got)
	}
}

func TestSample_EveryItemCovered(t *testing.T) {
	c := Sample()

	if len(c) == 0 {
		t.Fatal("expected non-empty sample corpus")
	}

	// The first basket holds the full vocabulary, so every sample item
	// must appear somewhere in the corpus.
	for _, item := range SampleItems {
		if c.Frequency(item) == 0 {
			t.Errorf("sample item %q appears in no basket", item)
		}
	}

	// And nothing outside the vocabulary sneaks in (guards against typos
	// in the hand-written baskets).
	known := make(map[Item]struct{}, len(SampleItems))
	for _, item := range SampleItems {
		known[item] = struct{}{}
	}
	for n, b := range c {
		for item := range b {
			if _, ok := known[item]; !ok {
				t.Errorf("basket %d contains unknown item %q", n, item)
			}
		}
	}
}
