// Package basket defines the market-basket data model: items, baskets, and
// corpora. A basket records only presence or absence of an item — quantities
// are deliberately not modeled, since association metrics operate on
// co-occurrence alone.
package basket

import "sort"

// Item is an opaque item label. Any string works; ordering is only used to
// deduplicate symmetric pairs, never semantically.
type Item = string

// Basket is an unordered set of items representing one transaction.
type Basket map[Item]struct{}

// New creates a basket containing the given items. Duplicates collapse.
func New(items ...Item) Basket {
	b := make(Basket, len(items))
	for _, it := range items {
		b[it] = struct{}{}
	}
	return b
}

// Contains reports whether the basket holds the given item.
func (b Basket) Contains(i Item) bool {
	_, ok := b[i]
	return ok
}

// Add inserts an item into the basket.
func (b Basket) Add(i Item) {
	b[i] = struct{}{}
}

// Len returns the number of distinct items in the basket.
func (b Basket) Len() int {
	return len(b)
}

// Items returns the basket's items in lexicographic order.
func (b Basket) Items() []Item {
	items := make([]Item, 0, len(b))
	for it := range b {
		items = append(items, it)
	}
	sort.Strings(items)
	return items
}

// Corpus is an ordered sequence of baskets. Order is irrelevant to the math
// but kept deterministic for reproducible output.
type Corpus []Basket

// Items returns every distinct item appearing in the corpus, sorted.
func (c Corpus) Items() []Item {
	seen := make(map[Item]struct{})
	for _, b := range c {
		for it := range b {
			seen[it] = struct{}{}
		}
	}
	items := make([]Item, 0, len(seen))
	for it := range seen {
		items = append(items, it)
	}
	sort.Strings(items)
	return items
}

// Frequency returns the number of baskets containing the given item.
func (c Corpus) Frequency(i Item) int {
	n := 0
	for _, b := range c {
		if b.Contains(i) {
			n++
		}
	}
	return n
}

// Occurrences returns the total item-occurrence count across all baskets,
// i.e. the sum of basket sizes. Note this is a different quantity from the
// basket count len(c); the two are easy to confuse.
func (c Corpus) Occurrences() int {
	n := 0
	for _, b := range c {
		n += b.Len()
	}
	return n
}
