package store

import "time"

// Transaction is one recorded basket: an id, the source it was ingested
// from, and its distinct items.
type Transaction struct {
	ID         string
	Source     string // e.g. "import:orders.txt" or "watch"
	RecordedAt time.Time
	Items      []string
}

// ItemCount pairs an item with the number of transactions containing it.
type ItemCount struct {
	Item  string
	Count int
}
