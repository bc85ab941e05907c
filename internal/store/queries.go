package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blackwell-systems/cooccur/internal/basket"
)

// Transaction operations

// InsertTransaction stores a transaction and its items atomically. A
// transaction id that already exists is skipped (INSERT OR IGNORE), so
// replayed log lines and re-imports are harmless; the returned bool reports
// whether a new row was actually written.
func (s *Store) InsertTransaction(txn *Transaction) (bool, error) {
	if len(txn.Items) == 0 {
		return false, fmt.Errorf("transaction %s has no items", txn.ID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	res, err := tx.Exec(
		`INSERT OR IGNORE INTO transactions (id, source, recorded_at) VALUES (?, ?, ?)`,
		txn.ID, txn.Source, txn.RecordedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return false, fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		// Already recorded; leave the existing items untouched.
		if err := tx.Rollback(); err != nil {
			return false, fmt.Errorf("failed to roll back duplicate insert: %w", err)
		}
		return false, nil
	}

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO transaction_items (transaction_id, item) VALUES (?, ?)`)
	if err != nil {
		tx.Rollback() //nolint:errcheck
		return false, fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range txn.Items {
		if _, err := stmt.Exec(txn.ID, item); err != nil {
			tx.Rollback() //nolint:errcheck
			return false, fmt.Errorf("failed to insert item %q for %s: %w", item, txn.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction %s: %w", txn.ID, err)
	}

	return true, nil
}

// HasTransaction reports whether a transaction id is already stored.
func (s *Store) HasTransaction(id string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM transactions WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check transaction %s: %w", id, err)
	}
	return true, nil
}

// LoadCorpus reads every stored transaction into a corpus. Baskets are
// ordered by (recorded_at, id) so repeated loads iterate identically —
// the order is irrelevant to the metrics but kept deterministic for
// reproducible output.
func (s *Store) LoadCorpus() (basket.Corpus, error) {
	rows, err := s.db.Query(`
		SELECT t.id, ti.item
		FROM transactions t
		JOIN transaction_items ti ON ti.transaction_id = t.id
		ORDER BY t.recorded_at, t.id, ti.item
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	defer rows.Close()

	var (
		corpus basket.Corpus
		lastID string
		cur    basket.Basket
	)
	for rows.Next() {
		var id, item string
		if err := rows.Scan(&id, &item); err != nil {
			return nil, fmt.Errorf("failed to scan corpus row: %w", err)
		}

		if id != lastID {
			if cur != nil {
				corpus = append(corpus, cur)
			}
			cur = make(basket.Basket)
			lastID = id
		}
		cur.Add(item)
	}
	if cur != nil {
		corpus = append(corpus, cur)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating corpus rows: %w", err)
	}

	return corpus, nil
}

// Statistics

// TransactionCount returns the number of stored transactions.
func (s *Store) TransactionCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// DistinctItemCount returns the number of distinct items across all
// transactions.
func (s *Store) DistinctItemCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(DISTINCT item) FROM transaction_items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct items: %w", err)
	}
	return count, nil
}

// ItemOccurrenceCount returns the total item-occurrence count (the sum of
// basket sizes) — the N used by local mutual information.
func (s *Store) ItemOccurrenceCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM transaction_items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count item occurrences: %w", err)
	}
	return count, nil
}

// ItemFrequencies returns items with their transaction counts, most frequent
// first. limit <= 0 returns all items.
func (s *Store) ItemFrequencies(limit int) ([]ItemCount, error) {
	query := `
		SELECT item, COUNT(*) AS n
		FROM transaction_items
		GROUP BY item
		ORDER BY n DESC, item
	`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query item frequencies: %w", err)
	}
	defer rows.Close()

	var counts []ItemCount
	for rows.Next() {
		var ic ItemCount
		if err := rows.Scan(&ic.Item, &ic.Count); err != nil {
			return nil, fmt.Errorf("failed to scan item frequency row: %w", err)
		}
		counts = append(counts, ic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item frequencies: %w", err)
	}

	return counts, nil
}

// FirstRecordedAt returns the timestamp of the earliest stored transaction.
// Returns zero time if the store is empty.
func (s *Store) FirstRecordedAt() (time.Time, error) {
	var ts sql.NullString
	err := s.db.QueryRow(`SELECT MIN(recorded_at) FROM transactions`).Scan(&ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get first transaction time: %w", err)
	}
	if !ts.Valid || ts.String == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339Nano, ts.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	return t, nil
}
