package watcher

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/blackwell-systems/cooccur/internal/config"
	"github.com/blackwell-systems/cooccur/internal/store"
)

const (
	logName    = "transactions.log"
	offsetName = "transactions.offset"

	maxLogLinesPerTick = 10_000
)

// ProcessTransactionLog reads new entries from {dir}/transactions.log since
// the last processed byte offset and inserts them as transactions. Returns
// the number of newly inserted baskets.
//
// Log format (one basket per line):
//
//	<unix_nano>,<transaction_id>,<item;item;...>
//
// Example:
//
//	1709012345678901234,9f1c2d,Milk;Flour;Toothpaste
//
// Malformed lines are logged and skipped. Item labels are normalized
// through the alias config when one is provided. Duplicate transaction ids
// are skipped cheaply via the seen cache, and harmlessly via INSERT OR
// IGNORE when the cache has forgotten them. Returns 0 with no error when
// the log file does not yet exist.
func ProcessTransactionLog(st *store.Store, dir string, aliases *config.AliasConfig, seen *lru.Cache[string, struct{}]) (int, error) {
	logPath := filepath.Join(dir, logName)
	offsetPath := filepath.Join(dir, offsetName)

	// No-op: nothing has written the log yet.
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		return 0, nil
	}

	offset, err := readOffset(offsetPath)
	if err != nil {
		return 0, fmt.Errorf("log_processor: read offset: %w", err)
	}

	f, err := os.Open(logPath)
	if err != nil {
		return 0, fmt.Errorf("log_processor: open log: %w", err)
	}
	defer f.Close()

	if offset > 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			// Offset may be stale after log rotation — reset to 0.
			log.Printf("log_processor: seek failed (offset=%d), resetting: %v", offset, err)
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				return 0, fmt.Errorf("log_processor: seek reset failed: %w", err)
			}
		}
	}

	inserted := 0
	lines := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() && lines < maxLogLinesPerTick {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines++

		txn, ok := parseLogLine(line)
		if !ok {
			log.Printf("log_processor: skipping malformed line: %q", line)
			continue
		}

		if seen != nil {
			if _, dup := seen.Get(txn.ID); dup {
				continue
			}
		}

		if aliases != nil {
			for k, item := range txn.Items {
				txn.Items[k] = aliases.Canonical(item)
			}
		}
		txn.Source = "watch"

		wasNew, err := st.InsertTransaction(txn)
		if err != nil {
			return inserted, fmt.Errorf("log_processor: insert %s: %w", txn.ID, err)
		}
		if wasNew {
			inserted++
		}
		if seen != nil {
			seen.Add(txn.ID, struct{}{})
		}
	}
	if err := scanner.Err(); err != nil {
		return inserted, fmt.Errorf("log_processor: scan log: %w", err)
	}

	// Capture the new file offset after scanning.
	newOffset, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return inserted, fmt.Errorf("log_processor: get new offset: %w", err)
	}

	if newOffset != offset {
		if err := writeOffsetAtomic(offsetPath, newOffset); err != nil {
			return inserted, err
		}
	}

	return inserted, nil
}

// parseLogLine parses "<unix_nano>,<txn_id>,<item;item;...>".
// Returns (nil, false) on any parse error.
func parseLogLine(line string) (*store.Transaction, bool) {
	parts := strings.SplitN(line, ",", 3)
	if len(parts) != 3 {
		return nil, false
	}

	ts, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || ts <= 0 {
		return nil, false
	}

	id := strings.TrimSpace(parts[1])
	if id == "" {
		return nil, false
	}

	var items []string
	for _, field := range strings.Split(parts[2], ";") {
		item := strings.TrimSpace(field)
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, false
	}

	return &store.Transaction{
		ID:         id,
		RecordedAt: time.Unix(0, ts).UTC(),
		Items:      items,
	}, true
}

// readOffset reads the byte offset from the offset tracking file.
// Returns 0 if the file does not exist.
func readOffset(offsetPath string) (int64, error) {
	data, err := os.ReadFile(offsetPath)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return 0, nil
	}
	offset, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse offset %q: %w", s, err)
	}
	return offset, nil
}

// writeOffsetAtomic writes newOffset to offsetPath via a temp-file rename,
// ensuring the update is atomic and crash-safe.
func writeOffsetAtomic(offsetPath string, newOffset int64) error {
	dir := filepath.Dir(offsetPath)
	tmpPath := filepath.Join(dir, ".offset.tmp")

	if err := os.WriteFile(tmpPath, []byte(strconv.FormatInt(newOffset, 10)), 0600); err != nil {
		return fmt.Errorf("write temp offset file: %w", err)
	}
	if err := os.Rename(tmpPath, offsetPath); err != nil {
		return fmt.Errorf("rename offset file: %w", err)
	}
	return nil
}
