// Package watcher ingests transaction data appended to the cooccur
// transaction log. Point-of-sale exporters (or anything else) append one
// line per basket to ~/.cooccur/transactions.log; the watcher picks up new
// lines and batch-inserts them into the database.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/blackwell-systems/cooccur/internal/config"
	"github.com/blackwell-systems/cooccur/internal/store"
)

// recentIDCacheSize bounds the cache of transaction ids already ingested.
// Exporters that rewrite their tail on flush produce short runs of repeated
// lines; the cache lets those skip the database entirely.
const recentIDCacheSize = 4096

// Watcher tails the transaction log and inserts new baskets into the store.
// A filesystem notification on the log file is the primary wakeup; a ticker
// provides a fallback for filesystems where notifications are unreliable
// (network mounts, some containers).
type Watcher struct {
	store    *store.Store
	dir      string
	aliases  *config.AliasConfig
	interval time.Duration

	seen   *lru.Cache[string, struct{}]
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a Watcher reading the log under dir (typically ~/.cooccur).
// aliases may be nil if no alias config exists.
func New(st *store.Store, dir string, aliases *config.AliasConfig, interval time.Duration) (*Watcher, error) {
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if dir == "" {
		return nil, fmt.Errorf("data directory cannot be empty")
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}

	seen, err := lru.New[string, struct{}](recentIDCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create id cache: %w", err)
	}

	return &Watcher{
		store:    st,
		dir:      dir,
		aliases:  aliases,
		interval: interval,
		seen:     seen,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start processes any lines already in the log, then begins watching for
// appends. Processing errors while running are logged to stderr rather than
// stopping the watcher.
func (w *Watcher) Start() error {
	if _, err := ProcessTransactionLog(w.store, w.dir, w.aliases, w.seen); err != nil {
		fmt.Fprintf(os.Stderr, "watcher: initial log processing: %v\n", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fs watcher: %w", err)
	}
	// Watch the directory, not the file: exporters may rotate or recreate
	// the log, and a directory watch survives that.
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.wg.Add(1)
	go w.run(fsw)

	return nil
}

// run processes the log on fsnotify events for the log file, on each tick,
// and once more on shutdown.
func (w *Watcher) run(fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fsw.Close()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logPath := filepath.Join(w.dir, logName)

	process := func(context string) {
		if _, err := ProcessTransactionLog(w.store, w.dir, w.aliases, w.seen); err != nil {
			fmt.Fprintf(os.Stderr, "watcher: %s: %v\n", context, err)
		}
	}

	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if ev.Name != logPath {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				process("log processing")
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: fsnotify error: %v\n", err)
		case <-ticker.C:
			process("tick processing")
		case <-w.stopCh:
			process("final flush")
			return
		}
	}
}

// Stop halts the watcher after flushing any remaining log lines.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	w.wg.Wait()
	return nil
}
