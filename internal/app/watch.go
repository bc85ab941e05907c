package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/cooccur/internal/watcher"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Ingest baskets appended to the transaction log",
	Long: `Run the transaction-log watcher in the foreground (Ctrl+C to stop).

Anything that can append a line can feed the corpus: point-of-sale
exporters, cron jobs, shell one-liners. Log format (one basket per line,
appended to ~/.cooccur/transactions.log):

  <unix_nano>,<transaction_id>,<item;item;...>

New lines are picked up via filesystem notifications, with a polling
interval as fallback, and batch-inserted into the database. The byte
offset of processed data is tracked next to the log, so restarting the
watcher never re-reads old lines; duplicated transaction ids are skipped.
Item labels are normalized through the alias config.`,
	Example: `  # Run in foreground (Ctrl+C to stop)
  cooccur watch

  # Poll every 5 seconds when fs notifications are unreliable
  cooccur watch --interval 5s

  # Feed it a basket from a shell
  echo "$(date +%s%N),$(uuidgen),Milk;Flour" >> ~/.cooccur/transactions.log`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 30*time.Second, "fallback polling interval")

	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir, err := getDataDir()
	if err != nil {
		return err
	}

	aliases, err := loadAliases()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	w, err := watcher.New(st, dir, aliases, watchInterval)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Printf("Watching %s/transactions.log (Ctrl+C to stop)\n", dir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nStopping watcher...")
	if err := w.Stop(); err != nil {
		return fmt.Errorf("failed to stop watcher: %w", err)
	}

	return nil
}
