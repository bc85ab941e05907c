package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/cooccur/internal/basket"
	"github.com/blackwell-systems/cooccur/internal/store"
)

var importSource string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import baskets from a file into the database",
	Long: `Import transaction data from a basket file.

File format: one basket per line, items separated by commas. Blank lines
and lines starting with "#" are skipped. Item labels are normalized through
the alias config (~/.config/cooccur/aliases) before storage.

Each imported basket gets a generated transaction id, so importing the same
file twice stores its baskets twice — baskets legitimately repeat in retail
data, and the importer cannot tell a re-import from a repeat purchase.`,
	Example: `  # Import a basket file
  cooccur import orders.txt

  # Tag the imported baskets with an explicit source label
  cooccur import orders.txt --source "march-orders"`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importSource, "source", "", "source label stored with each basket (default: import:<filename>)")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	corpus, err := basket.ParseCorpus(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(corpus) == 0 {
		return fmt.Errorf("no baskets found in %s", path)
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

	source := importSource
	if source == "" {
		source = "import:" + filepath.Base(path)
	}

	// Offset each basket by a nanosecond so corpus loads preserve file order.
	now := time.Now().UTC()
	inserted := 0
	for k, b := range corpus {
		recordedAt := now.Add(time.Duration(k))
		items := make([]string, 0, b.Len())
		for _, item := range b.Items() {
			items = append(items, aliases.Canonical(item))
		}

		wasNew, err := st.InsertTransaction(&store.Transaction{
			ID:         uuid.NewString(),
			Source:     source,
			RecordedAt: recordedAt,
			Items:      items,
		})
		if err != nil {
			return fmt.Errorf("failed to store basket: %w", err)
		}
		if wasNew {
			inserted++
		}
	}

	fmt.Printf("Imported %d baskets from %s\n", inserted, path)
	return nil
}
