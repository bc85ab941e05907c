package app

import (
	"fmt"

	"github.com/blackwell-systems/cooccur/internal/config"
	"github.com/blackwell-systems/cooccur/internal/store"
)

// openStore opens the database and ensures the schema exists.
func openStore() (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}

	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := st.CreateSchema(); err != nil {
		st.Close()
		return nil, err
	}

	return st, nil
}

// loadAliases loads the alias config, returning an empty config when none
// is declared.
func loadAliases() (*config.AliasConfig, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config directory: %w", err)
	}

	cfg, err := config.LoadAliases(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load aliases: %w", err)
	}

	return cfg, nil
}
