package app

import (
	"testing"
)

func TestRootCommand(t *testing.T) {
	// Test that root command is properly configured
	if RootCmd.Use != "cooccur" {
		t.Errorf("expected Use to be 'cooccur', got '%s'", RootCmd.Use)
	}

	if RootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if RootCmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	// Test that subcommands are registered
	commands := RootCmd.Commands()

	expected := []string{"import", "rank", "pair", "stats", "demo", "watch"}
	found := make(map[string]bool)

	for _, cmd := range commands {
		found[cmd.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected command '%s' to be registered", name)
		}
	}
}

func TestRootCommandHasPersistentFlags(t *testing.T) {
	// Test that --db flag is available
	flag := RootCmd.PersistentFlags().Lookup("db")
	if flag == nil {
		t.Fatal("expected --db flag to be registered")
	}

	if flag.Usage == "" {
		t.Error("expected --db flag to have usage text")
	}
}

func TestGetDBPath_CustomPath(t *testing.T) {
	oldDBPath := dbPath
	dbPath = "/tmp/test-cooccur.db"
	defer func() { dbPath = oldDBPath }()

	got, err := getDBPath()
	if err != nil {
		t.Fatalf("getDBPath failed: %v", err)
	}
	if got != "/tmp/test-cooccur.db" {
		t.Errorf("expected flag value to win, got %q", got)
	}
}

func TestRankCommand_Flags(t *testing.T) {
	for _, name := range []string{"metric", "top", "asc", "min-baskets", "workers", "input"} {
		if rankCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %s not defined on rank", name)
		}
	}

	metricFlag := rankCmd.Flags().Lookup("metric")
	if metricFlag.DefValue != "llr" {
		t.Errorf("metric flag default: got %s, want llr", metricFlag.DefValue)
	}
}

func TestDemoCommand_Runs(t *testing.T) {
	// The demo command only touches the built-in sample corpus, so it can
	// run end to end in tests.
	oldTop := demoTop
	demoTop = 3
	defer func() { demoTop = oldTop }()

	if err := runDemo(demoCmd, nil); err != nil {
		t.Fatalf("demo failed: %v", err)
	}
}
