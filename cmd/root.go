package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/briolearn/brio/internal/calendar"
	"github.com/briolearn/brio/internal/clock"
	"github.com/briolearn/brio/internal/ledger"
	"github.com/briolearn/brio/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "brio",
	Short:        "Gamified learning tracker for primary-school students",
	Long:         "Brio — progression, mastery, and streak tracking for primary-school students in Chile.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BRIO_DB env var)")

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(rolloverCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(overrideCmd)
	rootCmd.AddCommand(badgesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then BRIO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the store for a command invocation.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newClock builds the reference clock, honoring an --at flag (RFC 3339)
// when the command defines one. Support staff use it to replay a
// student's situation at a specific instant.
func newClock(cmd *cobra.Command) (*clock.Clock, error) {
	atFlag := cmd.Flags().Lookup("at")
	if atFlag == nil || atFlag.Value.String() == "" {
		return clock.New(), nil
	}
	instant, err := time.Parse(time.RFC3339, atFlag.Value.String())
	if err != nil {
		return nil, fmt.Errorf("parse --at: %w", err)
	}
	return clock.Fixed(instant), nil
}

// newLedger wires the ledger for a command invocation.
func newLedger(cmd *cobra.Command, st *store.Store) (*ledger.Ledger, error) {
	ck, err := newClock(cmd)
	if err != nil {
		return nil, err
	}
	return ledger.New(st, ck, calendar.NewPolicy(calendar.DefaultConfig())), nil
}
