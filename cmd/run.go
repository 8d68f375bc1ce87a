package cmd

import (
	"fmt"

	"github.com/abhisek/funcdrill/internal/app"
	"github.com/abhisek/funcdrill/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store and logger and launches the TUI.
func runApp(cmd *cobra.Command, pa playArgs) error {
	themeName, err := resolveTheme(cmd)
	if err != nil {
		return err
	}

	logger, closer := openLogger(cmd)
	defer closer.Close()

	opts := app.Options{
		Logger:   logger,
		Theme:    themeName,
		Function: pa.function,
		Range:    pa.rng,
		Learn:    pa.learn,
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	opts.Prefs = st.Prefs()

	logger.Info("starting", "version", version, "db", dbPath)
	return app.Run(opts)
}
