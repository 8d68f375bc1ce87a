package cmd

import (
	"fmt"

	"github.com/abhisek/funcdrill/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved theme and last selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.Prefs().Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset preferences: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Preferences cleared.")
		return nil
	},
}
