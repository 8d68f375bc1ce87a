package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abhisek/funcdrill/internal/logging"
	"github.com/abhisek/funcdrill/internal/store"
	"github.com/abhisek/funcdrill/internal/ui/theme"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "funcdrill",
	Short: "Mental math drill for squares, roots, logs and inverses",
	Long: "funcdrill quizzes you on a function (square, cube, square root, ln, log10, inverse)\n" +
		"over a range of whole numbers, in shuffled order, and keeps score.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, playArgs{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FUNCDRILL_DB env var)")
	rootCmd.PersistentFlags().String("theme", "", "Color theme for this run: light or dark")
	rootCmd.PersistentFlags().String("log", "", "Path to log file (overrides FUNCDRILL_LOG env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every answer at debug level")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(functionsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FUNCDRILL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveTheme validates the --theme flag. Empty means the stored preference.
func resolveTheme(cmd *cobra.Command) (string, error) {
	name, _ := cmd.Flags().GetString("theme")
	switch name {
	case "", theme.Light, theme.Dark:
		return name, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want %s or %s)", name, theme.Light, theme.Dark)
	}
}

// openLogger opens the log file from --log / --debug. A logger that cannot be
// opened is reported on stderr and replaced by a discarding one.
func openLogger(cmd *cobra.Command) (*slog.Logger, io.Closer) {
	path, _ := cmd.Flags().GetString("log")
	debug, _ := cmd.Flags().GetBool("debug")

	logger, closer, err := logging.Open(logging.Options{Path: path, Debug: debug})
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: logging disabled:", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	return logger, closer
}
