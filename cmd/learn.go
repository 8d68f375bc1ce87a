package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/funcdrill/internal/session"
	"github.com/spf13/cobra"
)

var learnCmd = &cobra.Command{
	Use:     "learn",
	Short:   "Print the answer table for a function and range",
	Example: "  funcdrill learn --func ln --from 1 --to 10",
	RunE: func(cmd *cobra.Command, args []string) error {
		pa, err := parsePlayFlags(cmd)
		if err != nil {
			return err
		}
		if pa.function == nil || !pa.rng.Valid() {
			return fmt.Errorf("--func, --from and --to are required")
		}

		fn := *pa.function
		out := cmd.OutOrStdout()
		rows := session.AnswerTable(fn, pa.rng)

		fmt.Fprintf(out, "%s, %d decimal places\n\n", fn.Name, fn.Decimals)
		fmt.Fprintf(out, "%8s  %s\n", "x", "answer")
		fmt.Fprintln(out, strings.Repeat("─", 24))
		for _, row := range rows {
			fmt.Fprintf(out, "%8d  %s\n", row.Value, row.Text)
		}
		fmt.Fprintf(out, "\n%d values\n", len(rows))
		return nil
	},
}

func init() {
	addSelectionFlags(learnCmd)
}
