package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/funcdrill/internal/session"
	"github.com/spf13/cobra"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the functions you can drill",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-3s  %-8s  %-16s  %s\n", "Key", "ID", "Name", "Decimals")
		fmt.Fprintln(out, strings.Repeat("─", 42))
		for _, fn := range session.Catalog() {
			fmt.Fprintf(out, "%-3s  %-8s  %-16s  %d\n", fn.Key, fn.ID, fn.Name, fn.Decimals)
		}
	},
}
