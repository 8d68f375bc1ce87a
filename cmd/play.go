package cmd

import (
	"github.com/abhisek/funcdrill/internal/session"
	"github.com/spf13/cobra"
)

// playArgs is the parsed form of the play flags.
type playArgs struct {
	function *session.FunctionSpec
	rng      session.Range
	learn    bool
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz, optionally skipping the menus",
	Example: "  funcdrill play --func sqrt --from 1 --to 20\n" +
		"  funcdrill play --func 6 --from 2 --to 12 --learn",
	RunE: func(cmd *cobra.Command, args []string) error {
		pa, err := parsePlayFlags(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, pa)
	},
}

func init() {
	addSelectionFlags(playCmd)
	playCmd.Flags().Bool("learn", false, "Show the answer table before the quiz")
}

// addSelectionFlags registers --func, --from and --to on c.
func addSelectionFlags(c *cobra.Command) {
	c.Flags().StringP("func", "f", "", "Function ID, menu key, or name (see 'funcdrill functions')")
	c.Flags().Int("from", 0, "Starting value (at least 1)")
	c.Flags().Int("to", 0, "Ending value (greater than --from)")
}

// parsePlayFlags resolves the selection flags. Without --func the menus are
// shown; without --from/--to the range screen is.
func parsePlayFlags(cmd *cobra.Command) (playArgs, error) {
	var pa playArgs
	pa.learn, _ = cmd.Flags().GetBool("learn")

	id, _ := cmd.Flags().GetString("func")
	if id == "" {
		return pa, nil
	}
	fn, err := session.LookupFunction(id)
	if err != nil {
		return pa, err
	}
	pa.function = &fn

	if !cmd.Flags().Changed("from") && !cmd.Flags().Changed("to") {
		return pa, nil
	}
	from, _ := cmd.Flags().GetInt("from")
	to, _ := cmd.Flags().GetInt("to")
	r, err := session.NewRange(from, to)
	if err != nil {
		return pa, err
	}
	pa.rng = r
	return pa, nil
}
