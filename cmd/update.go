package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/funcdrill/internal/selfupdate"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update funcdrill to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if version == selfupdate.DevVersion {
			fmt.Println("Cannot update a development build. Install a release build first.")
			return nil
		}

		result, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !result.UpdateAvailable {
			fmt.Println("Already running the latest version.")
			return nil
		}
		fmt.Printf("Update available: %s -> %s\n%s\n", version, result.LatestVersion, result.ReleaseURL)
		if checkOnly, _ := cmd.Flags().GetBool("check"); checkOnly {
			return nil
		}

		err = checker.Update(ctx, result, func(_ selfupdate.Stage, msg string) {
			fmt.Println(msg)
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, selfupdate.ErrUnsupportedPlatform) {
			return fmt.Errorf("%w\n\nDownload a build manually from %s", err, result.ReleaseURL)
		}
		if os.IsPermission(err) {
			return fmt.Errorf("%w\n\nTry running: sudo funcdrill update", err)
		}

		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
}
