package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quizdesk/quizdesk/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check whether a newer release is available",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(30 * time.Second))

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Println("Cannot check a development build. Install a release build first.")
			return nil
		}
		if err != nil {
			return err
		}

		if res.UpdateAvailable {
			fmt.Printf("Update available: %s (running %s)\n", res.LatestVersion, version)
		} else {
			fmt.Println("Already running the latest version.")
		}
		return nil
	},
}
