package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quizdesk/quizdesk/internal/app"
	"github.com/quizdesk/quizdesk/internal/config"
	"github.com/quizdesk/quizdesk/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "quizdesk",
	Short: "Terminal client for the Upskilling quiz platform",
	Long:  "Quizdesk is a terminal client for instructors and students to run, join and take quizzes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, tui.Run)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("base-url", "", "API origin (overrides QUIZDESK_BASE_URL)")
	rootCmd.PersistentFlags().String("credentials", "", "Path to the stored credential file")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(quizzesCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// buildRuntime loads configuration, applies flag overrides and wires
// the service graph shared by every command.
func buildRuntime(cmd *cobra.Command) (*app.Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if u, _ := cmd.Flags().GetString("base-url"); u != "" {
		cfg.BaseURL = u
	}
	if p, _ := cmd.Flags().GetString("credentials"); p != "" {
		cfg.CredentialPath = p
	}

	return app.NewRuntime(cfg)
}

// runGuarded builds the runtime and runs the command body inside the
// panic capture, so a crash surfaces as a handled error instead of
// taking the process down.
func runGuarded(cmd *cobra.Command, fn func(rt *app.Runtime) error) error {
	rt, err := buildRuntime(cmd)
	if err != nil {
		return err
	}
	return rt.Capture.Recovered(func() error { return fn(rt) })
}
