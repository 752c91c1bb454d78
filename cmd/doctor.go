package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizdesk/quizdesk/internal/api"
	"github.com/quizdesk/quizdesk/internal/app"
	"github.com/quizdesk/quizdesk/internal/drift"
)

// doctorEndpoints maps each wire schema to the endpoint whose payload
// it validates.
var doctorEndpoints = map[string]string{
	"quiz":     "/quiz/incomming",
	"group":    "/group",
	"student":  "/student",
	"question": "/question",
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check live API payloads against the expected wire shapes",
	Long: "Doctor fetches each list endpoint and validates the raw payload " +
		"against the shapes this client tolerates, flagging server-side " +
		"field drift before it breaks a session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			drifted := false
			for _, name := range drift.SchemaNames() {
				path := doctorEndpoints[name]
				raw, err := fetchRaw(cmd.Context(), rt.Client, path)
				if err != nil {
					fmt.Printf("%-10s SKIP  %s: %v\n", name, path, err)
					continue
				}

				findings, err := drift.CheckList(name, raw)
				if err != nil {
					return err
				}
				if len(findings) == 0 {
					fmt.Printf("%-10s OK    %s\n", name, path)
					continue
				}

				drifted = true
				fmt.Printf("%-10s DRIFT %s\n", name, path)
				for _, f := range findings {
					fmt.Printf("    %s\n", f)
				}
			}

			if drifted {
				return fmt.Errorf("wire drift detected")
			}
			return nil
		})
	},
}

func fetchRaw(ctx context.Context, c *api.Client, path string) (json.RawMessage, error) {
	return api.Get[json.RawMessage](ctx, c, path)
}
