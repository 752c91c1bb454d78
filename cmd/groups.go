package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quizdesk/quizdesk/internal/app"
	"github.com/quizdesk/quizdesk/internal/model"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage student groups (instructor)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			groups, err := rt.Groups.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			defer w.Flush()
			for _, g := range groups {
				fmt.Fprintf(w, "%s\t%s\t%d students\n", g.ID, g.Name, len(g.Students))
			}
			return nil
		})
	},
}

var groupsCreateCmd = &cobra.Command{
	Use:   "create <name> <student-id>...",
	Short: "Create a group with the given students",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			g, err := rt.Groups.Create(cmd.Context(), model.GroupPayload{
				Name:     args[0],
				Students: args[1:],
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created group %q (%s)\n", g.Name, g.ID)
			return nil
		})
	},
}

var groupsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			if err := rt.Groups.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Group deleted.")
			return nil
		})
	},
}

func init() {
	groupsCmd.AddCommand(groupsCreateCmd)
	groupsCmd.AddCommand(groupsDeleteCmd)
}
