package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quizdesk/quizdesk/internal/app"
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "List students (instructor)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			top, _ := cmd.Flags().GetBool("top")
			ungrouped, _ := cmd.Flags().GetBool("ungrouped")

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			defer w.Flush()

			switch {
			case top:
				list, err := rt.Students.TopFive(cmd.Context())
				if err != nil {
					return err
				}
				for i, s := range list {
					fmt.Fprintf(w, "%d.\t%s %s\t%.1f avg\n", i+1, s.FirstName, s.LastName, s.AvgScore)
				}
			case ungrouped:
				list, err := rt.Students.WithoutGroup(cmd.Context())
				if err != nil {
					return err
				}
				for _, s := range list {
					fmt.Fprintf(w, "%s\t%s %s\t%s\n", s.ID, s.FirstName, s.LastName, s.Email)
				}
			default:
				list, err := rt.Students.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, s := range list {
					fmt.Fprintf(w, "%s\t%s %s\t%s\n", s.ID, s.FirstName, s.LastName, s.GroupName())
				}
			}
			return nil
		})
	},
}

var studentsMoveCmd = &cobra.Command{
	Use:   "move <student-id> <group-id>",
	Short: "Move a student into a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			if err := rt.Students.MoveToGroup(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("Student moved.")
			return nil
		})
	},
}

func init() {
	studentsCmd.Flags().Bool("top", false, "show the top five students by average score")
	studentsCmd.Flags().Bool("ungrouped", false, "show students without a group")
	studentsCmd.AddCommand(studentsMoveCmd)
}
