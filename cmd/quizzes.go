package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quizdesk/quizdesk/internal/app"
	"github.com/quizdesk/quizdesk/internal/model"
)

var quizzesCmd = &cobra.Command{
	Use:   "quizzes",
	Short: "List quizzes for the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			role := rt.Creds.Role()
			if err := rt.Gate.RequireAuthenticated(cmd.Context(), role); err != nil {
				return fmt.Errorf("sign in first: quizdesk login")
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			defer w.Flush()

			printSlice := func(label string, st []model.Quiz) {
				fmt.Fprintf(w, "%s\t\t\t\n", label)
				if len(st) == 0 {
					fmt.Fprintf(w, "  (none)\t\t\t\n")
					return
				}
				for _, q := range st {
					fmt.Fprintf(w, "  %s\t%s\t%s\t%d questions\n", q.Code, q.Title, q.Schedule, q.QuestionsCount)
				}
			}

			if st := rt.Session.IncomingQuizzes.Get(); st.Value != nil {
				printSlice("Upcoming", *st.Value)
			} else if st.Err != "" {
				fmt.Fprintf(w, "Upcoming\tfailed: %s\t\t\n", st.Err)
			}
			if st := rt.Session.CompletedQuizzes.Get(); st.Value != nil {
				printSlice("Completed", *st.Value)
			} else if st.Err != "" {
				fmt.Fprintf(w, "Completed\tfailed: %s\t\t\n", st.Err)
			}
			return nil
		})
	},
}

var joinCmd = &cobra.Command{
	Use:   "join <code>",
	Short: "Join a quiz by code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			if err := rt.Gate.RequireStudent(cmd.Context()); err != nil {
				return fmt.Errorf("only signed-in students can join a quiz")
			}

			res, err := rt.Quizzes.Join(cmd.Context(), model.JoinRequest{Code: args[0]})
			if err != nil {
				return err
			}

			fmt.Printf("Joined %q. Run quizdesk to take it.\n", res.Quiz.Title)
			return nil
		})
	},
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			results, err := rt.Quizzes.Results(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			defer w.Flush()

			for _, r := range results {
				fmt.Fprintf(w, "%s\t%d participants\n", r.Quiz.Title, len(r.Participants))
			}
			return nil
		})
	},
}
