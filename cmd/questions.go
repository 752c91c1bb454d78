package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quizdesk/quizdesk/internal/app"
	"github.com/quizdesk/quizdesk/internal/model"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage the question bank (instructor)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			questions, err := rt.Questions.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			defer w.Flush()
			for _, q := range questions {
				fmt.Fprintf(w, "%s\t%s\t%s\n", q.ID, q.Title, q.Difficulty)
			}
			return nil
		})
	},
}

var questionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a question to the bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			title, _ := cmd.Flags().GetString("title")
			a, _ := cmd.Flags().GetString("a")
			b, _ := cmd.Flags().GetString("b")
			c, _ := cmd.Flags().GetString("c")
			d, _ := cmd.Flags().GetString("d")
			answer, _ := cmd.Flags().GetString("answer")
			difficulty, _ := cmd.Flags().GetString("difficulty")
			qtype, _ := cmd.Flags().GetString("type")

			q, err := rt.Questions.Create(cmd.Context(), model.QuestionPayload{
				Title:      title,
				Options:    model.Options{A: a, B: b, C: c, D: d},
				Answer:     model.AnswerKey(answer),
				Difficulty: difficulty,
				Type:       qtype,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Created question %s\n", q.ID)
			return nil
		})
	},
}

func init() {
	questionsCreateCmd.Flags().String("title", "", "question text")
	questionsCreateCmd.Flags().String("a", "", "option A")
	questionsCreateCmd.Flags().String("b", "", "option B")
	questionsCreateCmd.Flags().String("c", "", "option C")
	questionsCreateCmd.Flags().String("d", "", "option D")
	questionsCreateCmd.Flags().String("answer", "", "correct key (A-D)")
	questionsCreateCmd.Flags().String("difficulty", "medium", "easy, medium or hard")
	questionsCreateCmd.Flags().String("type", "FE", "question type")
	questionsCreateCmd.MarkFlagRequired("title")
	questionsCreateCmd.MarkFlagRequired("answer")

	questionsCmd.AddCommand(questionsCreateCmd)
}
