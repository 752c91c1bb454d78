package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizdesk/quizdesk/internal/app"
	"github.com/quizdesk/quizdesk/internal/model"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			cred, err := rt.Auth.Login(cmd.Context(), model.LoginRequest{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			if err := rt.Session.Auth.SetCredential(cred); err != nil {
				return err
			}

			fmt.Printf("Signed in as %s %s (%s)\n",
				cred.Profile.FirstName, cred.Profile.LastName, cred.Profile.Role)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			rt.Session.Auth.LogOut()
			fmt.Println("Signed out.")
			return nil
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGuarded(cmd, func(rt *app.Runtime) error {
			first, _ := cmd.Flags().GetString("first-name")
			last, _ := cmd.Flags().GetString("last-name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")

			cred, err := rt.Auth.Register(cmd.Context(), model.RegisterRequest{
				FirstName: first,
				LastName:  last,
				Email:     email,
				Password:  password,
				Role:      model.Role(role),
			})
			if err != nil {
				return err
			}
			if err := rt.Session.Auth.SetCredential(cred); err != nil {
				return err
			}

			fmt.Printf("Registered and signed in as %s (%s)\n", email, role)
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().String("first-name", "", "first name")
	registerCmd.Flags().String("last-name", "", "last name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")
	registerCmd.Flags().String("role", "Student", "account role (Student or Instructor)")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
}
