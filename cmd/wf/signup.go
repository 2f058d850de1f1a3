package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/npatel/wayfinder/internal/alert"
	"github.com/npatel/wayfinder/internal/forms"
)

func newSignupCmd() *cobra.Command {
	var (
		configPath string
		email      string
		firstName  string
		lastName   string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		Long:  "Registers a new account with the Wayfinder server. The password is prompted and must be at least 6 characters.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignup(cmd, configPath, email, firstName, lastName)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Wayfinder config file")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	return cmd
}

func runSignup(cmd *cobra.Command, configPath, email, firstName, lastName string) error {
	_, client, _, err := clientFromConfig(configPath)
	if err != nil {
		return err
	}

	password, err := promptPassword(cmd, "Password")
	if err != nil {
		return err
	}

	form := forms.NewSignupForm()
	form.Set(forms.FieldEmail, email)
	form.Set(forms.FieldPassword, password)
	form.Set(forms.FieldFirstName, firstName)
	form.Set(forms.FieldLastName, lastName)

	out := cmd.OutOrStdout()
	alerts := alert.NewNotifier()
	fields := []string{forms.FieldFirstName, forms.FieldLastName, forms.FieldEmail, forms.FieldPassword}
	if _, ok := form.Submit(cmd.Context(), client, alerts); !ok {
		if printFieldErrors(out, form, fields) {
			return fmt.Errorf("invalid input")
		}
		reportAlert(out, alerts)
		return fmt.Errorf("signup failed")
	}

	reportAlert(out, alerts)
	fmt.Fprintln(out, "You can now log in with: wf login")
	return nil
}
