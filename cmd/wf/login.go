package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/npatel/wayfinder/internal/alert"
	"github.com/npatel/wayfinder/internal/forms"
)

func newLoginCmd() *cobra.Command {
	var (
		configPath string
		email      string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		Long:  "Exchanges credentials for an access token and stores it for later commands. The password is prompted, never passed as a flag.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, configPath, email)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Wayfinder config file")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func runLogin(cmd *cobra.Command, configPath, email string) error {
	_, client, store, err := clientFromConfig(configPath)
	if err != nil {
		return err
	}

	password, err := promptPassword(cmd, "Password")
	if err != nil {
		return err
	}

	form := forms.NewLoginForm()
	form.Set(forms.FieldEmail, email)
	form.Set(forms.FieldPassword, password)

	out := cmd.OutOrStdout()
	alerts := alert.NewNotifier()
	if _, ok := form.Submit(cmd.Context(), client, store, alerts); !ok {
		if printFieldErrors(out, form, []string{forms.FieldEmail, forms.FieldPassword}) {
			return fmt.Errorf("invalid input")
		}
		reportAlert(out, alerts)
		return fmt.Errorf("login failed")
	}

	fmt.Fprintf(out, "Logged in as %s (token stored at %s)\n", email, store.Path())
	return nil
}

func newLogoutCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored access token",
		Long:  "Removes the stored access token. Logging out when no token is stored is not an error.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Wayfinder config file")
	return cmd
}

func runLogout(cmd *cobra.Command, configPath string) error {
	_, _, store, err := clientFromConfig(configPath)
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}
