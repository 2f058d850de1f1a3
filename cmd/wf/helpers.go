package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/npatel/wayfinder/internal/alert"
	"github.com/npatel/wayfinder/internal/api"
	"github.com/npatel/wayfinder/internal/config"
	"github.com/npatel/wayfinder/internal/session"
)

// defaultConfigPath is the --config default shared by every subcommand.
const defaultConfigPath = "wayfinder.yaml"

// clientFromConfig wires the pieces every client command needs: the parsed
// config, an API client, and the token store backing it.
func clientFromConfig(configPath string) (*config.Config, *api.Client, *session.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	store := session.NewStore(cfg.Client.TokenPath)
	return cfg, api.NewClient(cfg.Client.BaseURL, store), store, nil
}

// promptPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read otherwise (pipes, tests).
func promptPassword(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// reportAlert prints the notifier's current banner, if one is visible.
func reportAlert(out io.Writer, alerts *alert.Notifier) {
	st := alerts.Current()
	if st.Visible {
		fmt.Fprintf(out, "%s: %s\n", st.Title, st.Message)
	}
}

// visibleErrors is the slice of a form the error printer needs.
type visibleErrors interface {
	VisibleError(name string) string
}

// printFieldErrors writes each field's visible error on its own line and
// reports whether any were printed.
func printFieldErrors(out io.Writer, form visibleErrors, fields []string) bool {
	any := false
	for _, name := range fields {
		if msg := form.VisibleError(name); msg != "" {
			fmt.Fprintln(out, msg)
			any = true
		}
	}
	return any
}
