package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/npatel/wayfinder/internal/alert"
	"github.com/npatel/wayfinder/internal/guard"
	"github.com/npatel/wayfinder/internal/history"
)

func newChatCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Ask the assistant about your route history",
		Long:  "Opens an interactive chat with the history-insights assistant. Each session starts fresh; quitting discards the conversation. Requires a stored access token.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Wayfinder config file")
	return cmd
}

func runChat(cmd *cobra.Command, configPath string) error {
	_, client, store, err := clientFromConfig(configPath)
	if err != nil {
		return err
	}
	if d := guard.AuthenticatedOnly(store); !d.Allow {
		return fmt.Errorf("not logged in; run: wf login")
	}

	view := history.NewView(client, alert.NewNotifier())
	view.OpenChat()
	defer view.CloseChat()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, history.Welcome)
	fmt.Fprintln(out, "Type a question, or press Ctrl-D to quit.")
	fmt.Fprint(out, "> ")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		view.SetInput(scanner.Text())
		before := len(view.Messages())
		view.SendMessage(cmd.Context())

		// Blank input sends nothing; otherwise the last message is the reply.
		if msgs := view.Messages(); len(msgs) > before {
			fmt.Fprintln(out, msgs[len(msgs)-1].Text)
		}
		fmt.Fprint(out, "> ")
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
