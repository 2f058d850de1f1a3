package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/npatel/wayfinder/internal/alert"
	"github.com/npatel/wayfinder/internal/guard"
	"github.com/npatel/wayfinder/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var (
		configPath string
		page       int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List your past distance calculations",
		Long:  "Shows one page of your route history, newest first, 10 records per page. Requires a stored access token.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, configPath, page)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Wayfinder config file")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, starting at 1")
	return cmd
}

func runHistory(cmd *cobra.Command, configPath string, page int) error {
	if page < 1 {
		return fmt.Errorf("page must be at least 1")
	}

	_, client, store, err := clientFromConfig(configPath)
	if err != nil {
		return err
	}
	if d := guard.AuthenticatedOnly(store); !d.Allow {
		return fmt.Errorf("not logged in; run: wf login")
	}

	alerts := alert.NewNotifier()
	view := history.NewView(client, alerts)

	out := cmd.OutOrStdout()
	if err := view.LoadPage(cmd.Context(), page); err != nil {
		reportAlert(out, alerts)
		return fmt.Errorf("load history: %w", err)
	}

	if view.Empty() {
		fmt.Fprintln(out, "You don't have any route history yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tDESTINATION\tKM\tMILES")
	for _, r := range view.Items() {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\n", r.Source, r.Destination, r.DistanceKM, r.DistanceMiles)
	}
	w.Flush()

	fmt.Fprintf(out, "\nPage %d of %d (%d records)\n", view.CurrentPage(), view.TotalPages(), view.Total())
	return nil
}
