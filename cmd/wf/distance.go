package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/npatel/wayfinder/internal/alert"
	"github.com/npatel/wayfinder/internal/calculator"
)

func newDistanceCmd() *cobra.Command {
	var (
		configPath string
		from       string
		to         string
		unit       string
	)

	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Calculate the distance between two addresses",
		Long:  "Geocodes two free-text addresses and prints the great-circle distance between them. Requires a stored access token; every calculation is saved to your history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDistance(cmd, configPath, from, to, unit)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Wayfinder config file")
	cmd.Flags().StringVar(&from, "from", "", "source address")
	cmd.Flags().StringVar(&to, "to", "", "destination address")
	cmd.Flags().StringVarP(&unit, "unit", "u", "miles", "display unit: miles, kilometers, or both")
	return cmd
}

func runDistance(cmd *cobra.Command, configPath, from, to, unit string) error {
	if !calculator.ValidUnit(calculator.Unit(unit)) {
		return fmt.Errorf("unit %q is not one of miles, kilometers, both", unit)
	}

	_, client, store, err := clientFromConfig(configPath)
	if err != nil {
		return err
	}

	alerts := alert.NewNotifier()
	view := calculator.NewView(client, store, alerts)
	view.Source = from
	view.Destination = to
	view.Unit = calculator.Unit(unit)

	if !view.CanCalculate() {
		return fmt.Errorf("both --from and --to are required")
	}
	if route := view.Compute(cmd.Context()); route != "" {
		return fmt.Errorf("not logged in; run: wf login")
	}

	out := cmd.OutOrStdout()
	if view.Result() == nil {
		reportAlert(out, alerts)
		return fmt.Errorf("distance calculation failed")
	}
	fmt.Fprintf(out, "%s → %s: %s\n", from, to, view.FormattedDistance())
	return nil
}
