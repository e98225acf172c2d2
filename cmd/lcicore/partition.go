package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lcafoundry/lcicore/archive"
	"github.com/lcafoundry/lcicore/background"
	"github.com/lcafoundry/lcicore/resolve"
)

var partitionCmd = &cobra.Command{
	Use:   "partition <archive.json>",
	Short: "Partition an archive and report its background/foreground split",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}

		arc, err := archive.LoadJSONFile(args[0])
		if err != nil {
			return err
		}

		mgr := background.NewManager(arc,
			background.WithStrategy(resolve.Strategy(settings.Strategy())),
			background.WithQuantity(archive.Quantity{ID: settings.Quantity()}),
			background.WithLogger(log),
			background.WithThreshold(settings.Threshold()),
			background.WithMaxIterations(settings.MaxIterations()),
			background.WithRecursionBudget(settings.RecursionBudget()),
		)
		if err := mgr.AddAllRefProducts(); err != nil {
			return fmt.Errorf("traversal: %w", err)
		}
		if err := mgr.Finalize(); err != nil {
			return fmt.Errorf("finalize: %w", err)
		}

		bg := mgr.BackgroundProductFlows()
		fmt.Fprintf(cmd.OutOrStdout(), "background product flows: %d\n", len(bg))
		for _, pf := range bg {
			fmt.Fprintf(cmd.OutOrStdout(), "  background  %s @ %s\n", pf.Flow().ID, pf.Process().ID)
		}

		for _, p := range arc.Processes() {
			for _, ref := range p.ReferenceExchanges() {
				pf, ok := mgr.ProductFlow(ref.Flow, p)
				if !ok || mgr.IsBackground(pf) {
					continue
				}
				fg, err := mgr.Foreground(pf)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  foreground  %s @ %s (%d upstream)\n", pf.Flow().ID, pf.Process().ID, len(fg))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(partitionCmd)
}
