package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lcafoundry/lcicore/archive"
	"github.com/lcafoundry/lcicore/background"
	"github.com/lcafoundry/lcicore/characterize"
	"github.com/lcafoundry/lcicore/fragment"
	"github.com/lcafoundry/lcicore/resolve"
)

var fragmentCmd = &cobra.Command{
	Use:   "fragment <archive.json> <factors.json> <ref-process-id> <quantity>",
	Short: "Extract a fragment for a reference process and characterize its life-cycle inventory",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		archivePath, factorsPath, refProcessID, quantityID := args[0], args[1], args[2], args[3]

		log, err := newLogger()
		if err != nil {
			return err
		}

		arc, err := archive.LoadJSONFile(archivePath)
		if err != nil {
			return err
		}
		db, err := characterize.LoadJSONFile(factorsPath)
		if err != nil {
			return err
		}

		refProcess, ok := arc.Process(refProcessID)
		if !ok {
			return fmt.Errorf("characterize: no such process %q", refProcessID)
		}
		refs := refProcess.ReferenceExchanges()
		if len(refs) == 0 {
			return fmt.Errorf("characterize: process %q declares no reference exchange", refProcessID)
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

		ref, ok := mgr.ProductFlow(refs[0].Flow, refProcess)
		if !ok {
			return fmt.Errorf("characterize: product flow for %q was not discovered", refProcessID)
		}

		frag, err := fragment.New(mgr, ref)
		if err != nil {
			return fmt.Errorf("fragment: %w", err)
		}

		score, err := frag.Characterize(mgr, db, quantityID)
		if err != nil {
			return fmt.Errorf("characterize: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s @ %s: %g %s\n", refs[0].Flow.ID, refProcessID, score, quantityID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fragmentCmd)
}
