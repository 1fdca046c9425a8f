package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wdm0006/custodian/pkg/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check <name>",
	Short: "Run a cleaner and validate its output without persisting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		res, err := a.runner.Run(cmd.Context(), args[0], pipeline.Options{CheckOnly: true})
		if res != nil && res.Report.Total > 0 {
			printReport(res.Report)
		}
		if err != nil {
			return err
		}
		fmt.Println("\nAll checks passed")
		return nil
	},
}

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List registered check names",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		fmt.Println("Available checks:")
		for _, name := range a.checks.Names() {
			fmt.Printf("  - %s\n", name)
		}
		return nil
	},
}
